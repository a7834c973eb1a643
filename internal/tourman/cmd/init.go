// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/tourman/pkg/common"
	"laptudirm.com/x/tourman/pkg/config"
	"laptudirm.com/x/tourman/pkg/storage"
)

func Init(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new tournament database",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`init creates the tournament database and its tables, and
			writes the default configuration file if there isn't one yet.

			Running init on an existing database is safe, it only creates
			the tables which are missing.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if err := cfg.Create(path); err != nil {
				return err
			}

			if err := common.TryMkdir(filepath.Dir(cfg.Database)); err != nil {
				return err
			}

			store, err := storage.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Init(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tournament database \x1b[32m%s\x1b[0m\n", cfg.Database)
			return nil
		},
	}
}
