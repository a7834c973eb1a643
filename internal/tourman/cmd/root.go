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
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/tourman/pkg/arbiter"
	"laptudirm.com/x/tourman/pkg/common"
	"laptudirm.com/x/tourman/pkg/config"
	"laptudirm.com/x/tourman/pkg/storage"
	"laptudirm.com/x/tourman/pkg/tournament"
)

func Root() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "tourman",
		Short: "Pair and rank players in swiss and round-robin tournaments",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			var err error
			if cfg, err = config.Load(path); err != nil {
				return err
			}

			if database, _ := cmd.Flags().GetString("database"); database != "" {
				cfg.Database = database
			}

			logrus.SetLevel(cfg.Level())

			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			logrus.WithFields(logrus.Fields{
				"config":   path,
				"database": cfg.Database,
			}).Debug("Loaded configuration")
			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Tourman's Version")
	root.PersistentFlags().Bool("trace", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", common.ConfigFile, "Configuration file to use")
	root.PersistentFlags().StringP("database", "d", "", "Tournament database, overriding the configuration")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Init(&cfg))
	root.AddCommand(RegisterPlayers(&cfg))
	root.AddCommand(Activate(&cfg, true))
	root.AddCommand(Activate(&cfg, false))
	root.AddCommand(Pairings(&cfg))
	root.AddCommand(Schedule(&cfg))
	root.AddCommand(RegisterResults(&cfg))
	root.AddCommand(ApplyResults(&cfg))
	root.AddCommand(Table(&cfg))

	return root
}

// withArbiter opens the configured tournament database, and runs fn with an
// arbiter for the given format on top of it.
func withArbiter(cfg *config.Config, format string, fn func(*arbiter.Arbiter) error) error {
	if format == "" {
		format = cfg.Format
	}

	f, err := tournament.ParseFormat(format)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Database); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no tournament database at %s, run \x1b[33mtourman init\x1b[0m first", cfg.Database)
	}

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(arbiter.New(store, f))
}
