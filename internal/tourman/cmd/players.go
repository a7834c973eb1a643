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
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/tourman/internal/util"
	"laptudirm.com/x/tourman/pkg/arbiter"
	"laptudirm.com/x/tourman/pkg/config"
	"laptudirm.com/x/tourman/pkg/export"
)

func RegisterPlayers(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-players --csv-file players.csv",
		Short: "Register the players listed in a csv file",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`register-players registers every player listed in the given
			csv file, each with a fresh active standing.

			The file must have a name column, and may have id and email
			columns. Players without an id are given a random one. The
			registration fails as a whole if any player's id is already
			taken.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("csv-file")

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			players, err := export.ReadPlayers(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			return withArbiter(cfg, "", func(arb *arbiter.Arbiter) error {
				err := util.Spin(func() error {
					return arb.RegisterPlayers(cmd.Context(), players)
				})
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), export.PlayersTable(players))
				return nil
			})
		},
	}

	cmd.Flags().StringP("csv-file", "f", "", "Csv file listing the players")
	_ = cmd.MarkFlagRequired("csv-file")

	return cmd
}

// Activate returns the activate command, or the deactivate command if
// active is false.
func Activate(cfg *config.Config, active bool) *cobra.Command {
	use, short := "activate", "Make a player eligible for pairing"
	if !active {
		use, short = "deactivate", "Stop pairing a player"
	}

	return &cobra.Command{
		Use:   use + " player-id",
		Short: short,
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return withArbiter(cfg, "", func(arb *arbiter.Arbiter) error {
				if err := arb.SetActive(cmd.Context(), args[0], active); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Player \x1b[32m%s\x1b[0m %sd\n", args[0], use)
				return nil
			})
		},
	}
}
