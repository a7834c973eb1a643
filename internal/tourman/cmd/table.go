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

	"github.com/spf13/cobra"

	"laptudirm.com/x/tourman/pkg/arbiter"
	"laptudirm.com/x/tourman/pkg/config"
	"laptudirm.com/x/tourman/pkg/export"
)

func Table(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table -t standings|results|players",
		Short: "Show the standings, the result log, or the registered players",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			table, _ := cmd.Flags().GetString("type")

			return withArbiter(cfg, "", func(arb *arbiter.Arbiter) error {
				ctx := cmd.Context()

				var rendered string
				switch table {
				case "standings":
					standings, err := arb.Standings(ctx)
					if err != nil {
						return err
					}
					rendered = export.StandingsTable(standings)
				case "results":
					results, err := arb.Results(ctx)
					if err != nil {
						return err
					}
					rendered = export.ResultsTable(results)
				case "players":
					players, err := arb.Players(ctx)
					if err != nil {
						return err
					}
					rendered = export.PlayersTable(players)
				default:
					return fmt.Errorf("unknown table %q", table)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return nil
			})
		},
	}

	cmd.Flags().StringP("type", "t", "standings", "Table to show")
	return cmd
}
