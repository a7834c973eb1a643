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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/tourman/internal/util"
	"laptudirm.com/x/tourman/pkg/arbiter"
	"laptudirm.com/x/tourman/pkg/config"
	"laptudirm.com/x/tourman/pkg/export"
	"laptudirm.com/x/tourman/pkg/tournament"
)

func Pairings(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairings --round N",
		Short: "Generate the pairings of the next round",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`pairings recomputes every player's tiebreaks, and pairs the
			active players for the given round, which must be the round
			after the last one applied.

			Swiss rounds pair players of similar standing who haven't
			met before, handing out at most one bye per round and never
			two to the same player. Round-robin rounds follow the circle
			schedule of the active players in registration order.

			The pairings are exported into the output directory as a
			result sheet, pairings_rN.csv, and a display file, which
			are then filled in and registered with register-results.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			round, _ := cmd.Flags().GetInt("round")
			format, _ := cmd.Flags().GetString("format")

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = cfg.ExportDir
			}

			return withArbiter(cfg, format, func(arb *arbiter.Arbiter) error {
				var pairings []tournament.Pairing
				err := util.Spin(func() (err error) {
					pairings, err = arb.Pairings(cmd.Context(), round)
					return err
				})
				if err != nil {
					return err
				}

				sheet, display, err := export.ExportRound(cmd.Context(), out, round, pairings)
				if err != nil {
					return err
				}

				logrus.WithFields(logrus.Fields{
					"sheet":   sheet,
					"display": display,
				}).Info("Exported pairings")

				fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mRound %d\x1b[0m (%s):\n", round, arb.Format())
				return export.WriteDisplay(cmd.OutOrStdout(), pairings)
			})
		},
	}

	cmd.Flags().IntP("round", "r", 0, "Round to pair")
	cmd.Flags().StringP("format", "f", "", "Tournament format, swiss or round-robin")
	cmd.Flags().StringP("out", "o", "", "Directory to export the pairings into")
	_ = cmd.MarkFlagRequired("round")

	return cmd
}

func Schedule(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the complete round-robin schedule",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return withArbiter(cfg, tournament.RoundRobin.String(), func(arb *arbiter.Arbiter) error {
				schedule, err := arb.Schedule(cmd.Context())
				if err != nil {
					return err
				}

				for i, round := range schedule {
					fmt.Fprintln(cmd.OutOrStdout(), export.PairingsTable(i+1, round))
				}

				return nil
			})
		},
	}
}

func RegisterResults(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-results --input-file pairings_rN.csv",
		Short: "Record a round's results",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`register-results reads a filled in result sheet, checks it
			against the standings and the previous rounds, and records
			its results. Scores are 0, 0.5, or 1, and the two scores of
			a game add up to 1.

			The results only count towards the standings once they have
			been applied with apply-results.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("input-file")

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			results, err := export.ReadResults(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			return withArbiter(cfg, "", func(arb *arbiter.Arbiter) error {
				round, err := arb.RegisterResults(cmd.Context(), results)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Registered %d results of round \x1b[32m%d\x1b[0m\n", len(results), round)
				return nil
			})
		},
	}

	cmd.Flags().StringP("input-file", "i", "", "Filled in result sheet")
	_ = cmd.MarkFlagRequired("input-file")

	return cmd
}

func ApplyResults(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-results --round N",
		Short: "Apply a round's results to the standings",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`apply-results adds the registered results of the given round
			to the standings, marks the round's bye, and recomputes the
			Buchholz tiebreak of every player. Each round is applied
			exactly once, in order.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			round, _ := cmd.Flags().GetInt("round")

			return withArbiter(cfg, "", func(arb *arbiter.Arbiter) error {
				err := util.Spin(func() error {
					return arb.ApplyResults(cmd.Context(), round)
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Applied results of round \x1b[32m%d\x1b[0m\n", round)
				return nil
			})
		},
	}

	cmd.Flags().IntP("round", "r", 0, "Round to apply")
	_ = cmd.MarkFlagRequired("round")

	return cmd
}
