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

package arbiter

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// Pairings validates the requested round number, refreshes the tiebreaks,
// and pairs the eligible players for the round.
func (arbiter *Arbiter) Pairings(ctx context.Context, round int) (pairings []tournament.Pairing, err error) {
	err = arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		standings, h2h, err := arbiter.prepareRound(ctx, repo, round)
		if err != nil {
			return err
		}

		eligible := active(standings)
		switch arbiter.format {
		case tournament.RoundRobin:
			// The schedule follows registration order, which is the order
			// the standings are listed in.
			pairings, err = tournament.RoundRobinRound(eligible, round)
		default:
			eligible = tournament.Rank(eligible)
			pairings, err = tournament.PairSwiss(eligible, h2h)
		}

		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		if err := tournament.VerifyPairings(eligible, pairings, h2h); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		logrus.WithFields(logrus.Fields{
			"round":    round,
			"format":   arbiter.format,
			"pairings": len(pairings),
		}).Info("Paired round")
		return nil
	})

	return pairings, err
}

// prepareRound checks that the given round may be paired now, and returns
// the standings with freshly computed tiebreaks.
func (arbiter *Arbiter) prepareRound(ctx context.Context, repo tournament.Repository, round int) ([]tournament.Standing, *tournament.HeadToHead, error) {
	eligible, err := repo.ListActivePlayers(ctx)
	if err != nil {
		return nil, nil, err
	}

	applied, err := repo.MaxAppliedRound(ctx)
	if err != nil {
		return nil, nil, err
	}

	state := tournament.NewRoundState(arbiter.format, len(eligible), applied)
	if err := state.Propose(round); err != nil {
		return nil, nil, err
	}

	registered, err := repo.MaxResultRound(ctx)
	if err != nil {
		return nil, nil, err
	}

	if registered > applied {
		return nil, nil, fmt.Errorf("%w: results of round %d are registered but not applied", tournament.ErrInvalidRound, registered)
	}

	return recomputeTiebreaks(ctx, repo)
}

// Schedule returns the complete round-robin schedule of the eligible
// players, in registration order.
func (arbiter *Arbiter) Schedule(ctx context.Context) (schedule [][]tournament.Pairing, err error) {
	err = arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		standings, err := repo.ListPlayers(ctx)
		if err != nil {
			return err
		}

		eligible := active(standings)
		if tournament.NewRoundState(tournament.RoundRobin, len(eligible), 0).NoPlayers() {
			return fmt.Errorf("%w: %d eligible players", tournament.ErrNoPlayers, len(eligible))
		}

		schedule = tournament.RoundRobinSchedule(eligible)
		return nil
	})

	return schedule, err
}

// RegisterResults validates a round's results against the standings and
// the result log, and appends them to the log. The results are not applied
// to the standings until ApplyResults is called. The round registered is
// returned.
func (arbiter *Arbiter) RegisterResults(ctx context.Context, results []tournament.Result) (int, error) {
	if len(results) == 0 {
		return 0, errors.New("no results to register")
	}

	round := results[0].Round
	for _, result := range results {
		if err := result.Validate(); err != nil {
			return 0, fmt.Errorf("%s: %w", result, err)
		}

		if result.Round != round {
			return 0, fmt.Errorf("%w: results of rounds %d and %d registered together", tournament.ErrInvalidRound, round, result.Round)
		}
	}

	err := arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		registered, err := repo.MaxResultRound(ctx)
		if err != nil {
			return err
		}

		applied, err := repo.MaxAppliedRound(ctx)
		if err != nil {
			return err
		}

		switch {
		case registered > applied:
			return fmt.Errorf("%w: results of round %d are registered but not applied", tournament.ErrInvalidRound, registered)
		case round != registered+1:
			return fmt.Errorf("%w: expected results for round %d, got round %d", tournament.ErrInvalidRound, registered+1, round)
		}

		standings, err := repo.ListPlayers(ctx)
		if err != nil {
			return err
		}

		log, err := repo.ListResults(ctx)
		if err != nil {
			return err
		}

		h2h, err := tournament.NewHeadToHead(log)
		if err != nil {
			return err
		}

		if err := checkResults(standings, results, h2h); err != nil {
			return err
		}

		if err := repo.AddResults(ctx, results); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"round":   round,
			"results": len(results),
		}).Info("Registered results")
		return nil
	})

	return round, err
}

// checkResults checks a round's results against the players' standings
// and their previous games.
func checkResults(standings []tournament.Standing, results []tournament.Result, h2h *tournament.HeadToHead) error {
	players := make(map[string]tournament.Standing, len(standings))
	for _, standing := range standings {
		players[standing.ID] = standing
	}

	seen := make(map[string]bool)
	checkSeat := func(seat tournament.Seat) error {
		standing, found := players[seat.ID]
		switch {
		case !found:
			return fmt.Errorf("%w: no player with id %s", tournament.ErrPlayerMismatch, seat.ID)
		case standing.Name != seat.Name:
			return fmt.Errorf("%w: player %s is %s, not %s", tournament.ErrPlayerMismatch, seat.ID, standing.Name, seat.Name)
		case seen[seat.ID]:
			return fmt.Errorf("%w: %s plays more than once in the round", tournament.ErrPlayerMismatch, standing)
		}

		seen[seat.ID] = true
		return nil
	}

	byes := 0
	for _, result := range results {
		if err := checkSeat(result.Player1); err != nil {
			return err
		}

		if result.IsBye() {
			if players[result.Player1.ID].Bye {
				return fmt.Errorf("%w: %s", tournament.ErrDuplicateBye, players[result.Player1.ID])
			}

			if byes++; byes > 1 {
				return fmt.Errorf("%w: more than one bye in round %d", tournament.ErrPairingExhausted, result.Round)
			}

			continue
		}

		if err := checkSeat(*result.Player2); err != nil {
			return err
		}

		if h2h.HavePlayed(result.Player1.ID, result.Player2.ID) {
			return fmt.Errorf("%w: %s", tournament.ErrRematch, result)
		}
	}

	return nil
}

// ApplyResults applies a registered round's results to the standings,
// marks the round's bye, and refreshes every player's tiebreaks.
func (arbiter *Arbiter) ApplyResults(ctx context.Context, round int) error {
	return arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		applied, err := repo.MaxAppliedRound(ctx)
		if err != nil {
			return err
		}

		if round != applied+1 {
			return fmt.Errorf("%w: expected to apply round %d, got round %d", tournament.ErrInvalidRound, applied+1, round)
		}

		log, err := repo.ListResults(ctx)
		if err != nil {
			return err
		}

		var results []tournament.Result
		for _, result := range log {
			if result.Round == round {
				results = append(results, result)
			}
		}

		if len(results) == 0 {
			return fmt.Errorf("%w: no results registered for round %d", tournament.ErrInvalidRound, round)
		}

		if err := repo.ApplyRoundResults(ctx, round, results); err != nil {
			return err
		}

		for _, result := range results {
			if !result.IsBye() {
				continue
			}

			if err := repo.SetBye(ctx, result.Player1.ID); err != nil {
				return err
			}
		}

		if _, _, err := recomputeTiebreaks(ctx, repo); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"round":   round,
			"results": len(results),
		}).Info("Applied results")
		return nil
	})
}
