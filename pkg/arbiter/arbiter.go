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
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// Arbiter runs a tournament's rounds on top of a store. Every operation
// reads, computes, and writes inside a single transaction, so a failed
// operation leaves the store untouched.
type Arbiter struct {
	store  tournament.Store
	format tournament.Format
}

// New returns an arbiter for a tournament of the given format.
func New(store tournament.Store, format tournament.Format) *Arbiter {
	return &Arbiter{store: store, format: format}
}

func (arbiter *Arbiter) Format() tournament.Format {
	return arbiter.format
}

// RegisterPlayers adds the given players to the tournament, each with a
// fresh active standing.
func (arbiter *Arbiter) RegisterPlayers(ctx context.Context, players []tournament.Player) error {
	if len(players) == 0 {
		return fmt.Errorf("%w: nobody to register", tournament.ErrNoPlayers)
	}

	return arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		if err := repo.AddPlayers(ctx, players); err != nil {
			return err
		}

		logrus.WithField("players", len(players)).Info("Registered players")
		return nil
	})
}

// SetActive toggles whether the given player is paired in future rounds.
func (arbiter *Arbiter) SetActive(ctx context.Context, id string, active bool) error {
	return arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		if err := repo.SetActive(ctx, id, active); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"player": id,
			"active": active,
		}).Info("Updated player eligibility")
		return nil
	})
}

// Standings returns the standings of every registered player, ranked.
func (arbiter *Arbiter) Standings(ctx context.Context) (standings []tournament.Standing, err error) {
	err = arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		standings, err = repo.ListPlayers(ctx)
		return err
	})

	return tournament.Rank(standings), err
}

// Results returns the complete result log.
func (arbiter *Arbiter) Results(ctx context.Context) (results []tournament.Result, err error) {
	err = arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		results, err = repo.ListResults(ctx)
		return err
	})

	return results, err
}

// Players returns the registration records of every player.
func (arbiter *Arbiter) Players(ctx context.Context) (players []tournament.Player, err error) {
	err = arbiter.store.Transact(ctx, func(repo tournament.Repository) error {
		players, err = repo.ListRegistrations(ctx)
		return err
	})

	return players, err
}

// recomputeTiebreaks refreshes the Buchholz score of every registered
// player from the current standings and the complete result log. The
// updated standings are returned in registration order along with the
// head-to-head index they were computed with.
func recomputeTiebreaks(ctx context.Context, repo tournament.Repository) ([]tournament.Standing, *tournament.HeadToHead, error) {
	results, err := repo.ListResults(ctx)
	if err != nil {
		return nil, nil, err
	}

	h2h, err := tournament.NewHeadToHead(results)
	if err != nil {
		return nil, nil, err
	}

	standings, err := repo.ListPlayers(ctx)
	if err != nil {
		return nil, nil, err
	}

	tiebreaks := tournament.ApplyBuchholz(standings, h2h)
	if err := repo.SetTiebreaks(ctx, tiebreaks); err != nil {
		return nil, nil, err
	}

	logrus.WithField("players", len(tiebreaks)).Debug("Recomputed Buchholz scores")
	return standings, h2h, nil
}

// active filters the standings down to the players eligible for pairing,
// keeping their order.
func active(standings []tournament.Standing) []tournament.Standing {
	var eligible []tournament.Standing
	for _, standing := range standings {
		if standing.Active {
			eligible = append(eligible, standing)
		}
	}

	return eligible
}
