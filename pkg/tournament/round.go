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

package tournament

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Format is the pairing system used by a tournament.
type Format int

const (
	Swiss Format = iota
	RoundRobin
)

// ParseFormat parses the name of a tournament format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "swiss", "":
		return Swiss, nil
	case "round-robin":
		return RoundRobin, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

func (format Format) String() string {
	switch format {
	case Swiss:
		return "swiss"
	case RoundRobin:
		return "round-robin"
	default:
		return "unknown"
	}
}

// RecommendedRounds is the number of rounds the format should ideally be
// played for with the given number of players.
func (format Format) RecommendedRounds(players int) int {
	if players < 2 {
		return 0
	}

	if format == Swiss {
		return int(math.Ceil(math.Log2(float64(players))))
	}

	return format.MaxRounds(players)
}

// MaxRounds is the maximum number of rounds the format may be played for
// with the given number of players.
func (format Format) MaxRounds(players int) int {
	if players < 2 {
		return 0
	}

	switch format {
	case RoundRobin:
		// An odd number of players needs an extra round to rotate the byes.
		if players%2 == 1 {
			return players
		}
		return players - 1

	default:
		return players / 2
	}
}

// RoundState is the state of a tournament's round progression. It is
// derived from the last applied round every time it is needed instead of
// being stored anywhere.
type RoundState struct {
	Format  Format
	Players int // Number of eligible players.

	// LastApplied is the id of the last applied round, 0 if none.
	LastApplied int
}

// NewRoundState returns the round state of a tournament.
func NewRoundState(format Format, players, lastApplied int) RoundState {
	return RoundState{
		Format:      format,
		Players:     players,
		LastApplied: lastApplied,
	}
}

// NoPlayers reports whether the tournament lacks the players to be played.
func (state RoundState) NoPlayers() bool {
	return state.Players < 2
}

// Next returns the only round which may be proposed in this state.
func (state RoundState) Next() int {
	return state.LastApplied + 1
}

// Propose checks whether the given round may be played next.
func (state RoundState) Propose(round int) error {
	if state.NoPlayers() {
		return fmt.Errorf(
			"%w: %d eligible players, cannot start round %d of a %s tournament",
			ErrNoPlayers, state.Players, round, state.Format,
		)
	}

	if round <= state.LastApplied {
		return fmt.Errorf(
			"%w: round %d must be greater than last applied round %d",
			ErrInvalidRound, round, state.LastApplied,
		)
	}

	if round != state.Next() {
		return fmt.Errorf(
			"%w: round %d: last round was %d, next round must be %d",
			ErrInvalidRound, round, state.LastApplied, state.Next(),
		)
	}

	if limit := state.Format.MaxRounds(state.Players); round > limit {
		return fmt.Errorf(
			"%w: round %d: a %s tournament of %d players is limited to %d rounds",
			ErrInvalidRound, round, state.Format, state.Players, limit,
		)
	}

	if recommended := state.Format.RecommendedRounds(state.Players); round > recommended {
		logrus.WithFields(logrus.Fields{
			"round":       round,
			"recommended": recommended,
			"players":     state.Players,
		}).Warnf("Round exceeds the recommended number of %s rounds", state.Format)
	}

	logrus.WithField("previous", state.LastApplied).Debugf("Round %d is valid", round)
	return nil
}
