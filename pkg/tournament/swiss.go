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
	"sort"

	"github.com/sirupsen/logrus"
)

// PairSwiss generates the pairings of a single swiss round. The players
// must be ranked (see Rank), and the head-to-head index must be built from
// the complete result log.
//
// The pairer is greedy with local repairs:
//
//  1. Players who already had a bye are paired first, from the bottom of
//     the rankings to the top, as they have the fewest options. Each looks
//     upwards for the nearest available opponent, and then downwards.
//  2. The remaining players are paired from the top of the rankings to
//     the bottom, each with the nearest player below them they haven't
//     faced yet.
//  3. If everyone below a player has already been faced, the pairer walks
//     back through the pairings made so far and swaps opponents with the
//     first pairing which allows it.
//  4. If nothing works, the player gets the round's bye.
//
// PairSwiss is deterministic: the same rankings and results always lead to
// the same pairings. It fails with ErrDuplicateBye if a player would need
// a second bye, and with ErrPairingExhausted if a round would need two.
func PairSwiss(ranked []Standing, h2h *HeadToHead) ([]Pairing, error) {
	pairer := swissPairer{
		ranked: ranked,
		h2h:    h2h,
		paired: make([]bool, len(ranked)),
	}

	pairer.pairByeHolders()

	for left := range ranked {
		if pairer.paired[left] {
			continue
		}

		if err := pairer.pairPlayer(left); err != nil {
			return nil, err
		}
	}

	return pairer.pairings(), nil
}

// noOpponent marks the missing opponent of a bye pair.
const noOpponent = -1

// pair is a finalized pairing, addressed by the rank indices of its players.
// Pairs are never modified, only replaced as a whole.
type pair struct {
	a, b int
}

type swissPairer struct {
	ranked []Standing
	h2h    *HeadToHead

	paired   []bool
	pairs    []pair
	byeGiven bool
}

func (pairer *swissPairer) played(i, j int) bool {
	return pairer.h2h.HavePlayed(pairer.ranked[i].ID, pairer.ranked[j].ID)
}

func (pairer *swissPairer) match(i, j int) {
	pairer.paired[i], pairer.paired[j] = true, true
	pairer.pairs = append(pairer.pairs, pair{a: i, b: j})

	logrus.Tracef("%s - %s", pairer.ranked[i], pairer.ranked[j])
}

// pairByeHolders pairs the players who have already had a bye, going from
// the lowest ranked to the highest ranked.
func (pairer *swissPairer) pairByeHolders() {
	for i := len(pairer.ranked) - 1; i >= 0; i-- {
		if !pairer.ranked[i].Bye || pairer.paired[i] {
			continue
		}

		if j, found := pairer.findByeHolderOpponent(i); found {
			pairer.match(i, j)
			continue
		}

		logrus.WithField("player", pairer.ranked[i].ID).
			Debug("No opponent for bye holder, deferring to the main pass")
	}
}

func (pairer *swissPairer) findByeHolderOpponent(i int) (int, bool) {
	eligible := func(j int) bool {
		return !pairer.paired[j] && !pairer.ranked[j].Bye && !pairer.played(i, j)
	}

	// Look for an opponent above in the rankings first.
	for j := i - 1; j >= 0; j-- {
		if eligible(j) {
			return j, true
		}
	}

	// No valid opponent found upwards, try downwards.
	for j := i + 1; j < len(pairer.ranked); j++ {
		if eligible(j) {
			return j, true
		}
	}

	return 0, false
}

// pairPlayer finds an opponent for the given player. Every player ranked
// above it has already been paired.
func (pairer *swissPairer) pairPlayer(left int) error {
	var faced []int
	for right := left + 1; right < len(pairer.ranked); right++ {
		if pairer.paired[right] {
			continue
		}

		if !pairer.played(left, right) {
			pairer.match(left, right)
			return nil
		}

		faced = append(faced, right)
	}

	// All the possible opponents have been faced, so try reshuffling.
	if len(faced) > 0 && pairer.swap(left, faced) {
		return nil
	}

	if len(faced) == 0 && pairer.ranked[left].Bye && !pairer.byeGiven && pairer.handOffBye(left) {
		return nil
	}

	return pairer.giveBye(left)
}

// swap tries to fit the given player and one of the candidates into an
// existing pairing (x, y), either as (x, candidate) and (left, y), or as
// (x, left) and (candidate, y). The most recent pairings are tried first.
func (pairer *swissPairer) swap(left int, candidates []int) bool {
	for k := len(pairer.pairs) - 1; k >= 0; k-- {
		x, y := pairer.pairs[k].a, pairer.pairs[k].b
		if y == noOpponent {
			continue
		}

		for _, candidate := range candidates {
			switch {
			case !pairer.played(x, candidate) && !pairer.played(left, y):
				pairer.replace(k, pair{a: x, b: candidate}, pair{a: left, b: y})
			case !pairer.played(left, x) && !pairer.played(candidate, y):
				pairer.replace(k, pair{a: x, b: left}, pair{a: candidate, b: y})
			default:
				continue
			}

			pairer.paired[left], pairer.paired[candidate] = true, true
			return true
		}
	}

	return false
}

// handOffBye lets a player who already had a bye, and is left without any
// opponent, take the place of a player in an existing pairing. The player
// who is pushed out gets the round's bye instead, if they never had one.
func (pairer *swissPairer) handOffBye(left int) bool {
	for k := len(pairer.pairs) - 1; k >= 0; k-- {
		x, y := pairer.pairs[k].a, pairer.pairs[k].b
		if y == noOpponent {
			continue
		}

		for _, side := range [2][2]int{{x, y}, {y, x}} {
			kept, out := side[0], side[1]
			if pairer.ranked[out].Bye || pairer.played(left, kept) {
				continue
			}

			pairer.replace(k, pair{a: kept, b: left}, pair{a: out, b: noOpponent})
			pairer.paired[left] = true
			pairer.byeGiven = true
			return true
		}
	}

	return false
}

func (pairer *swissPairer) replace(k int, updated, added pair) {
	logrus.Tracef("Swap pairing: %s", pairer.describe(updated, added))

	pairer.pairs[k] = updated
	pairer.pairs = append(pairer.pairs, added)
}

func (pairer *swissPairer) giveBye(left int) error {
	player := pairer.ranked[left]
	if player.Bye {
		return fmt.Errorf(
			"%w: player %s (%s) has already received a bye before",
			ErrDuplicateBye, player.Name, player.ID,
		)
	}

	if pairer.byeGiven {
		return fmt.Errorf(
			"%w: no opponent left for player %s (%s), and this round's bye is already given",
			ErrPairingExhausted, player.Name, player.ID,
		)
	}

	pairer.paired[left] = true
	pairer.byeGiven = true
	pairer.pairs = append(pairer.pairs, pair{a: left, b: noOpponent})

	logrus.Tracef("%s - BYE", player)
	return nil
}

func (pairer *swissPairer) describe(pairs ...pair) string {
	str := ""
	for i, p := range pairs {
		if i > 0 {
			str += ", "
		}

		if p.b == noOpponent {
			str += pairer.ranked[p.a].ID + "-BYE"
			continue
		}

		str += pairer.ranked[p.a].ID + "-" + pairer.ranked[p.b].ID
	}

	return str
}

// pairings returns the final pairings ordered by the rank of their first
// player.
func (pairer *swissPairer) pairings() []Pairing {
	pairs := append([]pair(nil), pairer.pairs...)
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].a < pairs[j].a
	})

	pairings := make([]Pairing, len(pairs))
	for i, p := range pairs {
		pairings[i].Player1 = pairer.ranked[p.a]
		if p.b != noOpponent {
			opponent := pairer.ranked[p.b]
			pairings[i].Player2 = &opponent
		}
	}

	return pairings
}
