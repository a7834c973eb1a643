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
)

// Player is a registered participant of the tournament.
type Player struct {
	ID    string
	Name  string
	Email string
}

// Standing is the mutable tournament state of a single player.
type Standing struct {
	ID   string
	Name string

	Active bool // Eligible for pairing.
	Bye    bool // Has already received a bye.

	Matches int
	Points  float64

	// Tiebreaks in order of priority. TiebreakA is the Buchholz score,
	// the other two are carried through untouched.
	TiebreakA float64
	TiebreakB float64
	TiebreakC float64
}

func (standing Standing) String() string {
	return fmt.Sprintf("%s %s", standing.ID, standing.Name)
}

// Tiebreak is a batch update of a player's tiebreak values.
type Tiebreak struct {
	ID      string
	A, B, C float64
}

// Rank sorts the given standings by points, then by each tiebreak, all in
// descending order. Players which compare equal keep their input order.
// The sorted standings are returned for convenience.
func Rank(standings []Standing) []Standing {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		switch {
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.TiebreakA != b.TiebreakA:
			return a.TiebreakA > b.TiebreakA
		case a.TiebreakB != b.TiebreakB:
			return a.TiebreakB > b.TiebreakB
		default:
			return a.TiebreakC > b.TiebreakC
		}
	})

	return standings
}

// Pairing is a single game of a round. A nil Player2 marks a bye.
type Pairing struct {
	Player1 Standing
	Player2 *Standing
}

func (pairing Pairing) IsBye() bool {
	return pairing.Player2 == nil
}

func (pairing Pairing) String() string {
	if pairing.IsBye() {
		return fmt.Sprintf("%s has a BYE", pairing.Player1.Name)
	}

	return fmt.Sprintf("%s ?  -  ? %s", pairing.Player1.Name, pairing.Player2.Name)
}
