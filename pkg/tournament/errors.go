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

import "errors"

// Errors reported by the tournament core. They are always wrapped with the
// offending round, player, or score, so compare them using errors.Is.
var (
	// ErrInvalidRound is returned when a round is not the one right after
	// the last applied round, or exceeds the format's maximum.
	ErrInvalidRound = errors.New("invalid round")

	// ErrNoPlayers is returned when there are too few eligible players.
	ErrNoPlayers = errors.New("not enough players")

	// ErrScoreViolation is returned for scores outside 0, 0.5, and 1, or
	// for non-bye results whose scores do not add up to 1.
	ErrScoreViolation = errors.New("score violation")

	// ErrPlayerMismatch is returned when a result references a player
	// which is not found in the standings.
	ErrPlayerMismatch = errors.New("player mismatch")

	// ErrDuplicateBye is returned when a player would get a second bye.
	ErrDuplicateBye = errors.New("duplicate bye")

	// ErrPairingExhausted is returned when the swiss pairer can neither
	// find a swap nor fall back to a bye.
	ErrPairingExhausted = errors.New("pairing exhausted")

	// ErrRematch is returned when a result repeats an earlier pairing.
	ErrRematch = errors.New("rematch")

	// ErrUnknownFormat is returned for unsupported tournament formats.
	ErrUnknownFormat = errors.New("unknown tournament format")
)
