package tournament

import "fmt"

// VerifyPairings checks a round's pairings against the players that had to
// be paired and the head-to-head index: every player appears exactly once,
// nobody meets a previous opponent, there is at most one bye, and it doesn't
// go to a player who already had one.
func VerifyPairings(players []Standing, pairings []Pairing, h2h *HeadToHead) error {
	expected := make(map[string]bool, len(players))
	for _, player := range players {
		expected[player.ID] = true
	}

	seen := make(map[string]bool, len(players))
	see := func(player Standing) error {
		if !expected[player.ID] {
			return fmt.Errorf("%w: %s is not eligible for pairing", ErrPlayerMismatch, player)
		}

		if seen[player.ID] {
			return fmt.Errorf("%w: %s is paired more than once", ErrPairingExhausted, player)
		}

		seen[player.ID] = true
		return nil
	}

	byes := 0
	for _, pairing := range pairings {
		if err := see(pairing.Player1); err != nil {
			return err
		}

		if pairing.IsBye() {
			if pairing.Player1.Bye {
				return fmt.Errorf("%w: %s", ErrDuplicateBye, pairing.Player1)
			}

			if byes++; byes > 1 {
				return fmt.Errorf("%w: more than one bye in a round", ErrPairingExhausted)
			}

			continue
		}

		if err := see(*pairing.Player2); err != nil {
			return err
		}

		if h2h.HavePlayed(pairing.Player1.ID, pairing.Player2.ID) {
			return fmt.Errorf("%w: %s and %s have already played", ErrRematch, pairing.Player1, *pairing.Player2)
		}
	}

	if len(seen) != len(expected) {
		return fmt.Errorf("%w: %d of %d players paired", ErrPairingExhausted, len(seen), len(expected))
	}

	return nil
}
