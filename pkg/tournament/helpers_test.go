package tournament

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func players(ids ...string) []Standing {
	standings := make([]Standing, len(ids))
	for i, id := range ids {
		standings[i] = Standing{ID: id, Name: "Player " + id, Active: true}
	}
	return standings
}

func game(round int, p1, p2 string, score1 Score) Result {
	return Result{
		Round:   round,
		Player1: Seat{ID: p1, Name: "Player " + p1, Score: score1},
		Player2: &Seat{ID: p2, Name: "Player " + p2, Score: Win - score1},
	}
}

func index(t *testing.T, results ...Result) *HeadToHead {
	t.Helper()

	h2h, err := NewHeadToHead(results)
	require.NoError(t, err)
	return h2h
}

// pairs flattens pairings into "A-B" and "A-BYE" strings.
func pairs(pairings []Pairing) []string {
	flat := make([]string, len(pairings))
	for i, pairing := range pairings {
		if pairing.IsBye() {
			flat[i] = pairing.Player1.ID + "-BYE"
			continue
		}
		flat[i] = pairing.Player1.ID + "-" + pairing.Player2.ID
	}
	return flat
}
