package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadToHead(t *testing.T) {
	h2h := index(t,
		game(1, "A", "B", Win),
		game(1, "C", "D", Draw),
		NewBye(1, "E", "Player E"),
		game(2, "A", "C", Loss),
	)

	assert.True(t, h2h.HavePlayed("A", "B"))
	assert.True(t, h2h.HavePlayed("B", "A"))
	assert.True(t, h2h.HavePlayed("C", "A"))
	assert.False(t, h2h.HavePlayed("A", "D"))
	assert.False(t, h2h.HavePlayed("E", "A"))
	assert.False(t, h2h.HavePlayed("X", "Y"))

	assert.Equal(t, []string{"B", "C"}, h2h.Opponents("A"))
	assert.Empty(t, h2h.Opponents("E"))
	assert.Empty(t, h2h.Opponents("unknown"))
}

func TestBuchholz(t *testing.T) {
	standings := players("A", "B", "C", "D", "E")
	points := map[string]float64{"A": 2, "B": 0.5, "C": 1.5, "D": 0, "E": 1}
	for i := range standings {
		standings[i].Points = points[standings[i].ID]
	}

	h2h := index(t,
		game(1, "A", "B", Win),
		game(1, "C", "D", Win),
		NewBye(1, "E", "Player E"),
		game(2, "A", "C", Win),
		game(2, "B", "D", Draw),
	)

	scores := Buchholz(standings, h2h)
	assert.Equal(t, map[string]float64{
		"A": 0.5 + 1.5,
		"B": 2 + 0,
		"C": 0 + 2,
		"D": 1.5 + 0.5,
		"E": 0, // only had a bye
	}, scores)
}

func TestBuchholzWithoutGames(t *testing.T) {
	standings := players("A", "B")
	standings[0].Points = 3

	scores := Buchholz(standings, index(t))
	assert.Zero(t, scores["A"])
	assert.Zero(t, scores["B"])
}

func TestApplyBuchholz(t *testing.T) {
	standings := players("A", "B")
	standings[0].Points = 1
	standings[1].TiebreakB = 7

	tiebreaks := ApplyBuchholz(standings, index(t, game(1, "A", "B", Win)))

	assert.Equal(t, 0.0, standings[0].TiebreakA)
	assert.Equal(t, 1.0, standings[1].TiebreakA)
	assert.Equal(t, []Tiebreak{
		{ID: "A", A: 0},
		{ID: "B", A: 1, B: 7},
	}, tiebreaks)
}

func TestRank(t *testing.T) {
	standings := []Standing{
		{ID: "A", Points: 1, TiebreakA: 2},
		{ID: "B", Points: 2},
		{ID: "C", Points: 1, TiebreakA: 3},
		{ID: "D", Points: 1, TiebreakA: 2, TiebreakB: 1},
		{ID: "E", Points: 1, TiebreakA: 2, TiebreakC: 1},
		{ID: "F", Points: 1, TiebreakA: 2},
	}

	ranked := Rank(standings)

	ids := make([]string, len(ranked))
	for i, standing := range ranked {
		ids[i] = standing.ID
	}

	// A and F compare equal and keep their input order.
	assert.Equal(t, []string{"B", "C", "D", "E", "A", "F"}, ids)
}

func TestPairingString(t *testing.T) {
	standings := players("A", "B")

	assert.Equal(t, "Player A ?  -  ? Player B", Pairing{Player1: standings[0], Player2: &standings[1]}.String())
	assert.Equal(t, "Player A has a BYE", Pairing{Player1: standings[0]}.String())
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("round-robin")
	require.NoError(t, err)
	assert.Equal(t, RoundRobin, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Swiss, format)

	_, err = ParseFormat("knockout")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
