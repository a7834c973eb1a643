package arbiter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/tourman/pkg/storage"
	"laptudirm.com/x/tourman/pkg/tournament"
)

var roster = []tournament.Player{
	{ID: "p1", Name: "Alice"},
	{ID: "p2", Name: "Bob"},
	{ID: "p3", Name: "Carol"},
	{ID: "p4", Name: "Dave"},
	{ID: "p5", Name: "Eve"},
}

func newArbiter(t *testing.T, format tournament.Format, players ...tournament.Player) *Arbiter {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "tourman.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Init(context.Background()))

	arbiter := New(store, format)
	if len(players) > 0 {
		require.NoError(t, arbiter.RegisterPlayers(context.Background(), players))
	}

	return arbiter
}

// play turns a round's pairings into results, with the given scores for
// the first player of each non-bye pairing in order.
func play(round int, pairings []tournament.Pairing, scores ...tournament.Score) []tournament.Result {
	var results []tournament.Result
	for _, pairing := range pairings {
		p1 := pairing.Player1
		if pairing.IsBye() {
			results = append(results, tournament.NewBye(round, p1.ID, p1.Name))
			continue
		}

		score := scores[0]
		scores = scores[1:]

		p2 := pairing.Player2
		results = append(results, tournament.Result{
			Round:   round,
			Player1: tournament.Seat{ID: p1.ID, Name: p1.Name, Score: score},
			Player2: &tournament.Seat{ID: p2.ID, Name: p2.Name, Score: tournament.Win - score},
		})
	}

	return results
}

func pairs(pairings []tournament.Pairing) []string {
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

func TestSwissRounds(t *testing.T) {
	ctx := context.Background()
	arbiter := newArbiter(t, tournament.Swiss, roster...)

	round1, err := arbiter.Pairings(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1-p2", "p3-p4", "p5-BYE"}, pairs(round1))

	round, err := arbiter.RegisterResults(ctx, play(1, round1, tournament.Win, tournament.Draw))
	require.NoError(t, err)
	assert.Equal(t, 1, round)
	require.NoError(t, arbiter.ApplyResults(ctx, 1))

	standings, err := arbiter.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tournament.Standing{
		{ID: "p1", Name: "Alice", Active: true, Matches: 1, Points: 1},
		{ID: "p5", Name: "Eve", Active: true, Bye: true, Matches: 1, Points: 1},
		{ID: "p3", Name: "Carol", Active: true, Matches: 1, Points: 0.5, TiebreakA: 0.5},
		{ID: "p4", Name: "Dave", Active: true, Matches: 1, Points: 0.5, TiebreakA: 0.5},
		{ID: "p2", Name: "Bob", Active: true, Matches: 1, TiebreakA: 1},
	}, standings)

	// Eve already had a bye, so she is paired first, and Dave, who can't
	// play Carol again, gets the bye.
	round2, err := arbiter.Pairings(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5-p1", "p3-p2", "p4-BYE"}, pairs(round2))

	_, err = arbiter.RegisterResults(ctx, play(2, round2, tournament.Loss, tournament.Win))
	require.NoError(t, err)
	require.NoError(t, arbiter.ApplyResults(ctx, 2))

	standings, err = arbiter.Standings(ctx)
	require.NoError(t, err)
	for _, standing := range standings {
		assert.Equal(t, 2, standing.Matches, standing.ID)
	}

	results, err := arbiter.Results(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 6)
}

func TestPairingsRoundOrder(t *testing.T) {
	ctx := context.Background()
	arbiter := newArbiter(t, tournament.Swiss, roster...)

	_, err := arbiter.Pairings(ctx, 2)
	assert.ErrorIs(t, err, tournament.ErrInvalidRound)

	_, err = arbiter.Pairings(ctx, 0)
	assert.ErrorIs(t, err, tournament.ErrInvalidRound)

	round1, err := arbiter.Pairings(ctx, 1)
	require.NoError(t, err)

	// Pairing the same round again is fine until its results are in.
	again, err := arbiter.Pairings(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, pairs(round1), pairs(again))

	_, err = arbiter.RegisterResults(ctx, play(1, round1, tournament.Win, tournament.Win))
	require.NoError(t, err)

	// Round 1's results still have to be applied.
	_, err = arbiter.Pairings(ctx, 1)
	assert.ErrorIs(t, err, tournament.ErrInvalidRound)
	_, err = arbiter.Pairings(ctx, 2)
	assert.ErrorIs(t, err, tournament.ErrInvalidRound)

	require.NoError(t, arbiter.ApplyResults(ctx, 1))
	assert.ErrorIs(t, arbiter.ApplyResults(ctx, 1), tournament.ErrInvalidRound)

	_, err = arbiter.Pairings(ctx, 2)
	assert.NoError(t, err)
}

func TestPairingsNoPlayers(t *testing.T) {
	ctx := context.Background()

	_, err := newArbiter(t, tournament.Swiss).Pairings(ctx, 1)
	assert.ErrorIs(t, err, tournament.ErrNoPlayers)

	_, err = newArbiter(t, tournament.Swiss, roster[0]).Pairings(ctx, 1)
	assert.ErrorIs(t, err, tournament.ErrNoPlayers)

	err = newArbiter(t, tournament.Swiss).RegisterPlayers(ctx, nil)
	assert.ErrorIs(t, err, tournament.ErrNoPlayers)
}

func TestInactivePlayersAreNotPaired(t *testing.T) {
	ctx := context.Background()
	arbiter := newArbiter(t, tournament.Swiss, roster...)

	require.NoError(t, arbiter.SetActive(ctx, "p3", false))

	round1, err := arbiter.Pairings(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1-p2", "p4-p5"}, pairs(round1))

	require.NoError(t, arbiter.SetActive(ctx, "p3", true))
	assert.ErrorIs(t, arbiter.SetActive(ctx, "p9", true), tournament.ErrPlayerMismatch)
}

func TestRegisterResultsInvalid(t *testing.T) {
	ctx := context.Background()
	arbiter := newArbiter(t, tournament.Swiss, roster...)

	round1, err := arbiter.Pairings(ctx, 1)
	require.NoError(t, err)
	_, err = arbiter.RegisterResults(ctx, play(1, round1, tournament.Win, tournament.Draw))
	require.NoError(t, err)
	require.NoError(t, arbiter.ApplyResults(ctx, 1))

	seat := func(id, name string, score tournament.Score) tournament.Seat {
		return tournament.Seat{ID: id, Name: name, Score: score}
	}
	game := func(round int, a, b tournament.Seat) tournament.Result {
		return tournament.Result{Round: round, Player1: a, Player2: &b}
	}

	tests := []struct {
		name    string
		results []tournament.Result
		wantErr error
	}{
		{
			name:    "rematch",
			results: []tournament.Result{game(2, seat("p2", "Bob", 1), seat("p1", "Alice", 0))},
			wantErr: tournament.ErrRematch,
		},
		{
			name:    "second bye",
			results: []tournament.Result{tournament.NewBye(2, "p5", "Eve")},
			wantErr: tournament.ErrDuplicateBye,
		},
		{
			name: "two byes",
			results: []tournament.Result{
				tournament.NewBye(2, "p1", "Alice"),
				tournament.NewBye(2, "p2", "Bob"),
			},
			wantErr: tournament.ErrPairingExhausted,
		},
		{
			name:    "wrong name",
			results: []tournament.Result{game(2, seat("p1", "Alicia", 1), seat("p3", "Carol", 0))},
			wantErr: tournament.ErrPlayerMismatch,
		},
		{
			name:    "unknown player",
			results: []tournament.Result{game(2, seat("p1", "Alice", 1), seat("p9", "Zed", 0))},
			wantErr: tournament.ErrPlayerMismatch,
		},
		{
			name: "player twice",
			results: []tournament.Result{
				game(2, seat("p1", "Alice", 1), seat("p3", "Carol", 0)),
				game(2, seat("p4", "Dave", 1), seat("p1", "Alice", 0)),
			},
			wantErr: tournament.ErrPlayerMismatch,
		},
		{
			name:    "bad score",
			results: []tournament.Result{game(2, seat("p1", "Alice", 1), seat("p3", "Carol", 1))},
			wantErr: tournament.ErrScoreViolation,
		},
		{
			name:    "skipped round",
			results: []tournament.Result{game(3, seat("p1", "Alice", 1), seat("p3", "Carol", 0))},
			wantErr: tournament.ErrInvalidRound,
		},
		{
			name:    "past round",
			results: []tournament.Result{game(1, seat("p1", "Alice", 1), seat("p3", "Carol", 0))},
			wantErr: tournament.ErrInvalidRound,
		},
		{
			name: "mixed rounds",
			results: []tournament.Result{
				game(2, seat("p1", "Alice", 1), seat("p3", "Carol", 0)),
				game(3, seat("p4", "Dave", 1), seat("p2", "Bob", 0)),
			},
			wantErr: tournament.ErrInvalidRound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := arbiter.RegisterResults(ctx, tt.results)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing was recorded by the failed registrations.
	results, err := arbiter.Results(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	_, err = arbiter.RegisterResults(ctx, nil)
	assert.Error(t, err)
}

func TestApplyResultsWithoutResults(t *testing.T) {
	arbiter := newArbiter(t, tournament.Swiss, roster...)
	assert.ErrorIs(t, arbiter.ApplyResults(context.Background(), 1), tournament.ErrInvalidRound)
}

func TestRoundRobinRounds(t *testing.T) {
	ctx := context.Background()
	arbiter := newArbiter(t, tournament.RoundRobin, roster[:4]...)

	schedule, err := arbiter.Schedule(ctx)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	for round := 1; round <= 3; round++ {
		pairings, err := arbiter.Pairings(ctx, round)
		require.NoError(t, err, "round %d", round)
		assert.Equal(t, pairs(schedule[round-1]), pairs(pairings), "round %d", round)

		_, err = arbiter.RegisterResults(ctx, play(round, pairings, tournament.Draw, tournament.Win))
		require.NoError(t, err, "round %d", round)
		require.NoError(t, arbiter.ApplyResults(ctx, round), "round %d", round)
	}

	assert.Equal(t, []string{"p1-p4", "p2-p3"}, pairs(schedule[0]))

	// Everyone has played everyone.
	_, err = arbiter.Pairings(ctx, 4)
	assert.ErrorIs(t, err, tournament.ErrInvalidRound)
}

func TestScheduleNoPlayers(t *testing.T) {
	_, err := newArbiter(t, tournament.RoundRobin, roster[0]).Schedule(context.Background())
	assert.ErrorIs(t, err, tournament.ErrNoPlayers)
}

func TestPlayers(t *testing.T) {
	arbiter := newArbiter(t, tournament.Swiss, roster...)

	players, err := arbiter.Players(context.Background())
	require.NoError(t, err)
	assert.Equal(t, roster, players)

	err = arbiter.RegisterPlayers(context.Background(), roster[:1])
	assert.Error(t, err)
}
