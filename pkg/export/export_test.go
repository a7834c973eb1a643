package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/tourman/pkg/tournament"
)

var (
	alice = tournament.Standing{ID: "p1", Name: "Alice"}
	bob   = tournament.Standing{ID: "p2", Name: "Bob"}
	carol = tournament.Standing{ID: "p3", Name: "Carol"}

	round3 = []tournament.Pairing{
		{Player1: alice, Player2: &bob},
		{Player1: carol},
	}
)

const sheet = `round_id,player1_id,player1_name,player1_score,player2_score,player2_name,player2_id
3,p1,Alice,?,?,Bob,p2
3,p3,Carol,BYE,_,_,_
`

func TestWritePairings(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WritePairings(&buffer, 3, round3))
	assert.Equal(t, sheet, buffer.String())
}

func TestWriteDisplay(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteDisplay(&buffer, round3))
	assert.Equal(t, "Alice ?  -  ? Bob\nCarol has a BYE\n", buffer.String())
}

func TestExportRound(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	sheetPath, displayPath, err := ExportRound(context.Background(), dir, 3, round3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pairings_r3.csv"), sheetPath)
	assert.Equal(t, filepath.Join(dir, "pairings-display.txt"), displayPath)

	data, err := os.ReadFile(sheetPath)
	require.NoError(t, err)
	assert.Equal(t, sheet, string(data))

	data, err = os.ReadFile(displayPath)
	require.NoError(t, err)
	assert.Equal(t, "Alice ?  -  ? Bob\nCarol has a BYE\n", string(data))
}

func TestExportRoundCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ExportRound(ctx, t.TempDir(), 1, round3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadResults(t *testing.T) {
	filled := strings.NewReplacer("?,?", "0.5,0.5").Replace(sheet)

	results, err := ReadResults(strings.NewReader(filled))
	require.NoError(t, err)

	assert.Equal(t, []tournament.Result{
		{
			Round:   3,
			Player1: tournament.Seat{ID: "p1", Name: "Alice", Score: tournament.Draw},
			Player2: &tournament.Seat{ID: "p2", Name: "Bob", Score: tournament.Draw},
		},
		tournament.NewBye(3, "p3", "Carol"),
	}, results)
}

func TestReadResultsInvalid(t *testing.T) {
	header := strings.Join(Header, ",") + "\n"

	tests := []struct {
		name    string
		rows    string
		wantErr error
		row     string
	}{
		{"unplayed", "1,p1,A,?,?,B,p2\n", tournament.ErrScoreViolation, "row 2"},
		{"bad score", "1,p1,A,1,0,B,p2\n1,p3,C,0.7,0.3,D,p4\n", tournament.ErrScoreViolation, "row 3"},
		{"bad sum", "1,p1,A,1,1,B,p2\n", tournament.ErrScoreViolation, "row 2"},
		{"not a number", "1,p1,A,won,0,B,p2\n", tournament.ErrScoreViolation, "row 2"},
		{"bad round", "zero,p1,A,1,0,B,p2\n", tournament.ErrInvalidRound, "row 2"},
		{"self", "1,p1,A,1,0,A,p1\n", tournament.ErrPlayerMismatch, "row 2"},
		{"bye with opponent", "2,p1,A,BYE,?,B,p2\n", tournament.ErrPlayerMismatch, "row 2"},
		{"bye with score", "2,p1,A,1,0,B,p2\n2,p3,C,BYE,0,_,_\n", tournament.ErrPlayerMismatch, "row 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadResults(strings.NewReader(header + tt.rows))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorContains(t, err, tt.row)
		})
	}

	_, err := ReadResults(strings.NewReader("a,b,c,d,e,f,g\n"))
	assert.ErrorContains(t, err, "header")

	_, err = ReadResults(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadResults(strings.NewReader(header + "1,p1,A\n"))
	assert.Error(t, err)
}

func TestReadPlayers(t *testing.T) {
	input := "id,name,email\np1,Alice,alice@example.com\n,Bob,\np3, Carol ,carol@example.com\n"

	players, err := ReadPlayers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, tournament.Player{ID: "p1", Name: "Alice", Email: "alice@example.com"}, players[0])
	assert.Equal(t, "Carol", players[2].Name)

	assert.Equal(t, "Bob", players[1].Name)
	_, err = uuid.Parse(players[1].ID)
	assert.NoError(t, err, "generated id %q", players[1].ID)
}

func TestReadPlayersNoEmailColumn(t *testing.T) {
	players, err := ReadPlayers(strings.NewReader("name,id\nAlice,p1\n"))
	require.NoError(t, err)
	assert.Equal(t, []tournament.Player{{ID: "p1", Name: "Alice"}}, players)
}

func TestReadPlayersInvalid(t *testing.T) {
	_, err := ReadPlayers(strings.NewReader("id,email\np1,a@example.com\n"))
	assert.ErrorContains(t, err, "no name column")

	_, err = ReadPlayers(strings.NewReader("id,name\np1,\n"))
	assert.ErrorContains(t, err, "row 2")

	_, err = ReadPlayers(strings.NewReader("id,name\np1,Alice\np1,Bob\n"))
	assert.ErrorContains(t, err, "row 3")

	_, err = ReadPlayers(strings.NewReader(""))
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	ranked := []tournament.Standing{
		{ID: "p1", Name: "Alice", Points: 2, TiebreakA: 1.5, Matches: 2, Active: true},
		{ID: "p3", Name: "Carol", Points: 1, Bye: true, Matches: 2, Active: true},
	}

	standings := StandingsTable(ranked)
	for _, want := range []string{"Buchholz", "Alice", "Carol", "2.0", "1.5", "yes"} {
		assert.Contains(t, standings, want)
	}

	results := ResultsTable([]tournament.Result{
		{
			Round:   1,
			Player1: tournament.Seat{ID: "p1", Name: "Alice", Score: tournament.Win},
			Player2: &tournament.Seat{ID: "p2", Name: "Bob", Score: tournament.Loss},
		},
		tournament.NewBye(1, "p3", "Carol"),
	})
	for _, want := range []string{"Alice", "1.0", "0.0", "Bob", "BYE"} {
		assert.Contains(t, results, want)
	}

	players := PlayersTable([]tournament.Player{{ID: "p1", Name: "Alice", Email: "alice@example.com"}})
	assert.Contains(t, players, "alice@example.com")

	pairings := PairingsTable(3, round3)
	assert.Contains(t, pairings, "Bob")
	assert.Contains(t, pairings, "BYE")
}
