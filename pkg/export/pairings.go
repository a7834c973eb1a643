package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/tourman/pkg/common"
	"laptudirm.com/x/tourman/pkg/tournament"
)

const (
	// Unplayed marks the score of a game which hasn't been played yet.
	Unplayed = "?"

	// ByeScore marks the first player's score in a bye row.
	ByeScore = "BYE"

	// Placeholder fills the second player's fields in a bye row.
	Placeholder = "_"

	// DisplayFile is the name of the human readable pairing list, which is
	// overwritten every round.
	DisplayFile = "pairings-display.txt"
)

// Header is the column layout shared by pairing exports and result sheets.
var Header = []string{
	"round_id",
	"player1_id", "player1_name", "player1_score",
	"player2_score", "player2_name", "player2_id",
}

// PairingsFile returns the name of the pairing export of the given round.
func PairingsFile(round int) string {
	return fmt.Sprintf("pairings_r%d.csv", round)
}

// WritePairings writes the given round's pairings as a csv result sheet,
// with all scores left to be filled in.
func WritePairings(w io.Writer, round int, pairings []tournament.Pairing) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}

	id := strconv.Itoa(round)
	for _, pairing := range pairings {
		p1 := pairing.Player1

		record := []string{id, p1.ID, p1.Name, ByeScore, Placeholder, Placeholder, Placeholder}
		if !pairing.IsBye() {
			p2 := pairing.Player2
			record = []string{id, p1.ID, p1.Name, Unplayed, Unplayed, p2.Name, p2.ID}
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDisplay writes one human readable line for every pairing.
func WriteDisplay(w io.Writer, pairings []tournament.Pairing) error {
	buffer := bufio.NewWriter(w)
	for _, pairing := range pairings {
		if _, err := fmt.Fprintln(buffer, pairing); err != nil {
			return err
		}
	}

	return buffer.Flush()
}

// ExportRound writes the round's pairing sheet and display file into the
// given directory, concurrently. It returns the paths of the two files.
func ExportRound(ctx context.Context, dir string, round int, pairings []tournament.Pairing) (sheet, display string, err error) {
	if err := common.TryMkdir(dir); err != nil {
		return "", "", err
	}

	sheet = filepath.Join(dir, PairingsFile(round))
	display = filepath.Join(dir, DisplayFile)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeFile(ctx, sheet, func(w io.Writer) error {
			return WritePairings(w, round, pairings)
		})
	})
	g.Go(func() error {
		return writeFile(ctx, display, func(w io.Writer) error {
			return WriteDisplay(w, pairings)
		})
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	logrus.WithFields(logrus.Fields{
		"round":   round,
		"sheet":   sheet,
		"display": display,
	}).Debug("Exported pairings")
	return sheet, display, nil
}

func writeFile(ctx context.Context, path string, write func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return file.Close()
}
