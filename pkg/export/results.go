package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// ReadResults reads a filled in result sheet. Every result is validated,
// and errors name the offending row.
func ReadResults(r io.Reader) ([]tournament.Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("result sheet is empty")
		}

		return nil, err
	}

	if !slices.Equal(trim(header), Header) {
		return nil, fmt.Errorf("unexpected result sheet header %q", strings.Join(header, ","))
	}

	var results []tournament.Result
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		result, err := parseResult(trim(record))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		results = append(results, result)
	}

	return results, nil
}

func parseResult(record []string) (tournament.Result, error) {
	round, err := strconv.Atoi(record[0])
	if err != nil || round < 1 {
		return tournament.Result{}, fmt.Errorf("%w: %q", tournament.ErrInvalidRound, record[0])
	}

	id1, name1, score1 := record[1], record[2], record[3]
	score2, name2, id2 := record[4], record[5], record[6]

	if strings.EqualFold(score1, ByeScore) {
		for _, field := range []string{score2, name2, id2} {
			if field != Placeholder {
				return tournament.Result{}, fmt.Errorf(
					"%w: bye of %s has %q in the opponent's columns, expected %q",
					tournament.ErrPlayerMismatch, name1, field, Placeholder,
				)
			}
		}

		return tournament.NewBye(round, id1, name1), nil
	}

	if score1 == Unplayed || score2 == Unplayed {
		return tournament.Result{}, fmt.Errorf("%w: %s vs %s has not been played", tournament.ErrScoreViolation, name1, name2)
	}

	s1, err := tournament.ParseScore(score1)
	if err != nil {
		return tournament.Result{}, err
	}

	s2, err := tournament.ParseScore(score2)
	if err != nil {
		return tournament.Result{}, err
	}

	result := tournament.Result{
		Round:   round,
		Player1: tournament.Seat{ID: id1, Name: name1, Score: s1},
		Player2: &tournament.Seat{ID: id2, Name: name2, Score: s2},
	}

	return result, result.Validate()
}

func trim(record []string) []string {
	trimmed := make([]string, len(record))
	for i, field := range record {
		trimmed[i] = strings.TrimSpace(field)
	}

	return trimmed
}
