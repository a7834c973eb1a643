package tournament

import (
	"fmt"
	"strconv"
	"strings"
)

// Score is the number of points a player takes from a single game.
type Score float64

const (
	Loss Score = 0.0
	Draw Score = 0.5
	Win  Score = 1.0
)

// ParseScore parses a score string as found in result sheets.
func ParseScore(str string) (Score, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrScoreViolation, str)
	}

	score := Score(value)
	if !score.Valid() {
		return 0, fmt.Errorf("%w: %v is not one of 0.0, 0.5, 1.0", ErrScoreViolation, value)
	}

	return score, nil
}

func (score Score) Valid() bool {
	switch score {
	case Loss, Draw, Win:
		return true
	default:
		return false
	}
}

func (score Score) String() string {
	return strconv.FormatFloat(float64(score), 'f', 1, 64)
}

// Seat is one side of a game result.
type Seat struct {
	ID    string
	Name  string
	Score Score
}

// Result is one completed pairing of a round. A nil Player2 marks a bye.
type Result struct {
	Round int

	Player1 Seat
	Player2 *Seat
}

// NewBye returns the result of a bye for the given player.
func NewBye(round int, id, name string) Result {
	return Result{
		Round:   round,
		Player1: Seat{ID: id, Name: name, Score: Win},
	}
}

func (result Result) IsBye() bool {
	return result.Player2 == nil
}

// Seats returns the seats of the players taking part in the result.
func (result Result) Seats() []Seat {
	if result.IsBye() {
		return []Seat{result.Player1}
	}

	return []Seat{result.Player1, *result.Player2}
}

// Validate checks the score invariants of the result.
func (result Result) Validate() error {
	if result.Round < 1 {
		return fmt.Errorf("%w: round %d is not positive", ErrInvalidRound, result.Round)
	}

	if result.IsBye() {
		if result.Player1.Score != Win {
			return fmt.Errorf(
				"%w: round %d: bye for %s must score 1.0, got %v",
				ErrScoreViolation, result.Round, result.Player1.ID, result.Player1.Score,
			)
		}
		return nil
	}

	if result.Player1.ID == result.Player2.ID {
		return fmt.Errorf("%w: round %d: %s is paired against themselves", ErrPlayerMismatch, result.Round, result.Player1.ID)
	}

	for _, seat := range []Seat{result.Player1, *result.Player2} {
		if !seat.Score.Valid() {
			return fmt.Errorf(
				"%w: round %d: score %v of %s is not one of 0.0, 0.5, 1.0",
				ErrScoreViolation, result.Round, float64(seat.Score), seat.ID,
			)
		}
	}

	if result.Player1.Score+result.Player2.Score != Win {
		return fmt.Errorf(
			"%w: round %d: %s %v - %v %s does not sum to 1.0",
			ErrScoreViolation, result.Round,
			result.Player1.ID, result.Player1.Score, result.Player2.Score, result.Player2.ID,
		)
	}

	return nil
}

func (result Result) String() string {
	if result.IsBye() {
		return fmt.Sprintf("%s has a BYE", result.Player1.Name)
	}

	return fmt.Sprintf(
		"%s %v - %v %s",
		result.Player1.Name, result.Player1.Score,
		result.Player2.Score, result.Player2.Name,
	)
}
