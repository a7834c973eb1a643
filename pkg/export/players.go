package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// ReadPlayers reads a registration sheet with the columns id, name, and
// email. The email column is optional, and players without an id are
// given a random one.
func ReadPlayers(r io.Reader) ([]tournament.Player, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("registration sheet is empty")
		}

		return nil, err
	}

	columns := make(map[string]int)
	for i, column := range trim(header) {
		columns[strings.ToLower(column)] = i
	}

	if _, found := columns["name"]; !found {
		return nil, errors.New("registration sheet has no name column")
	}

	field := func(record []string, column string) string {
		if i, found := columns[column]; found && i < len(record) {
			return strings.TrimSpace(record[i])
		}

		return ""
	}

	var players []tournament.Player
	seen := make(map[string]int)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		player := tournament.Player{
			ID:    field(record, "id"),
			Name:  field(record, "name"),
			Email: field(record, "email"),
		}

		if player.Name == "" {
			return nil, fmt.Errorf("row %d: player has no name", row)
		}

		if player.ID == "" {
			player.ID = uuid.NewString()
		}

		if first, found := seen[player.ID]; found {
			return nil, fmt.Errorf("row %d: id %s already used in row %d", row, player.ID, first)
		}

		seen[player.ID] = row
		players = append(players, player)
	}

	return players, nil
}
