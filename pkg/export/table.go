package export

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"laptudirm.com/x/tourman/pkg/tournament"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true).Foreground(lipgloss.Color("240"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Gold, Silver, and Bronze.
	podium = []lipgloss.Color{"220", "250", "208"}
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func plain(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}

	return cellStyle
}

// StandingsTable renders the given ranked standings, highlighting the
// podium.
func StandingsTable(ranked []tournament.Standing) string {
	t := newTable("#", "ID", "Name", "Points", "Buchholz", "TB B", "TB C", "Matches", "Bye", "Active")
	for i, s := range ranked {
		t.Row(
			strconv.Itoa(i+1), s.ID, s.Name,
			points(s.Points), points(s.TiebreakA), points(s.TiebreakB), points(s.TiebreakC),
			strconv.Itoa(s.Matches), yesNo(s.Bye), yesNo(s.Active),
		)
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row >= 0 && row < len(podium) {
			return cellStyle.Foreground(podium[row])
		}

		return plain(row, col)
	}).Render()
}

// ResultsTable renders the result log.
func ResultsTable(results []tournament.Result) string {
	t := newTable("Round", "Player 1", "Score", "Score", "Player 2")
	for _, result := range results {
		round := strconv.Itoa(result.Round)
		if result.IsBye() {
			t.Row(round, result.Player1.Name, ByeScore, Placeholder, Placeholder)
			continue
		}

		t.Row(
			round,
			result.Player1.Name, result.Player1.Score.String(),
			result.Player2.Score.String(), result.Player2.Name,
		)
	}

	return t.StyleFunc(plain).Render()
}

// PlayersTable renders the registered players.
func PlayersTable(players []tournament.Player) string {
	t := newTable("ID", "Name", "Email")
	for _, player := range players {
		t.Row(player.ID, player.Name, player.Email)
	}

	return t.StyleFunc(plain).Render()
}

// PairingsTable renders a round's pairings.
func PairingsTable(round int, pairings []tournament.Pairing) string {
	t := newTable("Round", "Board", "Player 1", "Player 2")
	for i, pairing := range pairings {
		opponent := ByeScore
		if !pairing.IsBye() {
			opponent = pairing.Player2.Name
		}

		t.Row(strconv.Itoa(round), strconv.Itoa(i+1), pairing.Player1.Name, opponent)
	}

	return t.StyleFunc(plain).Render()
}

func points(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
