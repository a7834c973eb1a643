package tournament

// Buchholz computes the Buchholz score of every given player: the sum of
// the current points of all the distinct opponents they have faced. Players
// who haven't faced anyone, or only had byes, score 0.
//
// Opponents are looked up among the given standings, so they should
// include every registered player, not just the active ones.
func Buchholz(standings []Standing, h2h *HeadToHead) map[string]float64 {
	points := make(map[string]float64, len(standings))
	for _, standing := range standings {
		points[standing.ID] = standing.Points
	}

	scores := make(map[string]float64, len(standings))
	for _, standing := range standings {
		sum := 0.0
		for _, opponent := range h2h.Opponents(standing.ID) {
			sum += points[opponent]
		}

		scores[standing.ID] = sum
	}

	return scores
}

// ApplyBuchholz recomputes the Buchholz score of every given player in one
// pass, stores it in their TiebreakA field, and returns the updated
// tiebreaks ready to be persisted.
func ApplyBuchholz(standings []Standing, h2h *HeadToHead) []Tiebreak {
	scores := Buchholz(standings, h2h)

	tiebreaks := make([]Tiebreak, len(standings))
	for i := range standings {
		standings[i].TiebreakA = scores[standings[i].ID]
		tiebreaks[i] = Tiebreak{
			ID: standings[i].ID,
			A:  standings[i].TiebreakA,
			B:  standings[i].TiebreakB,
			C:  standings[i].TiebreakC,
		}
	}

	return tiebreaks
}
