package tournament

import (
	"fmt"
	"slices"
)

// RoundRobinSchedule generates every round of a round robin tournament
// between the given players, using the circle method: the first seat stays
// fixed while the others rotate around it, so each pair of players meets
// exactly once. With an odd number of players, a phantom seat is added and
// whoever is seated against it gets a bye that round.
//
// The schedule only depends on the order of the players, so the same
// order has to be used for every round of a tournament.
func RoundRobinSchedule(players []Standing) [][]Pairing {
	var circle circle
	circle.initialize(len(players))

	rounds := make([][]Pairing, circle.rounds())
	for round := range rounds {
		if round > 0 {
			circle.rotate()
		}

		for pair := range circle.top {
			p1, p2 := circle.top[pair], circle.bottom[pair]

			// Put the real player first if one of them is the phantom.
			if p1 >= circle.player_count {
				p1, p2 = p2, p1
			}

			pairing := Pairing{Player1: players[p1]}
			if p2 < circle.player_count {
				opponent := players[p2]
				pairing.Player2 = &opponent
			}

			rounds[round] = append(rounds[round], pairing)
		}
	}

	return rounds
}

// RoundRobinRound returns the pairings of the given round, counting from 1,
// of the round robin schedule between the given players.
func RoundRobinRound(players []Standing, round int) ([]Pairing, error) {
	schedule := RoundRobinSchedule(players)
	if round < 1 || round > len(schedule) {
		return nil, fmt.Errorf(
			"%w: round %d: a round robin of %d players has %d rounds",
			ErrInvalidRound, round, len(players), len(schedule),
		)
	}

	return schedule[round-1], nil
}

type circle struct {
	player_count int

	// The seats facing each other: top[i] plays bottom[i].
	top, bottom []int
}

func (c *circle) initialize(n int) {
	c.player_count = n
	rounded_total := c.player_count + c.player_count%2

	c.top = make([]int, rounded_total/2)
	c.bottom = make([]int, rounded_total/2)

	for i := 0; i < rounded_total; i++ {
		if i < rounded_total/2 {
			c.top[i] = i
		} else {
			c.bottom[rounded_total-i-1] = i
		}
	}
}

func (c *circle) rounds() int {
	if c.player_count < 2 {
		return 0
	}

	return len(c.top)*2 - 1
}

// rotate moves every seat except the first one a step clockwise.
func (c *circle) rotate() {
	last_idx := len(c.top) - 1
	last_elem := c.top[last_idx]

	c.top = slices.Insert(c.top, 1, c.bottom[0])[:last_idx+1]
	c.bottom = append(c.bottom, last_elem)[1:]
}
