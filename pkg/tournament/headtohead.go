package tournament

import (
	"errors"
	"sort"

	"github.com/dominikbraun/graph"
)

// HeadToHead is an index of which players have already faced each other.
// Players are the vertices of an undirected graph, and every completed
// game adds an edge between its two players. Byes add no edges.
type HeadToHead struct {
	// The graph doesn't change after it is built, so only its adjacency
	// map is kept around for lookups.
	adjacency map[string]map[string]graph.Edge[string]
}

// NewHeadToHead builds a fresh index from the given result log.
func NewHeadToHead(results []Result) (*HeadToHead, error) {
	g := graph.New(graph.StringHash)

	addVertex := func(id string) error {
		if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	}

	for _, result := range results {
		if err := addVertex(result.Player1.ID); err != nil {
			return nil, err
		}

		if result.IsBye() {
			continue
		}

		if err := addVertex(result.Player2.ID); err != nil {
			return nil, err
		}

		err := g.AddEdge(result.Player1.ID, result.Player2.ID)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, err
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	return &HeadToHead{adjacency: adjacency}, nil
}

// HavePlayed reports whether the two players have met before.
func (h2h *HeadToHead) HavePlayed(a, b string) bool {
	_, found := h2h.adjacency[a][b]
	return found
}

// Opponents returns the distinct opponents of the given player, ordered
// by their ids.
func (h2h *HeadToHead) Opponents(id string) []string {
	opponents := make([]string, 0, len(h2h.adjacency[id]))
	for opponent := range h2h.adjacency[id] {
		opponents = append(opponents, opponent)
	}

	sort.Strings(opponents)
	return opponents
}
