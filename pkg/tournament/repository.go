package tournament

import "context"

// Repository is the storage of a tournament's standings and result log.
type Repository interface {
	// ListPlayers returns the standings of every registered player, in the
	// order they registered.
	ListPlayers(ctx context.Context) ([]Standing, error)

	// ListActivePlayers returns the standings of the players eligible for
	// pairing, in ranked order.
	ListActivePlayers(ctx context.Context) ([]Standing, error)

	// ListRegistrations returns the registration record of every player,
	// in the order they registered.
	ListRegistrations(ctx context.Context) ([]Player, error)

	// ListResults returns the complete result log.
	ListResults(ctx context.Context) ([]Result, error)

	// MaxAppliedRound returns the last round applied to the standings, or
	// 0 if none have been applied yet.
	MaxAppliedRound(ctx context.Context) (int, error)

	// MaxResultRound returns the last round present in the result log, or
	// 0 if the log is empty.
	MaxResultRound(ctx context.Context) (int, error)

	AddPlayers(ctx context.Context, players []Player) error
	SetActive(ctx context.Context, id string, active bool) error
	AddResults(ctx context.Context, results []Result) error

	// ApplyRoundResults adds the results' scores to the standings, counts
	// a match for each player in them, and marks the round as applied.
	ApplyRoundResults(ctx context.Context, round int, results []Result) error

	SetTiebreaks(ctx context.Context, tiebreaks []Tiebreak) error
	SetBye(ctx context.Context, id string) error
}

// Store runs sequences of repository operations atomically.
type Store interface {
	// Transact calls fn with a repository whose changes are committed only
	// if fn returns nil, and are rolled back otherwise.
	Transact(ctx context.Context, fn func(Repository) error) error
}
