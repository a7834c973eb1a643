package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// repository implements tournament.Repository on top of a transaction.
type repository struct {
	tx *sql.Tx
}

var _ tournament.Repository = (*repository)(nil)

const standingColumns = `s.id, s.name, s.is_active, s.is_bye, s.matches, s.points,
	s.tiebreaker_a, s.tiebreaker_b, s.tiebreaker_c`

func (repo *repository) ListPlayers(ctx context.Context) ([]tournament.Standing, error) {
	return repo.standings(ctx, `
		SELECT `+standingColumns+`
		FROM standings s JOIN players p ON p.id = s.id
		ORDER BY p.seq`)
}

func (repo *repository) ListActivePlayers(ctx context.Context) ([]tournament.Standing, error) {
	return repo.standings(ctx, `
		SELECT `+standingColumns+`
		FROM standings s JOIN players p ON p.id = s.id
		WHERE s.is_active
		ORDER BY s.points DESC, s.tiebreaker_a DESC, s.tiebreaker_b DESC,
			s.tiebreaker_c DESC, p.seq`)
}

func (repo *repository) standings(ctx context.Context, query string) ([]tournament.Standing, error) {
	rows, err := repo.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []tournament.Standing
	for rows.Next() {
		var s tournament.Standing
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Active, &s.Bye, &s.Matches, &s.Points,
			&s.TiebreakA, &s.TiebreakB, &s.TiebreakC,
		); err != nil {
			return nil, err
		}

		standings = append(standings, s)
	}

	return standings, rows.Err()
}

func (repo *repository) ListRegistrations(ctx context.Context) ([]tournament.Player, error) {
	rows, err := repo.tx.QueryContext(ctx, `SELECT id, name, email FROM players ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []tournament.Player
	for rows.Next() {
		var p tournament.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}

		players = append(players, p)
	}

	return players, rows.Err()
}

func (repo *repository) ListResults(ctx context.Context) ([]tournament.Result, error) {
	rows, err := repo.tx.QueryContext(ctx, `
		SELECT round_id, player1_id, player1_name, player1_score,
			player2_score, player2_name, player2_id
		FROM results
		ORDER BY round_id, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []tournament.Result
	for rows.Next() {
		var (
			result tournament.Result
			score1 float64
			score2 sql.NullFloat64
			name2  sql.NullString
			id2    sql.NullString
		)

		if err := rows.Scan(
			&result.Round, &result.Player1.ID, &result.Player1.Name, &score1,
			&score2, &name2, &id2,
		); err != nil {
			return nil, err
		}

		result.Player1.Score = tournament.Score(score1)
		if id2.Valid {
			result.Player2 = &tournament.Seat{
				ID:    id2.String,
				Name:  name2.String,
				Score: tournament.Score(score2.Float64),
			}
		}

		results = append(results, result)
	}

	return results, rows.Err()
}

func (repo *repository) MaxAppliedRound(ctx context.Context) (int, error) {
	return repo.maxRound(ctx, `SELECT COALESCE(MAX(round_id), 0) FROM applied_rounds`)
}

func (repo *repository) MaxResultRound(ctx context.Context) (int, error) {
	return repo.maxRound(ctx, `SELECT COALESCE(MAX(round_id), 0) FROM results`)
}

func (repo *repository) maxRound(ctx context.Context, query string) (int, error) {
	var round int
	err := repo.tx.QueryRowContext(ctx, query).Scan(&round)
	return round, err
}

func (repo *repository) AddPlayers(ctx context.Context, players []tournament.Player) error {
	for _, player := range players {
		if _, err := repo.tx.ExecContext(ctx,
			`INSERT INTO players (id, name, email) VALUES (?, ?, ?)`,
			player.ID, player.Name, player.Email,
		); err != nil {
			return fmt.Errorf("register player %s: %w", player.ID, err)
		}

		if _, err := repo.tx.ExecContext(ctx,
			`INSERT INTO standings (id, name) VALUES (?, ?)`,
			player.ID, player.Name,
		); err != nil {
			return fmt.Errorf("create standing for %s: %w", player.ID, err)
		}
	}

	logrus.WithField("players", len(players)).Debug("Registered players")
	return nil
}

func (repo *repository) SetActive(ctx context.Context, id string, active bool) error {
	return repo.updateOne(ctx, id, `UPDATE standings SET is_active = ? WHERE id = ?`, active, id)
}

func (repo *repository) SetBye(ctx context.Context, id string) error {
	return repo.updateOne(ctx, id, `UPDATE standings SET is_bye = 1 WHERE id = ?`, id)
}

// updateOne runs an update which must touch exactly the standing of the
// player with the given id.
func (repo *repository) updateOne(ctx context.Context, id, query string, args ...any) error {
	res, err := repo.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("%w: no player with id %s", tournament.ErrPlayerMismatch, id)
	}

	return nil
}

func (repo *repository) AddResults(ctx context.Context, results []tournament.Result) error {
	stmt, err := repo.tx.PrepareContext(ctx, `
		INSERT INTO results (round_id, player1_id, player1_name, player1_score,
			player2_score, player2_name, player2_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, result := range results {
		var (
			score2 sql.NullFloat64
			name2  sql.NullString
			id2    sql.NullString
		)

		if !result.IsBye() {
			score2 = sql.NullFloat64{Float64: float64(result.Player2.Score), Valid: true}
			name2 = sql.NullString{String: result.Player2.Name, Valid: true}
			id2 = sql.NullString{String: result.Player2.ID, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			result.Round, result.Player1.ID, result.Player1.Name, float64(result.Player1.Score),
			score2, name2, id2,
		); err != nil {
			return fmt.Errorf("record result %s: %w", result, err)
		}
	}

	return nil
}

func (repo *repository) ApplyRoundResults(ctx context.Context, round int, results []tournament.Result) error {
	// Inserting the round first makes a second application of the same
	// round fail on the primary key before any standing is touched.
	if _, err := repo.tx.ExecContext(ctx,
		`INSERT INTO applied_rounds (round_id) VALUES (?)`, round,
	); err != nil {
		return fmt.Errorf("%w: round %d: %v", tournament.ErrInvalidRound, round, err)
	}

	stmt, err := repo.tx.PrepareContext(ctx, `
		UPDATE standings SET matches = matches + 1, points = points + ?
		WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, result := range results {
		for _, seat := range result.Seats() {
			res, err := stmt.ExecContext(ctx, float64(seat.Score), seat.ID)
			if err != nil {
				return err
			}

			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 0 {
				return fmt.Errorf("%w: no player with id %s", tournament.ErrPlayerMismatch, seat.ID)
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"round":   round,
		"results": len(results),
	}).Debug("Applied round results to standings")
	return nil
}

func (repo *repository) SetTiebreaks(ctx context.Context, tiebreaks []tournament.Tiebreak) error {
	stmt, err := repo.tx.PrepareContext(ctx, `
		UPDATE standings SET tiebreaker_a = ?, tiebreaker_b = ?, tiebreaker_c = ?
		WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, tb := range tiebreaks {
		if _, err := stmt.ExecContext(ctx, tb.A, tb.B, tb.C, tb.ID); err != nil {
			return err
		}
	}

	return nil
}
