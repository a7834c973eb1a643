package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/tourman/pkg/tournament"
)

// Store is a sqlite database holding a tournament's players, standings,
// and result log.
type Store struct {
	db *sql.DB
}

// Open opens the sqlite database at the given path, creating the file if
// it doesn't exist. Use Init to create the tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("Opened tournament database")
	return &Store{db: db}, nil
}

// Init creates the tournament tables if they don't already exist.
func (store *Store) Init(ctx context.Context) error {
	if _, err := store.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	return nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

// Transact runs fn inside a single database transaction. The transaction is
// committed if fn returns nil and rolled back otherwise, so either all of
// fn's changes are visible or none of them are.
func (store *Store) Transact(ctx context.Context, fn func(tournament.Repository) error) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&repository{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("Rollback failed")
		}

		logrus.Debug("Rolled back all changes")
		return err
	}

	return tx.Commit()
}
