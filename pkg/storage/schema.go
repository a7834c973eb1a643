package storage

// schema creates the tournament tables. Every statement is idempotent, so
// it is safe to run on an existing database.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	id    TEXT NOT NULL UNIQUE,
	name  TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS standings (
	id           TEXT PRIMARY KEY REFERENCES players(id),
	name         TEXT NOT NULL,
	is_active    BOOLEAN NOT NULL DEFAULT 1,
	is_bye       BOOLEAN NOT NULL DEFAULT 0,
	matches      INTEGER NOT NULL DEFAULT 0,
	points       REAL NOT NULL DEFAULT 0 CHECK (points >= 0),
	tiebreaker_a REAL NOT NULL DEFAULT 0,
	tiebreaker_b REAL NOT NULL DEFAULT 0,
	tiebreaker_c REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	round_id      INTEGER NOT NULL CHECK (round_id > 0),
	player1_id    TEXT NOT NULL REFERENCES players(id),
	player1_name  TEXT NOT NULL,
	player1_score REAL NOT NULL,
	player2_score REAL,
	player2_name  TEXT,
	player2_id    TEXT REFERENCES players(id)
);

-- A pair of players may only meet once in a tournament.
CREATE UNIQUE INDEX IF NOT EXISTS results_pair ON results (
	min(player1_id, player2_id),
	max(player1_id, player2_id)
) WHERE player2_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS applied_rounds (
	round_id   INTEGER PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
