package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
//
// vibe_sessions carries no foreign key to vibes: ledger rows are weak
// references and deliberately outlive deleted vibe definitions so that
// historical days keep their accounting.
func (db *DB) RunMigrations() error {
	migration := `
-- Vibe definitions (the registry)
CREATE TABLE IF NOT EXISTS vibes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
-- Name uniqueness is checked case-insensitively at creation time by the
-- registry service only; renames are deliberately unchecked.

-- Per-date, per-vibe accounting rows
CREATE TABLE IF NOT EXISTS vibe_sessions (
    date TEXT NOT NULL,
    vibe_id TEXT NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    total_time INTEGER NOT NULL DEFAULT 0 CHECK(total_time >= 0),
    is_running INTEGER NOT NULL DEFAULT 0,
    start_time INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (date, vibe_id)
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON vibe_sessions(date);
CREATE INDEX IF NOT EXISTS idx_sessions_running ON vibe_sessions(is_running);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
