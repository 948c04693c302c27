package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements benchmark.Store using SQLite
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{sqlStore{db: db}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	return s.exec(
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			variant TEXT NOT NULL,
			policy TEXT NOT NULL,
			source TEXT NOT NULL,
			elements INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bench_results (
			run_id INTEGER NOT NULL REFERENCES bench_runs(id) ON DELETE CASCADE,
			repetition INTEGER NOT NULL,
			total TEXT NOT NULL,
			seconds REAL NOT NULL,
			PRIMARY KEY (run_id, repetition)
		);`,
	)
}
