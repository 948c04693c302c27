package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore implements benchmark.Store using PostgreSQL
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{sqlStore{db: db, dollar: true}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	return s.exec(
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id BIGSERIAL PRIMARY KEY,
			created_at BIGINT NOT NULL,
			variant TEXT NOT NULL,
			policy TEXT NOT NULL,
			source TEXT NOT NULL,
			elements BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bench_results (
			run_id BIGINT NOT NULL REFERENCES bench_runs(id) ON DELETE CASCADE,
			repetition INTEGER NOT NULL,
			total TEXT NOT NULL,
			seconds DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, repetition)
		);`,
	)
}
