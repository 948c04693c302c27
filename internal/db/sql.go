package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"speedtests/internal/benchmark"
)

// sqlStore persists benchmark runs in two tables shared by every SQL backend.
// Queries are written with '?' placeholders and rebound for the driver.
type sqlStore struct {
	db     *sql.DB
	dollar bool // postgres-style $N placeholders
}

func (s *sqlStore) rebind(query string) string {
	if !s.dollar {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *sqlStore) exec(queries ...string) error {
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Save stores the run and its results in one transaction.
func (s *sqlStore) Save(run benchmark.Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(
		s.rebind(`INSERT INTO bench_runs (created_at, variant, policy, source, elements) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		run.Timestamp.UnixNano(), run.Variant, run.Policy, run.Source, run.Elements,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	insert := s.rebind(`INSERT INTO bench_results (run_id, repetition, total, seconds) VALUES (?, ?, ?, ?)`)
	for _, r := range run.Results {
		if _, err := tx.Exec(insert, id, r.Repetition, r.Total, r.Seconds); err != nil {
			return fmt.Errorf("failed to insert result %d: %w", r.Repetition, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns every stored run, oldest first.
func (s *sqlStore) LoadAll() ([]benchmark.Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, variant, policy, source, elements FROM bench_runs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []benchmark.Run{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id  int64
			ns  int64
			run benchmark.Run
		)
		if err := rows.Scan(&id, &ns, &run.Variant, &run.Policy, &run.Source, &run.Elements); err != nil {
			return nil, err
		}
		run.Timestamp = time.Unix(0, ns)
		index[id] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results, err := s.db.Query(`SELECT run_id, repetition, total, seconds FROM bench_results ORDER BY run_id ASC, repetition ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer results.Close()

	for results.Next() {
		var (
			runID int64
			r     benchmark.Result
		)
		if err := results.Scan(&runID, &r.Repetition, &r.Total, &r.Seconds); err != nil {
			return nil, err
		}
		if i, ok := index[runID]; ok {
			runs[i].Results = append(runs[i].Results, r)
		}
	}
	return runs, results.Err()
}

// LoadLatest returns the most recent run, or nil if none are stored.
func (s *sqlStore) LoadLatest() (*benchmark.Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}
