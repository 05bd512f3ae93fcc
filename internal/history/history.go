// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jeranaias/ovbench/internal/benchmark"
)

// DBFileName is the history database file inside the store directory.
const DBFileName = "history.db"

// schema holds both tables. results reference their run by id; the reason
// column stores the FailureReason string form so rows stay readable from
// the sqlite shell.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	duration    INTEGER NOT NULL,
	total_fps   REAL NOT NULL,
	has_total   INTEGER NOT NULL,
	started_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	device   TEXT NOT NULL,
	fps      REAL NOT NULL,
	reason   TEXT NOT NULL,
	message  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
`

// =============================================================================
// STORE
// =============================================================================

// Store persists run reports to SQLite.
type Store struct {
	db *sql.DB
}

// Run is one persisted run with its per-device results.
type Run struct {
	ID        string
	Model     string
	Duration  int
	TotalFPS  float64
	HasTotal  bool
	StartedAt time.Time
	Results   []Result
}

// Result is one persisted per-device outcome.
type Result struct {
	Device  string
	FPS     float64
	Reason  string
	Message string
}

// Open opens (creating if necessary) the history database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	path := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Single connection avoids SQLITE_BUSY with the pure-Go driver.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one run report and returns the generated run id.
func (s *Store) Save(report *benchmark.RunReport) (string, error) {
	id := uuid.New().String()

	startedAt := report.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	hasTotal := 0
	if report.HasTotal {
		hasTotal = 1
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, model, duration, total_fps, has_total, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, report.Model, report.Duration, report.TotalFPS, hasTotal, startedAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	insert := func(o benchmark.Outcome) error {
		_, err := tx.Exec(
			`INSERT INTO results (run_id, device, fps, reason, message) VALUES (?, ?, ?, ?, ?)`,
			id, o.Device, o.FPS, o.Err.String(), o.Message,
		)
		return err
	}

	for _, o := range report.Successes {
		if err := insert(o); err != nil {
			return "", fmt.Errorf("failed to insert result: %w", err)
		}
	}
	for _, o := range report.Failures {
		if err := insert(o); err != nil {
			return "", fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// Recent returns the most recent runs, newest first, with their results.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, model, duration, total_fps, has_total, started_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var hasTotal int
		var startedAt int64
		if err := rows.Scan(&r.ID, &r.Model, &r.Duration, &r.TotalFPS, &hasTotal, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.HasTotal = hasTotal != 0
		r.StartedAt = time.Unix(startedAt, 0)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		results, err := s.resultsFor(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}

	return runs, nil
}

func (s *Store) resultsFor(runID string) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT device, fps, reason, message FROM results WHERE run_id = ? ORDER BY device`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Device, &r.FPS, &r.Reason, &r.Message); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
