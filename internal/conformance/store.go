package conformance

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists reports into a sqlite database so runs can be diffed
// over time. One row per run, one row per case result.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	suite      TEXT NOT NULL,
	file       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	cases      INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	name     TEXT NOT NULL,
	op       TEXT NOT NULL,
	passed   INTEGER NOT NULL,
	got      TEXT NOT NULL,
	codes    TEXT NOT NULL,
	problems TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run ON results(run_id);
`

// OpenStore opens the report database at path, creating it and its
// schema when missing.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordReport writes the report and all its case results in one
// transaction.
func (s *Store) RecordReport(rep *Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recording run %s: %w", rep.RunID, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, suite, file, started_at, elapsed_ms, cases, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.Suite, rep.File,
		rep.StartedAt.UTC().Format(time.RFC3339),
		rep.Elapsed.Milliseconds(), len(rep.Results), rep.Failed(),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", rep.RunID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO results (run_id, name, op, passed, got, codes, problems)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", rep.RunID, err)
	}
	defer stmt.Close()

	for _, res := range rep.Results {
		passed := 0
		if res.Passed {
			passed = 1
		}
		_, err := stmt.Exec(rep.RunID, res.Name, res.Op, passed, res.Got,
			strings.Join(res.Codes, " "), strings.Join(res.Problems, "; "))
		if err != nil {
			return fmt.Errorf("recording case %s: %w", res.Name, err)
		}
	}

	return tx.Commit()
}

// RunSummary reads back the recorded case and failure counts of a run.
func (s *Store) RunSummary(runID string) (cases, failed int, err error) {
	row := s.db.QueryRow(`SELECT cases, failed FROM runs WHERE id = ?`, runID)
	if err := row.Scan(&cases, &failed); err != nil {
		return 0, 0, fmt.Errorf("reading run %s: %w", runID, err)
	}
	return cases, failed, nil
}

// FailedCases lists the names of failed cases recorded for a run.
func (s *Store) FailedCases(runID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM results WHERE run_id = ? AND passed = 0 ORDER BY name`, runID)
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("reading run %s: %w", runID, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
