package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/flightreg/internal/schema"
	"github.com/roach88/flightreg/internal/validation"
)

// ErrRunNotFound is returned when a run ID has no history.
var ErrRunNotFound = errors.New("run not found")

// Run is one row of run history.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	SchemaPath string    `json:"schema_path"`
	Total      int       `json:"total"`
	Passed     int       `json:"passed"`
	Invalid    int       `json:"invalid"`
	Errored    int       `json:"errored"`
	ExitCode   int       `json:"exit_code"`
}

// ListRuns returns up to limit runs, newest first.
// A limit of zero or less returns every run.
//
// Returns an empty slice (not nil) if no runs have been recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, schema_path, total, passed, invalid, errored, exit_code
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns ErrRunNotFound if the ID is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, schema_path, total, passed, invalid, errored, exit_code
		FROM runs
		WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// ReadOutcomes returns the outcomes of one run in discovery order.
// Returns ErrRunNotFound if the ID is unknown.
func (s *Store) ReadOutcomes(ctx context.Context, runID string) ([]validation.Outcome, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, status, message, violations, digest
		FROM outcomes
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []validation.Outcome{}
	for rows.Next() {
		var (
			o          validation.Outcome
			status     string
			violations string
		)
		if err := rows.Scan(&o.Path, &status, &o.Message, &violations, &o.Digest); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		if o.Status, err = validation.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("outcome %s: %w", o.Path, err)
		}
		if o.Violations, err = unmarshalViolations(violations); err != nil {
			return nil, fmt.Errorf("outcome %s: %w", o.Path, err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r         Run
		startedAt string
	)
	err := row.Scan(&r.ID, &startedAt, &r.SchemaPath, &r.Total, &r.Passed, &r.Invalid, &r.Errored, &r.ExitCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if r.StartedAt, err = parseTime(startedAt); err != nil {
		return Run{}, fmt.Errorf("run %s: started_at: %w", r.ID, err)
	}
	return r, nil
}

func unmarshalViolations(s string) ([]schema.Violation, error) {
	var vs []schema.Violation
	if err := json.Unmarshal([]byte(s), &vs); err != nil {
		return nil, fmt.Errorf("violations: %w", err)
	}
	if len(vs) == 0 {
		return nil, nil
	}
	return vs, nil
}
