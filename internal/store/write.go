package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/flightreg/internal/validation"
)

// ErrNilSummary is returned by SaveRun when there is nothing to record.
var ErrNilSummary = errors.New("save run: nil summary")

// timeLayout is used for started_at so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveRun records a finished pass and all of its outcomes in one transaction.
// Saving the same run ID twice fails with a constraint error and leaves the
// first copy untouched.
func (s *Store) SaveRun(ctx context.Context, summary *validation.Summary, exitCode int) error {
	if summary == nil {
		return ErrNilSummary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, schema_path, total, passed, invalid, errored, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		summary.RunID,
		summary.StartedAt.UTC().Format(timeLayout),
		summary.SchemaPath,
		summary.Total,
		summary.Passed,
		summary.Invalid,
		summary.Errored,
		exitCode,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", summary.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes
		(run_id, seq, path, status, message, violations, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save run %s: prepare: %w", summary.RunID, err)
	}
	defer stmt.Close()

	for i, o := range summary.Outcomes {
		violations, err := marshalViolations(o)
		if err != nil {
			return fmt.Errorf("save outcome %s: %w", o.Path, err)
		}
		if _, err := stmt.ExecContext(ctx,
			summary.RunID,
			i+1,
			o.Path,
			o.Status.String(),
			o.Message,
			violations,
			o.Digest,
		); err != nil {
			return fmt.Errorf("save outcome %s: %w", o.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s: commit: %w", summary.RunID, err)
	}
	return nil
}

func marshalViolations(o validation.Outcome) (string, error) {
	if len(o.Violations) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(o.Violations)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
