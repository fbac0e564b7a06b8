package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/flightreg/internal/schema"
	"github.com/roach88/flightreg/internal/validation"
)

// createTestStore opens a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSummary builds a finished pass with one outcome of each status.
func createTestSummary(id string, startedAt time.Time) *validation.Summary {
	s := &validation.Summary{
		RunID:      id,
		StartedAt:  startedAt,
		SchemaPath: "schemas/aircraft_schema.json",
		Outcomes:   []validation.Outcome{},
	}
	s.Add(validation.Outcome{
		Path:   "01_Military_Aviation/f22.yaml",
		Status: validation.StatusValid,
		Digest: "aa11",
	})
	s.Add(validation.Outcome{
		Path:       "02_Unmanned_Systems/mq9.yaml",
		Status:     validation.StatusInvalid,
		Message:    "(root): name is required",
		Violations: []schema.Violation{{Field: schema.RootField, Message: "name is required"}},
		Digest:     "bb22",
	})
	s.Add(validation.Outcome{
		Path:    "05_Core_Technologies/garbage.yaml",
		Status:  validation.StatusError,
		Message: "yaml: line 1: did not find expected ',' or ']'",
	})
	return s
}
