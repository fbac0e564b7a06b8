package validation

import (
	"fmt"
	"time"

	"github.com/roach88/flightreg/internal/schema"
)

// Status classifies the fate of one data file.
type Status int

const (
	// StatusValid: the normalized record conforms to the schema.
	StatusValid Status = iota
	// StatusInvalid: the record was checked and violates the schema.
	StatusInvalid
	// StatusError: the record could not be read, parsed or checked.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "valid":
		return StatusValid, nil
	case "invalid":
		return StatusInvalid, nil
	case "error":
		return StatusError, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// Outcome is the classification of one data file.
//
// Message is the primary violation for StatusInvalid and the error text for
// StatusError. Digest is empty when the file never produced a record.
type Outcome struct {
	Path       string             `json:"path"`
	Status     Status             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Violations []schema.Violation `json:"violations,omitempty"`
	Digest     string             `json:"digest,omitempty"`
}

// Passed reports whether the file counts toward the passed total.
func (o Outcome) Passed() bool {
	return o.Status == StatusValid
}

// Result is the overall verdict of a finished pass.
type Result int

const (
	ResultNoFiles Result = iota
	ResultAllPassed
	ResultSomeFailed
)

func (r Result) String() string {
	switch r {
	case ResultNoFiles:
		return "no_files"
	case ResultAllPassed:
		return "all_passed"
	case ResultSomeFailed:
		return "some_failed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Summary aggregates the outcomes of one pass, in discovery order.
// Invalid and Errored are kept apart even though both count as not passed.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	SchemaPath string    `json:"schema_path"`
	Total      int       `json:"total"`
	Passed     int       `json:"passed"`
	Invalid    int       `json:"invalid"`
	Errored    int       `json:"errored"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Add records one outcome.
func (s *Summary) Add(o Outcome) {
	s.Total++
	switch o.Status {
	case StatusValid:
		s.Passed++
	case StatusInvalid:
		s.Invalid++
	default:
		s.Errored++
	}
	s.Outcomes = append(s.Outcomes, o)
}

// Result derives the verdict from the counts alone.
func (s *Summary) Result() Result {
	switch {
	case s.Total == 0:
		return ResultNoFiles
	case s.Passed == s.Total:
		return ResultAllPassed
	default:
		return ResultSomeFailed
	}
}

// OK reports whether the pass should exit successfully.
// Zero discovered files is a success.
func (s *Summary) OK() bool {
	return s.Result() != ResultSomeFailed
}
