package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/roach88/flightreg/internal/schema"
	"github.com/roach88/flightreg/internal/validation"
)

// Console messages of the text report.
const (
	bannerLine     = "🚀 Starting NextGen-Flight-Registry Data Validation..."
	allPassedLine  = "🎉 All systems go!"
	noFilesLine    = "ℹ️ No data files found."
	someFailedLine = "💥 Some files failed validation."
)

// newReporter picks the reporter for the output format.
func newReporter(format string, w io.Writer) validationReporter {
	if format == "json" {
		return NewJSONReporter(w)
	}
	return &TextReporter{W: w}
}

// validationReporter is a validation.Reporter that can tell whether writing failed.
type validationReporter interface {
	validation.Reporter
	Err() error
}

// TextReporter prints the human-readable console report, one line per event.
type TextReporter struct {
	W io.Writer
}

// Emit implements validation.Reporter.
func (r *TextReporter) Emit(e validation.Event) {
	w := r.W
	switch e := e.(type) {
	case validation.Started:
		fmt.Fprintf(w, "%s\n\n", bannerLine)

	case validation.SchemaFailed:
		if e.Err.NotFound {
			fmt.Fprintf(w, "❌ Schema file not found: %s\n", e.Err.Path)
			return
		}
		fmt.Fprintf(w, "❌ Failed to load schema %s: %s\n", e.Err.Path, loadErrorDetail(e.Err))

	case validation.FileChecked:
		o := e.Outcome
		switch o.Status {
		case validation.StatusValid:
			fmt.Fprintf(w, "✅ Valid: %s\n", o.Path)
		case validation.StatusInvalid:
			fmt.Fprintf(w, "❌ Invalid: %s\n", o.Path)
			fmt.Fprintf(w, "   Error: %s\n", o.Message)
		default:
			fmt.Fprintf(w, "⚠️ Error processing %s: %s\n", o.Path, o.Message)
		}

	case validation.Finished:
		s := e.Summary
		fmt.Fprintf(w, "\n📊 Summary: %d/%d files passed validation.\n", s.Passed, s.Total)
		switch s.Result() {
		case validation.ResultNoFiles:
			fmt.Fprintln(w, noFilesLine)
		case validation.ResultAllPassed:
			fmt.Fprintln(w, allPassedLine)
		default:
			fmt.Fprintln(w, someFailedLine)
		}
	}
}

// Err implements validationReporter. Console write errors are not tracked.
func (r *TextReporter) Err() error { return nil }

func loadErrorDetail(e *schema.LoadError) string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// JSONEvent is one line of the JSON report.
type JSONEvent struct {
	Event string `json:"event"` // "started", "schema_error", "outcome", "finished"

	Schema   string `json:"schema,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
	Error    string `json:"error,omitempty"`

	Seq     int                 `json:"seq,omitempty"`
	Outcome *validation.Outcome `json:"outcome,omitempty"`

	RunID     string     `json:"run_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Total     *int       `json:"total,omitempty"`
	Passed    *int       `json:"passed,omitempty"`
	Invalid   *int       `json:"invalid,omitempty"`
	Errored   *int       `json:"errored,omitempty"`
	Result    string     `json:"result,omitempty"`
}

// JSONReporter writes one JSON object per event so CI tooling can follow a
// pass line by line. The first write error is kept and later events dropped.
type JSONReporter struct {
	w   *json.Encoder
	err error
}

// NewJSONReporter returns a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONReporter{w: enc}
}

// Emit implements validation.Reporter.
func (r *JSONReporter) Emit(e validation.Event) {
	if r.err != nil {
		return
	}
	r.err = r.w.Encode(toJSONEvent(e))
}

// Err returns the first write error, if any.
func (r *JSONReporter) Err() error { return r.err }

func toJSONEvent(e validation.Event) JSONEvent {
	switch e := e.(type) {
	case validation.Started:
		return JSONEvent{Event: "started", Schema: e.SchemaPath}

	case validation.SchemaFailed:
		return JSONEvent{
			Event:    "schema_error",
			Schema:   e.Err.Path,
			NotFound: e.Err.NotFound,
			Error:    e.Err.Error(),
		}

	case validation.FileChecked:
		o := e.Outcome
		return JSONEvent{Event: "outcome", Seq: e.Seq, Outcome: &o}

	case validation.Finished:
		s := e.Summary
		return JSONEvent{
			Event:     "finished",
			Schema:    s.SchemaPath,
			RunID:     s.RunID,
			StartedAt: &s.StartedAt,
			Total:     &s.Total,
			Passed:    &s.Passed,
			Invalid:   &s.Invalid,
			Errored:   &s.Errored,
			Result:    s.Result().String(),
		}

	default:
		return JSONEvent{Event: fmt.Sprintf("%T", e)}
	}
}
