package validation

import "github.com/roach88/flightreg/internal/schema"

// Event is a sealed interface for everything a pass reports.
type Event interface {
	event()
}

// Started is emitted once, before the schema is loaded.
type Started struct {
	SchemaPath string
}

// SchemaFailed is emitted when the schema cannot be loaded. No other event follows.
type SchemaFailed struct {
	Err *schema.LoadError
}

// FileChecked is emitted as soon as a file has been classified.
// Seq is the 1-based position of the file in discovery order.
type FileChecked struct {
	Seq     int
	Outcome Outcome
}

// Finished is emitted once after every discovered file has been checked.
type Finished struct {
	Summary *Summary
}

func (Started) event()      {}
func (SchemaFailed) event() {}
func (FileChecked) event()  {}
func (Finished) event()     {}

// Reporter receives pass events as they happen.
type Reporter interface {
	Emit(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

// Emit implements Reporter.
func (f ReporterFunc) Emit(e Event) { f(e) }

// Discard is a Reporter that drops every event.
var Discard Reporter = ReporterFunc(func(Event) {})

// Recorder keeps every emitted event. Useful in tests and for callers that
// want to post-process a run.
type Recorder struct {
	Events []Event
}

// Emit implements Reporter.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}
