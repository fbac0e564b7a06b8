package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/flightreg/internal/record"
)

// RootField is the field name reported for violations at the document root.
const RootField = "(root)"

// Checker validates normalized records against a loaded schema.
type Checker interface {
	// Check returns the violations found in v, or nil when v conforms.
	// An error means the check itself could not run.
	Check(v record.Value) ([]Violation, error)
	// Path is the file the schema was loaded from.
	Path() string
}

// Violation is a single structural violation reported by a checker.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ViolationError wraps the violations of a non-conforming record.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	if len(e.Violations) == 0 {
		return "record does not conform to schema"
	}
	return e.Violations[0].String()
}

// LoadError represents errors loading or parsing the schema itself.
type LoadError struct {
	Path     string
	Message  string
	NotFound bool
	Cause    error
}

func (e *LoadError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("schema file not found: %s", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads and compiles the schema at path. The schema language is picked
// from the extension: .cue loads a CUE schema, anything else JSON Schema.
func Load(path string) (Checker, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{
			Path:     path,
			Message:  "cannot access schema",
			NotFound: errors.Is(err, fs.ErrNotExist),
			Cause:    err,
		}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Message: "schema path is a directory"}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(path)
	default:
		return LoadJSONSchema(path)
	}
}

func readSchema(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:     path,
			Message:  "reading schema",
			NotFound: errors.Is(err, fs.ErrNotExist),
			Cause:    err,
		}
	}
	return data, nil
}
