package validation

import (
	"errors"
	"fmt"

	"github.com/roach88/flightreg/internal/discovery"
	"github.com/roach88/flightreg/internal/record"
	"github.com/roach88/flightreg/internal/schema"
)

// Run executes one validation pass and reports every step to rep.
//
// A schema that cannot be loaded halts the pass before discovery: Run emits
// SchemaFailed and returns a *schema.LoadError with a nil Summary. Otherwise
// Run always returns a Summary and a nil error, whatever the files contain.
func Run(cfg Config, rep Reporter) (*Summary, error) {
	cfg = cfg.withDefaults()
	if rep == nil {
		rep = Discard
	}
	log := cfg.Logger

	rep.Emit(Started{SchemaPath: cfg.SchemaPath})

	checker, err := cfg.LoadSchema(cfg.SchemaPath)
	if err != nil {
		var loadErr *schema.LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &schema.LoadError{Path: cfg.SchemaPath, Message: "loading schema", Cause: err}
		}
		log.Debug("schema load failed", "path", cfg.SchemaPath, "error", err)
		rep.Emit(SchemaFailed{Err: loadErr})
		return nil, loadErr
	}
	log.Debug("schema loaded", "path", checker.Path())

	summary := &Summary{
		RunID:      cfg.NewRunID(),
		StartedAt:  cfg.Now(),
		SchemaPath: cfg.SchemaPath,
		Outcomes:   []Outcome{},
	}

	files := discovery.Files(discovery.Options{
		Root:       cfg.Root,
		Categories: cfg.Categories,
		Extensions: cfg.Extensions,
		Logger:     log,
	})
	for path := range files {
		outcome := CheckFile(checker, path)
		summary.Add(outcome)
		log.Debug("file checked", "path", path, "status", outcome.Status)
		rep.Emit(FileChecked{Seq: summary.Total, Outcome: outcome})
	}

	log.Debug("pass finished", "run_id", summary.RunID, "passed", summary.Passed, "total", summary.Total)
	rep.Emit(Finished{Summary: summary})
	return summary, nil
}

// CheckFile parses, normalizes and checks one data file. It never fails:
// every problem is folded into the returned Outcome.
func CheckFile(checker schema.Checker, path string) Outcome {
	digest, err := checkFile(checker, path)
	return classify(path, digest, err)
}

func checkFile(checker schema.Checker, path string) (digest string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	v, err := record.ParseFile(path)
	if err != nil {
		return "", err
	}
	v = record.Normalize(v)

	digest, err = record.Digest(v)
	if err != nil {
		return "", err
	}

	violations, err := checker.Check(v)
	if err != nil {
		return digest, err
	}
	if len(violations) > 0 {
		return digest, &schema.ViolationError{Violations: violations}
	}
	return digest, nil
}

func classify(path, digest string, err error) Outcome {
	if err == nil {
		return Outcome{Path: path, Status: StatusValid, Digest: digest}
	}

	var verr *schema.ViolationError
	if errors.As(err, &verr) {
		return Outcome{
			Path:       path,
			Status:     StatusInvalid,
			Message:    verr.Error(),
			Violations: verr.Violations,
			Digest:     digest,
		}
	}

	return Outcome{Path: path, Status: StatusError, Message: err.Error(), Digest: digest}
}
