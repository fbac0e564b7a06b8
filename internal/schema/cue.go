package schema

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/flightreg/internal/record"
)

// CUESchema checks records by unifying them with a CUE value.
// A record conforms when the unified value has no conflicts and every
// field the schema declares is concrete.
type CUESchema struct {
	path   string
	ctx    *cue.Context
	schema cue.Value
}

// LoadCUE reads and compiles the CUE schema at path.
func LoadCUE(path string) (*CUESchema, error) {
	data, err := readSchema(path)
	if err != nil {
		return nil, err
	}
	return NewCUE(path, data)
}

// NewCUE compiles an in-memory CUE schema.
func NewCUE(name string, data []byte) (*CUESchema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, &LoadError{
			Path:    name,
			Message: "invalid CUE schema",
			Cause:   err,
		}
	}
	return &CUESchema{path: name, ctx: ctx, schema: v}, nil
}

// Path implements Checker.
func (s *CUESchema) Path() string { return s.path }

// Check implements Checker.
func (s *CUESchema) Check(v record.Value) ([]Violation, error) {
	doc, err := record.ToNative(v)
	if err != nil {
		return nil, err
	}

	data := s.ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	err = s.schema.Unify(data).Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}

	var violations []Violation
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = RootField
		}
		format, args := e.Msg()
		violations = append(violations, Violation{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(violations) == 0 {
		violations = append(violations, Violation{Field: RootField, Message: err.Error()})
	}
	return violations, nil
}
