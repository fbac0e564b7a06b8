package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/roach88/flightreg/internal/record"
)

// JSONSchema checks records against a compiled JSON Schema document.
type JSONSchema struct {
	path   string
	schema *gojsonschema.Schema
}

// LoadJSONSchema reads and compiles the JSON Schema at path.
// Compilation happens once; Check reuses the compiled schema.
func LoadJSONSchema(path string) (*JSONSchema, error) {
	data, err := readSchema(path)
	if err != nil {
		return nil, err
	}
	return compileJSONSchema(path, data)
}

// NewJSONSchema compiles an in-memory JSON Schema document.
func NewJSONSchema(name string, data []byte) (*JSONSchema, error) {
	return compileJSONSchema(name, data)
}

func compileJSONSchema(path string, data []byte) (*JSONSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "invalid JSON Schema",
			Cause:   err,
		}
	}
	return &JSONSchema{path: path, schema: s}, nil
}

// Path implements Checker.
func (s *JSONSchema) Path() string { return s.path }

// Check implements Checker. Violations keep gojsonschema's reporting order.
func (s *JSONSchema) Check(v record.Value) ([]Violation, error) {
	doc, err := record.ToNative(v)
	if err != nil {
		return nil, err
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("checking record: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = RootField
		}
		violations = append(violations, Violation{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return violations, nil
}
