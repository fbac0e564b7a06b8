// Package schema loads the registry schema once per run and checks records
// against it.
//
// Two schema languages are supported, chosen by file extension:
//   - .json: JSON Schema (draft 4/6/7) via gojsonschema
//   - .cue:  CUE, where a record conforms when unifying it with the schema
//     yields a concrete value without conflicts
//
// A Checker reports conformance as a list of Violations. A non-nil error from
// Check means the record could not be checked at all.
package schema
