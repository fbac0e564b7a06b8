// Package validation runs the registry validation pass.
//
// A pass loads the schema once, discovers data files under the category
// directories, and for each file parses, normalizes and checks the record,
// classifying it as exactly one Outcome. Per-file failures never stop the
// pass; only a schema that cannot be loaded does.
//
// The pass never prints. Every step is published as an Event to a Reporter,
// which keeps console formatting (and JSON output) in internal/cli.
//
// State machine:
//
//	Start -> SchemaLoad {ok -> Discover, fail -> Halt}
//	Discover -> PerFile* -> Aggregate -> Exit
package validation
