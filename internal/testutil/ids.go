package testutil

import "fmt"

// SequentialIDs generates predictable run IDs for deterministic tests.
//
// Unlike the uuid generator used in production, the same sequence of calls
// always yields the same IDs: "<prefix>-1", "<prefix>-2", ...
//
// Thread-safety: not safe for concurrent use; validation runs are sequential.
type SequentialIDs struct {
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "test-run".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "test-run"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
