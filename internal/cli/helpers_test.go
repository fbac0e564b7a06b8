package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flightreg/internal/testutil"
	"github.com/roach88/flightreg/internal/validation"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "first_flight": {"type": "string", "format": "date"}
  }
}`

// writeRegistry creates a registry root with the schema at its conventional path.
func writeRegistry(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	all := map[string]string{validation.DefaultSchemaPath: testSchema}
	for k, v := range files {
		all[k] = v
	}
	testutil.WriteTree(t, root, all)
	return root
}

// executeRoot runs the root command with args and captures both streams.
func executeRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// newGolden must be called before the test changes directory.
func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("testdata", "golden"))
	require.NoError(t, err)
	return goldie.New(t,
		goldie.WithFixtureDir(dir),
		goldie.WithNameSuffix(".golden"),
	)
}
