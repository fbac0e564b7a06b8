package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "flightreg", cmd.Use)
	assert.Contains(t, cmd.Long, "NextGen-Flight-Registry")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"validate", "history"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestValidateFlags(t *testing.T) {
	cmd := NewRootCommand()
	validate, _, err := cmd.Find([]string{"validate"})
	require.NoError(t, err)

	for _, c := range []struct{ name, def string }{
		{"schema", ""},
		{"root", "."},
		{"db", ""},
	} {
		root := cmd.Flags().Lookup(c.name)
		require.NotNil(t, root, "root --%s", c.name)
		assert.Equal(t, c.def, root.DefValue)

		sub := validate.Flags().Lookup(c.name)
		require.NotNil(t, sub, "validate --%s", c.name)
		assert.Equal(t, c.def, sub.DefValue)
	}
}

func TestHistoryFlags(t *testing.T) {
	cmd := NewRootCommand()
	history, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	require.NotNil(t, history.Flags().Lookup("db"))
	require.NotNil(t, history.Flags().Lookup("run"))

	limit := history.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "20", limit.DefValue)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid format", []string{"--format", "yaml"}},
		{"invalid format on subcommand", []string{"validate", "--format", "xml"}},
		{"unknown flag", []string{"--no-such-flag"}},
		{"positional argument", []string{"validate", "extra"}},
		{"bad limit", []string{"history", "--db", "h.db", "--limit", "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeRoot(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.False(t, IsReported(err))
		})
	}
}
