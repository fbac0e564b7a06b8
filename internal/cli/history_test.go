package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flightreg/internal/store"
	"github.com/roach88/flightreg/internal/validation"
)

// recordRuns runs validate n times against a registry and returns the db path.
func recordRuns(t *testing.T, n int) string {
	t.Helper()
	root := writeRegistry(t, map[string]string{
		"01_Military_Aviation/f22.yaml":      "name: F-22\n",
		"01_Military_Aviation/callsign.yaml": "callsign: Raptor\n",
	})
	db := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < n; i++ {
		_, _, err := executeRoot(t, "--root", root, "--db", db)
		require.Equal(t, ExitFailure, GetExitCode(err))
	}
	return db
}

func latestRunID(t *testing.T, db string) string {
	t.Helper()
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0].ID
}

func TestHistory_ListText(t *testing.T) {
	db := recordRuns(t, 2)

	stdout, _, err := executeRoot(t, "history", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Recent runs (2):")
	assert.Equal(t, 2, strings.Count(stdout, "1/2 passed  exit 1"))
}

func TestHistory_ListJSON(t *testing.T) {
	db := recordRuns(t, 3)

	stdout, _, err := executeRoot(t, "history", "--db", db, "--limit", "2", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.False(t, resp.Data[0].StartedAt.Before(resp.Data[1].StartedAt))
}

func TestHistory_EmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := executeRoot(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", stdout)
}

func TestHistory_ShowRun(t *testing.T) {
	db := recordRuns(t, 1)
	id := latestRunID(t, db)

	stdout, _, err := executeRoot(t, "history", "--db", db, "--run", id)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Run "+id)
	assert.Contains(t, stdout, "Result:  1/2 passed (1 invalid, 0 errored), exit 1")

	invalidAt := strings.Index(stdout, "[1] invalid")
	validAt := strings.Index(stdout, "[2] valid")
	require.NotEqual(t, -1, invalidAt)
	require.NotEqual(t, -1, validAt)
	assert.Less(t, invalidAt, validAt)
	assert.Contains(t, stdout, "(root): name is required")
}

func TestHistory_ShowRunJSON(t *testing.T) {
	db := recordRuns(t, 1)
	id := latestRunID(t, db)

	stdout, _, err := executeRoot(t, "history", "--db", db, "--run", id, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, id, resp.Data.Run.ID)
	require.Len(t, resp.Data.Outcomes, 2)
	assert.Equal(t, validation.StatusInvalid, resp.Data.Outcomes[0].Status)
	assert.Equal(t, validation.StatusValid, resp.Data.Outcomes[1].Status)
}

func TestHistory_UnknownRun(t *testing.T) {
	db := recordRuns(t, 1)

	_, _, err := executeRoot(t, "history", "--db", db, "--run", "no-such-run")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrRunNotFound)
	assert.False(t, IsReported(err))
}

func TestHistory_MissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "absent.db")

	stdout, _, err := executeRoot(t, "history", "--db", db, "--format", "json")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.NoFileExists(t, db)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := executeRoot(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
