package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock_Advances(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, time.Second)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(time.Second), clock.Now())
	assert.Equal(t, 2, clock.Calls())
}

func TestStepClock_Frozen(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, 0)

	assert.Equal(t, clock.Now(), clock.Now())
}

func TestStepClock_ConcurrentCalls(t *testing.T) {
	clock := NewStepClock(time.Unix(0, 0), time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, clock.Calls())
}

func TestSequentialIDs(t *testing.T) {
	ids := NewSequentialIDs("")
	assert.Equal(t, "test-run-1", ids.Generate())
	assert.Equal(t, "test-run-2", ids.Generate())

	custom := NewSequentialIDs("ci")
	assert.Equal(t, "ci-1", custom.Generate())
}

func TestWriteTree(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"01_Military_Aviation/fighters/f22.yaml": "name: F-22\n",
		"README.md":                              "# registry\n",
	})

	data, err := os.ReadFile(filepath.Join(root, "01_Military_Aviation", "fighters", "f22.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "name: F-22\n", string(data))
	assert.FileExists(t, filepath.Join(root, "README.md"))
}
