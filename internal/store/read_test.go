package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/flightreg/internal/schema"
	"github.com/roach88/flightreg/internal/validation"
)

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, createTestSummary("first", t0), 1))
	require.NoError(t, s.SaveRun(ctx, createTestSummary("third", t0.Add(2*time.Hour)), 1))
	require.NoError(t, s.SaveRun(ctx, createTestSummary("second", t0.Add(time.Hour)), 1))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].ID)
	assert.Equal(t, "second", runs[1].ID)
	assert.Equal(t, "first", runs[2].ID)
	assert.True(t, runs[2].StartedAt.Equal(t0))
}

func TestListRuns_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveRun(ctx, createTestSummary(id, t0.Add(time.Duration(i)*time.Minute)), 0))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestListRuns_SubsecondOrdering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, createTestSummary("later", t0.Add(500*time.Millisecond)), 0))
	require.NoError(t, s.SaveRun(ctx, createTestSummary("earlier", t0.Add(5*time.Millisecond)), 0))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "later", runs[0].ID)
}

func TestReadOutcomes_DiscoveryOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	summary := createTestSummary("run-1", t0)
	require.NoError(t, s.SaveRun(ctx, summary, 1))

	outcomes, err := s.ReadOutcomes(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, summary.Outcomes, outcomes)
}

func TestReadOutcomes_ViolationsRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, createTestSummary("run-1", t0), 1))

	outcomes, err := s.ReadOutcomes(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Nil(t, outcomes[0].Violations)
	assert.Equal(t, []schema.Violation{{Field: "(root)", Message: "name is required"}}, outcomes[1].Violations)
	assert.Equal(t, validation.StatusError, outcomes[2].Status)
	assert.Empty(t, outcomes[2].Digest)
}

func TestReadOutcomes_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadOutcomes(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadRun_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
