package ss

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
)

func TestParallelValidation(t *testing.T) {
	s, err := NewVBSS(newFixed([]float64{1, 2}, false), VBSSConfig{}, Options[int]{Seed: 1})
	require.NoError(t, err)

	_, err = Parallel[int](context.Background(), s, 0, 10)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
	_, err = Parallel[int](context.Background(), s, 2, -1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
}

func TestParallelRunsEverySample(t *testing.T) {
	h := newFixed([]float64{4, 9, 1, 7, 3, 8, 2, 6, 5}, false)
	s, err := NewVBSS(h, VBSSConfig{Exponent: 2}, Options[int]{Seed: 31})
	require.NoError(t, err)

	batch, err := Parallel[int](context.Background(), s, 4, 1001)
	require.NoError(t, err)
	require.True(t, batch.Found)
	assert.Equal(t, int64(1001), batch.Runs)
	assert.Zero(t, s.TotalRunLength(), "work happens on splits")

	cost, ok := s.Tracker().Cost()
	require.True(t, ok)
	assert.LessOrEqual(t, cost, batch.Best.Cost)
	assert.Equal(t, batch.Best.Cost, h.problem.Cost(batch.Best.Solution))
	isPermutation(t, batch.Best.Solution, 9)
}

func TestParallelMoreWorkersThanSamples(t *testing.T) {
	s, err := NewGreedy(newFixed([]float64{1, 2, 3}, false), Options[int]{})
	require.NoError(t, err)

	batch, err := Parallel[int](context.Background(), s, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), batch.Runs)

	batch, err = Parallel[int](context.Background(), s, 8, 0)
	require.NoError(t, err)
	assert.False(t, batch.Found)
	assert.Zero(t, batch.Runs)
}

func TestParallelStopsAtOptimum(t *testing.T) {
	h := newFixed([]float64{6, 5, 4, 3, 2, 1}, true)
	s, err := NewHBSS(h, HBSSConfig{}, Options[int]{Seed: 2})
	require.NoError(t, err)

	batch, err := Parallel[int](context.Background(), s, 3, 100000)
	require.NoError(t, err)
	assert.True(t, s.Tracker().FoundBest())
	assert.Equal(t, h.problem.MinCost(), batch.Best.Cost)
	assert.Less(t, batch.Runs, int64(100000))
}

func TestParallelCancelled(t *testing.T) {
	s, err := NewAcceptanceBand(newFixed([]float64{1, 2, 3}, false), 0.5, Options[int]{Seed: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	batch, err := Parallel[int](ctx, s, 2, 50)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, batch.Found)
	assert.Zero(t, batch.Runs)
}
