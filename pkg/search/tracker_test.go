package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerEmpty(t *testing.T) {
	tr := NewProgressTracker[int]()
	_, ok := tr.Best()
	assert.False(t, ok)
	_, ok = tr.Cost()
	assert.False(t, ok)
	assert.False(t, tr.Done())
}

func TestTrackerUpdateStrictlyBetter(t *testing.T) {
	tr := NewProgressTracker[int]()

	require.True(t, tr.Update(10, []int{0, 1, 2}, false))
	assert.False(t, tr.Update(10, []int{2, 1, 0}, false), "equal cost is not an improvement")
	assert.False(t, tr.Update(11, []int{1, 0, 2}, false))
	require.True(t, tr.Update(7, []int{1, 2, 0}, false))

	best, ok := tr.Best()
	require.True(t, ok)
	assert.Equal(t, 7, best.Cost)
	assert.Equal(t, []int{1, 2, 0}, best.Solution)
	assert.Equal(t, int64(2), tr.Updates())
}

func TestTrackerCopiesSolution(t *testing.T) {
	tr := NewProgressTracker[float64]()
	sol := []int{0, 1}
	tr.Update(1.5, sol, false)
	sol[0] = 99

	best, _ := tr.Best()
	assert.Equal(t, []int{0, 1}, best.Solution)

	best.Solution[1] = 42
	again, _ := tr.Best()
	assert.Equal(t, []int{0, 1}, again.Solution)
}

func TestTrackerFlags(t *testing.T) {
	tr := NewProgressTracker[int]()

	tr.Update(3, []int{0}, false)
	assert.False(t, tr.FoundBest())
	tr.Update(0, []int{0}, true)
	assert.True(t, tr.FoundBest())
	assert.True(t, tr.Done())

	tr2 := NewProgressTracker[int]()
	tr2.Stop()
	assert.True(t, tr2.IsStopped())
	assert.True(t, tr2.Done())
	tr2.Start()
	assert.False(t, tr2.Done())
}

func TestTrackerMinNotRecordedIfNotImproved(t *testing.T) {
	tr := NewProgressTracker[int]()
	tr.Update(0, []int{0}, false)
	tr.Update(0, []int{0}, true)
	assert.False(t, tr.FoundBest(), "found-best only set alongside an improvement")
}

func TestTrackerConcurrentUpdates(t *testing.T) {
	tr := NewProgressTracker[int]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for c := 1000; c > 0; c-- {
				tr.Update(c*8+g, []int{g}, false)
			}
		}(g)
	}
	wg.Wait()

	best, ok := tr.Best()
	require.True(t, ok)
	assert.Equal(t, 8, best.Cost)
	assert.Equal(t, []int{0}, best.Solution)
}

func TestSolutionCostPair(t *testing.T) {
	sol := []int{2, 0, 1}
	p := NewSolutionCostPair(sol, 4)
	sol[0] = 7
	assert.Equal(t, []int{2, 0, 1}, p.Solution)

	q := NewSolutionCostPair([]int{0, 1, 2}, 5)
	assert.True(t, p.Better(q))
	assert.False(t, q.Better(p))
}
