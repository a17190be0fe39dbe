package search

import (
	"slices"
	"sync"
	"sync/atomic"
)

// ProgressTracker holds the best solution found so far by any number of
// samplers working on the same problem. It is created once per search,
// shared by reference with every sampler copy, and safe for concurrent use.
//
// Besides the best solution it carries two flags that samplers check
// before every construction run:
//   - stopped: set by any goroutine (e.g. on timeout) to end the search
//   - found best: set once a solution with the problem's minimum cost is seen
//
// Cancellation is cooperative: a run already in progress completes, but no
// new run starts once either flag is set.
type ProgressTracker[C Cost] struct {
	mu      sync.Mutex
	best    []int
	cost    C
	hasBest bool

	stopped   atomic.Bool
	foundBest atomic.Bool
	updates   atomic.Int64
}

// NewProgressTracker returns an empty tracker.
func NewProgressTracker[C Cost]() *ProgressTracker[C] {
	return &ProgressTracker[C]{}
}

// Update records solution if cost is strictly lower than the best so far
// (or if nothing has been recorded yet) and reports whether it did. If
// isMin is true the found-best flag is also set. The solution is copied;
// callers keep ownership of their slice.
func (t *ProgressTracker[C]) Update(cost C, solution []int, isMin bool) bool {
	t.mu.Lock()
	improved := !t.hasBest || cost < t.cost
	if improved {
		t.best = slices.Clone(solution)
		t.cost = cost
		t.hasBest = true
	}
	t.mu.Unlock()

	if improved {
		t.updates.Add(1)
		if isMin {
			t.foundBest.Store(true)
		}
	}
	return improved
}

// Best returns the best pair recorded so far. ok is false if nothing has
// been recorded yet.
func (t *ProgressTracker[C]) Best() (best SolutionCostPair[C], ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasBest {
		return SolutionCostPair[C]{}, false
	}
	return NewSolutionCostPair(t.best, t.cost), true
}

// Cost returns the best cost recorded so far. ok is false if nothing has
// been recorded yet.
func (t *ProgressTracker[C]) Cost() (cost C, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost, t.hasBest
}

// Updates returns how many times the best solution improved.
func (t *ProgressTracker[C]) Updates() int64 {
	return t.updates.Load()
}

// Stop asks every sampler sharing this tracker to stop before its next run.
func (t *ProgressTracker[C]) Stop() {
	t.stopped.Store(true)
}

// Start clears the stopped flag so the tracker can be reused.
func (t *ProgressTracker[C]) Start() {
	t.stopped.Store(false)
}

// IsStopped reports whether Stop has been called.
func (t *ProgressTracker[C]) IsStopped() bool {
	return t.stopped.Load()
}

// SetFoundBest marks that a solution of known optimal cost has been found.
func (t *ProgressTracker[C]) SetFoundBest() {
	t.foundBest.Store(true)
}

// FoundBest reports whether a solution of known optimal cost has been found.
func (t *ProgressTracker[C]) FoundBest() bool {
	return t.foundBest.Load()
}

// Done reports whether samplers should stop: either Stop was called or the
// best possible solution has already been found.
func (t *ProgressTracker[C]) Done() bool {
	return t.stopped.Load() || t.foundBest.Load()
}
