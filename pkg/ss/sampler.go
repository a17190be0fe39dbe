package ss

import (
	"time"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/observability"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/rng"
	"github.com/matzehuels/permsample/pkg/search"
)

// Algorithm names reported to observability hooks.
const (
	NameGreedy         = "greedy"
	NameVBSS           = "vbss"
	NameHBSS           = "hbss"
	NameAcceptanceBand = "band"
)

// Options configures the parts common to every sampler.
type Options[C search.Cost] struct {
	// Seed for the sampler's random stream. Zero seeds from the runtime's
	// random source, so results are not reproducible.
	Seed uint64

	// Tracker is the shared best-solution tracker. If nil, the sampler
	// creates its own.
	Tracker *search.ProgressTracker[C]

	// OnImproved, if set, is called after a run improves the tracker's best
	// solution. It runs on the sampler's goroutine and must be safe for
	// concurrent use when the sampler is split.
	OnImproved func(best search.SolutionCostPair[C])
}

// Sampler is the interface shared by every constructive sampler.
type Sampler[C search.Cost] interface {
	// Optimize performs one construction run. It returns false without
	// running if the tracker is stopped or already holds an optimal
	// solution.
	Optimize() (search.SolutionCostPair[C], bool)

	// OptimizeN performs up to n independent runs and returns the best of
	// them, which is not necessarily the tracker's best. It checks the
	// tracker before every run and returns false only if no run happened.
	OptimizeN(n int) (search.SolutionCostPair[C], bool)

	// Tracker returns the shared best-solution tracker.
	Tracker() *search.ProgressTracker[C]

	// SetTracker replaces the tracker. nil is ignored.
	SetTracker(t *search.ProgressTracker[C])

	// TotalRunLength returns the number of completed construction runs of
	// this instance (not including runs of its splits).
	TotalRunLength() int64

	// Problem returns the problem being solved.
	Problem() search.Problem[C]

	// Name returns the algorithm name.
	Name() string
}

// Splittable is a Sampler that can produce independent copies of itself
// for concurrent use. S is the concrete sampler type.
type Splittable[C search.Cost, S any] interface {
	Sampler[C]
	Split() S
}

// base holds the state and the construction loop shared by all samplers.
type base[E IncrementalEvaluation, C search.Cost] struct {
	name       string
	h          Heuristic[E, C]
	problem    search.Problem[C]
	tracker    *search.ProgressTracker[C]
	onImproved func(search.SolutionCostPair[C])
	rng        *rng.Source
	runs       int64
}

func newBase[E IncrementalEvaluation, C search.Cost](name string, h Heuristic[E, C], opts Options[C]) (base[E, C], error) {
	if h == nil {
		return base[E, C]{}, errors.New(errors.ErrCodeInvalidHeuristic, "%s: heuristic is nil", name)
	}
	if err := errors.ValidateLength(h.Len()); err != nil {
		return base[E, C]{}, err
	}
	problem := h.Problem()
	if problem == nil {
		return base[E, C]{}, errors.New(errors.ErrCodeInvalidHeuristic, "%s: heuristic has no problem", name)
	}

	b := base[E, C]{
		name:       name,
		h:          h,
		problem:    problem,
		tracker:    opts.Tracker,
		onImproved: opts.OnImproved,
	}
	if b.tracker == nil {
		b.tracker = search.NewProgressTracker[C]()
	}
	if opts.Seed == 0 {
		b.rng = rng.NewRandom()
	} else {
		b.rng = rng.New(opts.Seed)
	}
	return b, nil
}

// split returns a copy sharing the heuristic, problem and tracker, with an
// independent random stream and a zero run count.
func (b *base[E, C]) split() base[E, C] {
	c := *b
	c.rng = b.rng.Split()
	c.runs = 0
	return c
}

// Tracker returns the shared best-solution tracker.
func (b *base[E, C]) Tracker() *search.ProgressTracker[C] {
	return b.tracker
}

// SetTracker replaces the tracker. nil is ignored.
func (b *base[E, C]) SetTracker(t *search.ProgressTracker[C]) {
	if t != nil {
		b.tracker = t
	}
}

// TotalRunLength returns the number of completed construction runs.
func (b *base[E, C]) TotalRunLength() int64 {
	return b.runs
}

// Problem returns the problem being solved.
func (b *base[E, C]) Problem() search.Problem[C] {
	return b.problem
}

// Heuristic returns the heuristic guiding construction.
func (b *base[E, C]) Heuristic() Heuristic[E, C] {
	return b.h
}

// Name returns the algorithm name.
func (b *base[E, C]) Name() string {
	return b.name
}

// construct builds one complete permutation. choose is consulted only when
// at least two candidates remain and returns an index into the current
// remaining ordering; a lone candidate is placed without scoring.
func (b *base[E, C]) construct(choose func(p *perm.Partial, eval E) int) search.SolutionCostPair[C] {
	start := time.Now()
	eval := b.h.NewIncrementalEvaluation()
	// Length was validated in newBase.
	p, _ := perm.NewPartial(b.h.Len())
	for !p.IsComplete() {
		i := 0
		if p.NumRemaining() > 1 {
			i = choose(p, eval)
		}
		eval.Extend(p, p.RemainingAt(i))
		p.Extend(i)
	}

	sol := p.Complete()
	pair := search.SolutionCostPair[C]{Solution: sol, Cost: b.problem.Cost(sol)}
	b.runs++
	b.record(pair, time.Since(start))
	return pair
}

// record publishes a completed run to hooks and the tracker.
func (b *base[E, C]) record(pair search.SolutionCostPair[C], d time.Duration) {
	hooks := observability.Sampler()
	hooks.OnRun(b.name, float64(pair.Cost), d)
	if b.tracker.Update(pair.Cost, pair.Solution, b.problem.IsMinCost(pair.Cost)) {
		hooks.OnImproved(b.name, float64(pair.Cost))
		if b.onImproved != nil {
			b.onImproved(search.NewSolutionCostPair(pair.Solution, pair.Cost))
		}
	}
}

func (b *base[E, C]) optimize(sample func() search.SolutionCostPair[C]) (search.SolutionCostPair[C], bool) {
	if b.tracker.Done() {
		return search.SolutionCostPair[C]{}, false
	}
	return sample(), true
}

func (b *base[E, C]) optimizeN(n int, sample func() search.SolutionCostPair[C]) (search.SolutionCostPair[C], bool) {
	var best search.SolutionCostPair[C]
	found := false
	for i := 0; i < n && !b.tracker.Done(); i++ {
		s := sample()
		if !found || s.Cost < best.Cost {
			best, found = s, true
		}
	}
	return best, found
}

// selectIndex returns the first index whose cumulative weight exceeds u,
// halving the search interval at each step. If rounding leaves u at or
// above the last entry, the last index is returned.
func selectIndex(cumulative []float64, u float64) int {
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cumulative[mid] > u {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
