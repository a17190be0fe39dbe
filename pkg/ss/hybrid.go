package ss

import (
	"math"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/rng"
	"github.com/matzehuels/permsample/pkg/search"
)

// HybridStrategy selects which member heuristic guides a run.
type HybridStrategy int

const (
	// HybridRandom picks a member uniformly at random for each run.
	HybridRandom HybridStrategy = iota
	// HybridRoundRobin cycles through the members in order.
	HybridRoundRobin
	// HybridWeighted picks a member with probability proportional to its weight.
	HybridWeighted
)

var strategyNames = map[HybridStrategy]string{
	HybridRandom:     "random",
	HybridRoundRobin: "round-robin",
	HybridWeighted:   "weighted",
}

func (s HybridStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseHybridStrategy parses a strategy name as printed by String.
func ParseHybridStrategy(name string) (HybridStrategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidParameter, "unknown hybrid strategy %q", name)
}

// HybridMember is a heuristic with its evaluation type erased, so that
// heuristics with different evaluation types can be combined. Create one
// with Member.
type HybridMember[C search.Cost] struct {
	start   func() memberRun
	n       int
	problem search.Problem[C]
}

// memberRun is one run of a member. Both funcs close over the same typed
// evaluation.
type memberRun struct {
	score  func(p *perm.Partial, label int) float64
	extend func(p *perm.Partial, label int)
}

// Member wraps h for use in a Hybrid.
func Member[E IncrementalEvaluation, C search.Cost](h Heuristic[E, C]) HybridMember[C] {
	return HybridMember[C]{
		start: func() memberRun {
			eval := h.NewIncrementalEvaluation()
			return memberRun{
				score:  func(p *perm.Partial, label int) float64 { return h.H(p, label, eval) },
				extend: func(p *perm.Partial, label int) { eval.Extend(p, label) },
			}
		},
		n:       h.Len(),
		problem: h.Problem(),
	}
}

// HybridEval is the incremental evaluation of a Hybrid. It remembers the
// member chosen for the run and carries that member's own evaluation.
type HybridEval struct {
	chosen int
	run    memberRun
}

// Extend forwards to the chosen member's evaluation.
func (e *HybridEval) Extend(p *perm.Partial, label int) {
	e.run.extend(p, label)
}

// Chosen returns the index of the member guiding this run.
func (e *HybridEval) Chosen() int {
	return e.chosen
}

// HybridConfig configures member selection.
type HybridConfig struct {
	Strategy HybridStrategy

	// Weights are the per-member weights for HybridWeighted. They must be
	// non-negative with a positive sum.
	Weights []float64

	// Seed for member selection. Zero seeds randomly.
	Seed uint64
}

// Hybrid combines several heuristics for the same problem. Each
// construction run picks one member when its incremental evaluation is
// created, and that member scores every decision of the run.
//
// A Hybrid is shared by all splits of a sampler; member selection is safe
// for concurrent use.
type Hybrid[C search.Cost] struct {
	members  []HybridMember[C]
	strategy HybridStrategy
	weights  []float64 // cumulative, for HybridWeighted

	mu  sync.Mutex
	rng *rng.Source

	next atomic.Uint64
}

// NewHybrid combines members. It returns an EMPTY_HEURISTIC_SET error if
// members is empty and a MISMATCHED_PROBLEM error if the members disagree
// on the problem or its length.
func NewHybrid[C search.Cost](members []HybridMember[C], cfg HybridConfig) (*Hybrid[C], error) {
	if len(members) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyHeuristicSet, "hybrid: no heuristics given")
	}
	first := members[0]
	if first.start == nil {
		return nil, errors.New(errors.ErrCodeInvalidHeuristic, "hybrid: member 0 was not created with Member")
	}
	for i, m := range members[1:] {
		if m.start == nil {
			return nil, errors.New(errors.ErrCodeInvalidHeuristic, "hybrid: member %d was not created with Member", i+1)
		}
		if m.n != first.n || !sameProblem(m.problem, first.problem) {
			return nil, errors.New(errors.ErrCodeMismatchedProblem, "hybrid: member %d is configured for a different problem", i+1)
		}
	}

	h := &Hybrid[C]{
		members:  append([]HybridMember[C](nil), members...),
		strategy: cfg.Strategy,
	}
	switch cfg.Strategy {
	case HybridRandom, HybridRoundRobin:
	case HybridWeighted:
		cum, err := cumulativeWeights(cfg.Weights, len(members))
		if err != nil {
			return nil, err
		}
		h.weights = cum
	default:
		return nil, errors.New(errors.ErrCodeInvalidParameter, "hybrid: unknown strategy %d", cfg.Strategy)
	}
	if cfg.Seed == 0 {
		h.rng = rng.NewRandom()
	} else {
		h.rng = rng.New(cfg.Seed)
	}
	return h, nil
}

func cumulativeWeights(weights []float64, n int) ([]float64, error) {
	if len(weights) != n {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "hybrid: got %d weights for %d heuristics", len(weights), n)
	}
	cum := make([]float64, n)
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidParameter, "hybrid: weight %d must be non-negative and finite, got %v", i, w)
		}
		sum += w
		cum[i] = sum
	}
	if sum <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "hybrid: weights must have a positive sum")
	}
	return cum, nil
}

// sameProblem reports whether a and b are the same problem instance.
// Problems of non-comparable dynamic types are never considered the same.
func sameProblem[C search.Cost](a, b search.Problem[C]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// Size returns the number of members.
func (h *Hybrid[C]) Size() int {
	return len(h.members)
}

// H scores label with the member chosen for this run.
func (h *Hybrid[C]) H(p *perm.Partial, label int, eval *HybridEval) float64 {
	return eval.run.score(p, label)
}

// NewIncrementalEvaluation chooses the member for a new run and returns
// its evaluation wrapped in a HybridEval.
func (h *Hybrid[C]) NewIncrementalEvaluation() *HybridEval {
	i := h.pick()
	return &HybridEval{chosen: i, run: h.members[i].start()}
}

// Len returns the permutation length shared by all members.
func (h *Hybrid[C]) Len() int {
	return h.members[0].n
}

// Problem returns the problem shared by all members.
func (h *Hybrid[C]) Problem() search.Problem[C] {
	return h.members[0].problem
}

func (h *Hybrid[C]) pick() int {
	m := len(h.members)
	switch h.strategy {
	case HybridRoundRobin:
		return int((h.next.Add(1) - 1) % uint64(m))
	case HybridWeighted:
		h.mu.Lock()
		u := h.rng.Float64()
		h.mu.Unlock()
		return selectIndex(h.weights, u*h.weights[m-1])
	default:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.rng.IntN(m)
	}
}
