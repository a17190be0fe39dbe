package ss

import (
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

// Greedy builds a permutation by always placing the highest-scoring
// candidate. Ties go to the candidate seen first in the remaining
// ordering. Given a deterministic heuristic every run produces the same
// permutation.
type Greedy[E IncrementalEvaluation, C search.Cost] struct {
	base[E, C]
}

// NewGreedy returns a greedy constructor for h.
func NewGreedy[E IncrementalEvaluation, C search.Cost](h Heuristic[E, C], opts Options[C]) (*Greedy[E, C], error) {
	b, err := newBase(NameGreedy, h, opts)
	if err != nil {
		return nil, err
	}
	return &Greedy[E, C]{base: b}, nil
}

// Optimize performs one greedy construction.
func (g *Greedy[E, C]) Optimize() (search.SolutionCostPair[C], bool) {
	return g.optimize(g.sample)
}

// OptimizeN performs up to n greedy constructions and returns the best.
// Useful only when the heuristic itself is randomized.
func (g *Greedy[E, C]) OptimizeN(n int) (search.SolutionCostPair[C], bool) {
	return g.optimizeN(n, g.sample)
}

// Split returns an independent copy for use on another goroutine.
func (g *Greedy[E, C]) Split() *Greedy[E, C] {
	return &Greedy[E, C]{base: g.split()}
}

func (g *Greedy[E, C]) sample() search.SolutionCostPair[C] {
	return g.construct(g.choose)
}

func (g *Greedy[E, C]) choose(p *perm.Partial, eval E) int {
	best := 0
	bestH := g.h.H(p, p.RemainingAt(0), eval)
	for i := 1; i < p.NumRemaining(); i++ {
		if h := g.h.H(p, p.RemainingAt(i), eval); h > bestH {
			best, bestH = i, h
		}
	}
	return best
}
