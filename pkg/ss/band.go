package ss

import (
	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

// DefaultBeta is the default acceptance band width.
const DefaultBeta = 0.1

// AcceptanceBand samples uniformly among the candidates whose score is
// within a fraction beta of the best score at each decision. With beta 0
// only candidates tied with the best are eligible; with beta 1 every
// candidate is.
type AcceptanceBand[E IncrementalEvaluation, C search.Cost] struct {
	base[E, C]
	beta float64

	scores []float64
	band   []int
}

// NewAcceptanceBand returns an acceptance-band sampler for h. It returns an
// INVALID_BETA error unless 0 <= beta <= 1.
func NewAcceptanceBand[E IncrementalEvaluation, C search.Cost](h Heuristic[E, C], beta float64, opts Options[C]) (*AcceptanceBand[E, C], error) {
	if err := errors.ValidateBeta(beta); err != nil {
		return nil, err
	}
	b, err := newBase(NameAcceptanceBand, h, opts)
	if err != nil {
		return nil, err
	}
	n := h.Len()
	return &AcceptanceBand[E, C]{
		base:   b,
		beta:   beta,
		scores: make([]float64, n),
		band:   make([]int, 0, n),
	}, nil
}

// Beta returns the acceptance band width.
func (s *AcceptanceBand[E, C]) Beta() float64 {
	return s.beta
}

// Optimize performs one sampling run.
func (s *AcceptanceBand[E, C]) Optimize() (search.SolutionCostPair[C], bool) {
	return s.optimize(s.sample)
}

// OptimizeN performs up to n sampling runs and returns the best.
func (s *AcceptanceBand[E, C]) OptimizeN(n int) (search.SolutionCostPair[C], bool) {
	return s.optimizeN(n, s.sample)
}

// Split returns an independent copy for use on another goroutine.
func (s *AcceptanceBand[E, C]) Split() *AcceptanceBand[E, C] {
	n := len(s.scores)
	return &AcceptanceBand[E, C]{
		base:   s.split(),
		beta:   s.beta,
		scores: make([]float64, n),
		band:   make([]int, 0, n),
	}
}

func (s *AcceptanceBand[E, C]) sample() search.SolutionCostPair[C] {
	return s.construct(s.choose)
}

func (s *AcceptanceBand[E, C]) choose(p *perm.Partial, eval E) int {
	k := p.NumRemaining()
	scores := s.scores[:k]
	top := 0.0
	for i := range scores {
		scores[i] = Floor(s.h.H(p, p.RemainingAt(i), eval))
		top = max(top, scores[i])
	}

	threshold := top * (1 - s.beta)
	band := s.band[:0]
	for i, v := range scores {
		if v >= threshold {
			band = append(band, i)
		}
	}
	s.band = band
	return band[s.rng.IntN(len(band))]
}
