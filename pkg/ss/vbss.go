package ss

import (
	"math"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

// BiasFunc maps a raw heuristic score to a selection weight. It must be
// monotone and return positive values; non-positive results are floored
// at MinH.
type BiasFunc func(score float64) float64

// ExponentialBias returns the bias v^a. It returns an INVALID_EXPONENT
// error unless a is positive and finite.
func ExponentialBias(a float64) (BiasFunc, error) {
	if err := errors.ValidateExponent(a); err != nil {
		return nil, err
	}
	return func(v float64) float64 { return math.Pow(v, a) }, nil
}

// VBSSConfig configures value-biased stochastic sampling.
type VBSSConfig struct {
	// Exponent a gives bias(v) = v^a. Zero means 1, i.e. probability
	// proportional to the raw score. Larger exponents favour the best
	// candidates more strongly.
	Exponent float64

	// Bias, if set, replaces the exponent form entirely.
	Bias BiasFunc
}

// VBSS is value-biased stochastic sampling. At each decision every
// remaining candidate is chosen with probability proportional to
// bias(score).
//
// For example, with scores [5, 7, 1, 1] and exponent 1 the candidate
// scoring 7 is chosen first with probability 7/14 = 0.5; with exponent 2
// it is 49/76 ≈ 0.645.
type VBSS[E IncrementalEvaluation, C search.Cost] struct {
	base[E, C]
	exponent float64
	bias     BiasFunc

	// Scratch buffers, never shared between splits.
	weights    []float64
	cumulative []float64
}

// NewVBSS returns a value-biased stochastic sampler for h.
// It returns an INVALID_EXPONENT error for a negative or non-finite
// exponent.
func NewVBSS[E IncrementalEvaluation, C search.Cost](h Heuristic[E, C], cfg VBSSConfig, opts Options[C]) (*VBSS[E, C], error) {
	b, err := newBase(NameVBSS, h, opts)
	if err != nil {
		return nil, err
	}
	a := cfg.Exponent
	if a == 0 {
		a = 1
	}
	if cfg.Bias == nil {
		if err := errors.ValidateExponent(a); err != nil {
			return nil, err
		}
	}
	n := h.Len()
	return &VBSS[E, C]{
		base:       b,
		exponent:   a,
		bias:       cfg.Bias,
		weights:    make([]float64, n),
		cumulative: make([]float64, n),
	}, nil
}

// Exponent returns the exponent of the bias function. It is meaningless if
// a custom bias is configured.
func (s *VBSS[E, C]) Exponent() float64 {
	return s.exponent
}

// Optimize performs one sampling run.
func (s *VBSS[E, C]) Optimize() (search.SolutionCostPair[C], bool) {
	return s.optimize(s.sample)
}

// OptimizeN performs up to n sampling runs and returns the best.
func (s *VBSS[E, C]) OptimizeN(n int) (search.SolutionCostPair[C], bool) {
	return s.optimizeN(n, s.sample)
}

// Split returns an independent copy for use on another goroutine.
func (s *VBSS[E, C]) Split() *VBSS[E, C] {
	n := len(s.weights)
	return &VBSS[E, C]{
		base:       s.split(),
		exponent:   s.exponent,
		bias:       s.bias,
		weights:    make([]float64, n),
		cumulative: make([]float64, n),
	}
}

func (s *VBSS[E, C]) sample() search.SolutionCostPair[C] {
	return s.construct(s.choose)
}

func (s *VBSS[E, C]) choose(p *perm.Partial, eval E) int {
	k := p.NumRemaining()
	w := s.weights[:k]
	for i := range w {
		w[i] = Floor(s.h.H(p, p.RemainingAt(i), eval))
	}
	s.applyBias(w)

	c := s.cumulative[:k]
	total := 0.0
	for i, v := range w {
		total += v
		c[i] = total
	}
	return selectIndex(c, s.rng.Float64()*total)
}

// applyBias transforms raw scores into selection weights in place. The
// largest weight is exactly 1, so the total lies in [1, k].
func (s *VBSS[E, C]) applyBias(w []float64) {
	if s.bias != nil {
		for i, v := range w {
			w[i] = Floor(s.bias(v))
		}
		normalize(w)
		return
	}
	// v^a is scale invariant, so scaling first keeps it from overflowing.
	normalize(w)
	if s.exponent != 1 {
		for i, v := range w {
			w[i] = math.Pow(v, s.exponent)
		}
	}
}

// normalize divides positive weights by the largest one. If any weight is
// +Inf, the infinite weights share the choice equally.
func normalize(w []float64) {
	top := w[0]
	for _, v := range w[1:] {
		top = max(top, v)
	}
	if math.IsInf(top, 1) {
		for i, v := range w {
			if math.IsInf(v, 1) {
				w[i] = 1
			} else {
				w[i] = 0
			}
		}
		return
	}
	for i, v := range w {
		w[i] = v / top
	}
}
