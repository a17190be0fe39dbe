package ss

import (
	"math"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

// RankBias maps a 1-based rank (1 is the best candidate) to a selection
// weight. It should be non-increasing in rank.
type RankBias func(rank int) float64

// InverseRank is the bias 1/rank.
func InverseRank(rank int) float64 {
	return 1 / float64(rank)
}

// ExpRank is the bias exp(-rank).
func ExpRank(rank int) float64 {
	return math.Exp(-float64(rank))
}

// InversePowerRank returns the bias 1/rank^a. It returns an
// INVALID_EXPONENT error unless a is positive and finite.
func InversePowerRank(a float64) (RankBias, error) {
	if err := errors.ValidateExponent(a); err != nil {
		return nil, err
	}
	return func(rank int) float64 {
		return math.Pow(float64(rank), -a)
	}, nil
}

// HBSSConfig configures heuristic-biased (rank-biased) stochastic sampling.
type HBSSConfig struct {
	// Bias weights each rank. Nil means InverseRank.
	Bias RankBias
}

// HBSS is rank-biased stochastic sampling. At each decision the remaining
// candidates are ranked by score and a rank r is chosen with probability
// proportional to bias(r). The candidate holding rank r is then found by
// randomized selection rather than by sorting.
type HBSS[E IncrementalEvaluation, C search.Cost] struct {
	base[E, C]

	// table[r-1] is bias(1)+...+bias(r). It depends only on ranks, so it
	// is built once and shared between splits.
	table []float64

	// Per-split scratch: scores and their candidate indices.
	scores []float64
	index  []int
}

// NewHBSS returns a rank-biased stochastic sampler for h. It returns an
// INVALID_PARAMETER error if bias(1) is not positive.
func NewHBSS[E IncrementalEvaluation, C search.Cost](h Heuristic[E, C], cfg HBSSConfig, opts Options[C]) (*HBSS[E, C], error) {
	b, err := newBase(NameHBSS, h, opts)
	if err != nil {
		return nil, err
	}
	bias := cfg.Bias
	if bias == nil {
		bias = InverseRank
	}
	if w := bias(1); math.IsNaN(w) || w <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "hbss: bias of rank 1 must be positive, got %v", w)
	}
	n := h.Len()
	return &HBSS[E, C]{
		base:   b,
		table:  rankTable(bias, n),
		scores: make([]float64, n),
		index:  make([]int, n),
	}, nil
}

// rankTable returns the prefix sums of bias over ranks 1..n. Negative and
// NaN weights count as zero.
func rankTable(bias RankBias, n int) []float64 {
	table := make([]float64, n)
	sum := 0.0
	for r := 1; r <= n; r++ {
		if w := bias(r); w > 0 {
			sum += w
		}
		table[r-1] = sum
	}
	return table
}

// RankTable returns a copy of the prefix-sum table of rank weights.
func (s *HBSS[E, C]) RankTable() []float64 {
	out := make([]float64, len(s.table))
	copy(out, s.table)
	return out
}

// Optimize performs one sampling run.
func (s *HBSS[E, C]) Optimize() (search.SolutionCostPair[C], bool) {
	return s.optimize(s.sample)
}

// OptimizeN performs up to n sampling runs and returns the best.
func (s *HBSS[E, C]) OptimizeN(n int) (search.SolutionCostPair[C], bool) {
	return s.optimizeN(n, s.sample)
}

// Split returns an independent copy for use on another goroutine. The rank
// table is shared.
func (s *HBSS[E, C]) Split() *HBSS[E, C] {
	n := len(s.scores)
	return &HBSS[E, C]{
		base:   s.split(),
		table:  s.table,
		scores: make([]float64, n),
		index:  make([]int, n),
	}
}

func (s *HBSS[E, C]) sample() search.SolutionCostPair[C] {
	return s.construct(s.choose)
}

func (s *HBSS[E, C]) choose(p *perm.Partial, eval E) int {
	k := p.NumRemaining()
	scores, index := s.scores[:k], s.index[:k]
	for i := range scores {
		scores[i] = Floor(s.h.H(p, p.RemainingAt(i), eval))
		index[i] = i
	}
	prefix := s.table[:k]
	r := selectIndex(prefix, s.rng.Float64()*prefix[k-1])
	return s.selectRank(scores, index, r)
}

// selectRank returns the candidate index holding 0-based rank r in
// descending score order. scores and index are permuted in place.
func (s *HBSS[E, C]) selectRank(scores []float64, index []int, r int) int {
	lo, hi := 0, len(scores)-1
	for lo < hi {
		pivot := lo + s.rng.IntN(hi-lo+1)
		pivot = partition(scores, index, lo, hi, pivot)
		switch {
		case r == pivot:
			return index[r]
		case r < pivot:
			hi = pivot - 1
		default:
			lo = pivot + 1
		}
	}
	return index[lo]
}

// partition rearranges scores[lo..hi] so that every element at least as
// large as the pivot precedes it and every smaller element follows it. It
// returns the pivot's final position. index is permuted alongside scores.
func partition(scores []float64, index []int, lo, hi, pivot int) int {
	pv := scores[pivot]
	swap := func(i, j int) {
		scores[i], scores[j] = scores[j], scores[i]
		index[i], index[j] = index[j], index[i]
	}
	swap(pivot, hi)
	store := lo
	for i := lo; i < hi; i++ {
		if scores[i] >= pv {
			swap(i, store)
			store++
		}
	}
	swap(store, hi)
	return store
}
