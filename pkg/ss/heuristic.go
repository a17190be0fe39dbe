package ss

import (
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

// MinH is the smallest score a heuristic may return. Every sampler relies
// on scores being strictly positive.
const MinH = 1e-5

// Floor clamps h to at least MinH. NaN is treated as non-positive.
func Floor(h float64) float64 {
	if h >= MinH {
		return h
	}
	return MinH
}

// IncrementalEvaluation is heuristic-specific state that changes as a
// partial permutation grows.
//
// Samplers call Extend(p, label) exactly once per placed label, BEFORE the
// label is appended to p. After Extend returns, the state describes p with
// label appended. An evaluation belongs to a single construction run and
// is never shared between goroutines.
type IncrementalEvaluation interface {
	Extend(p *perm.Partial, label int)
}

// NoEval is the evaluation of heuristics that keep no incremental state.
type NoEval struct{}

// Extend does nothing.
func (NoEval) Extend(*perm.Partial, int) {}

// Heuristic is a constructive heuristic for a permutation problem with cost
// type C, using incremental evaluations of type E.
type Heuristic[E IncrementalEvaluation, C search.Cost] interface {
	// H scores placing label next, given the partial permutation p and
	// the run's incremental evaluation. Higher is better. The result must
	// be at least MinH.
	H(p *perm.Partial, label int, eval E) float64

	// NewIncrementalEvaluation returns fresh state for a new run.
	NewIncrementalEvaluation() E

	// Len returns the length of the permutations this heuristic builds.
	Len() int

	// Problem returns the problem being solved.
	Problem() search.Problem[C]
}
