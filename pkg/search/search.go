// Package search defines the contracts shared by every search algorithm:
// the optimization problem a sampler minimizes, the (solution, cost) pair it
// produces and the [ProgressTracker] that holds the best solution found so
// far across samplers.
//
// Costs may be integer- or real-valued; the [Cost] constraint covers both,
// and everything in this package and in ss is generic over it.
package search

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Cost is the scalar type of a problem's objective. Lower is better.
type Cost interface {
	constraints.Integer | constraints.Float
}

// Problem is an optimization problem over permutations, to be minimized.
type Problem[C Cost] interface {
	// Cost evaluates a complete permutation.
	Cost(p []int) C

	// MinCost returns a lower bound on the cost of any solution. For many
	// problems this is the theoretical minimum (e.g. zero tardiness).
	MinCost() C

	// IsMinCost reports whether c is known to be optimal, i.e. equal to
	// MinCost. Samplers stop early once such a cost is reached.
	IsMinCost(c C) bool
}

// SolutionCostPair pairs a complete permutation with its cost.
// Treat it as immutable; values handed out by this module never alias
// internal state.
type SolutionCostPair[C Cost] struct {
	Solution []int
	Cost     C
}

// NewSolutionCostPair returns a pair holding a copy of solution.
func NewSolutionCostPair[C Cost](solution []int, cost C) SolutionCostPair[C] {
	return SolutionCostPair[C]{Solution: slices.Clone(solution), Cost: cost}
}

// Better reports whether p has strictly lower cost than q.
func (p SolutionCostPair[C]) Better(q SolutionCostPair[C]) bool {
	return p.Cost < q.Cost
}
