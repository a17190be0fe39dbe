// Package perm provides permutation primitives for constructive search.
//
// The central type is [Partial], a permutation of the labels 0..n-1 under
// construction. A constructive sampler repeatedly picks one of the
// remaining labels and appends it to the placed prefix until nothing
// remains:
//
//	p, _ := perm.NewPartial(4)
//	for !p.IsComplete() {
//	    p.Extend(0) // always take the first remaining label
//	}
//	fmt.Println(p.Complete()) // a full permutation of 0..3
//
// The package also provides small helpers used by tests and tooling:
// [Seq], [Factorial], [Generate] (Heap's algorithm) and [Validate].
package perm

import (
	"slices"

	"github.com/matzehuels/permsample/pkg/errors"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is useful for initializing permutation arrays or creating index sequences.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
// Generate is used for brute-force reference optima on tiny instances; for
// n >= 13 always pass a limit.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	p := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			result = append(result, slices.Clone(p))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// Validate checks that p is a permutation of 0..n-1: correct length, every
// label in range and no duplicates.
func Validate(p []int, n int) error {
	if len(p) != n {
		return errors.New(errors.ErrCodeInvalidPermutation, "permutation length must be %d (got %d)", n, len(p))
	}
	seen := make([]bool, n)
	for i, v := range p {
		if v < 0 || v >= n {
			return errors.New(errors.ErrCodeInvalidPermutation, "element %d at position %d out of range", v, i)
		}
		if seen[v] {
			return errors.New(errors.ErrCodeInvalidPermutation, "element %d repeated at position %d", v, i)
		}
		seen[v] = true
	}
	return nil
}
