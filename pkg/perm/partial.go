package perm

import (
	"slices"

	"github.com/matzehuels/permsample/pkg/errors"
)

// Partial is a permutation of the labels 0..n-1 in the process of being
// built. It keeps the labels already placed, in order, and the labels still
// remaining, in no particular order. Together they always partition 0..n-1.
//
// Removal from the remaining set swaps the chosen label with the last
// remaining one and shrinks the set, so [Partial.Extend] is O(1). The
// price is that the remaining ordering is NOT stable across calls to
// Extend: an index obtained from [Partial.RemainingAt] is only meaningful
// until the next Extend. Callers must re-enumerate after every extension.
//
// A Partial is owned by a single construction run and is not safe for
// concurrent use.
type Partial struct {
	placed    []int
	remaining []int
	// pos[label] is the label's index in remaining, or -1 once placed.
	pos []int
}

// NewPartial creates an empty partial permutation of length n with every
// label remaining. It returns an INVALID_LENGTH error if n < 0.
func NewPartial(n int) (*Partial, error) {
	if err := errors.ValidateLength(n); err != nil {
		return nil, err
	}
	return &Partial{
		placed:    make([]int, 0, n),
		remaining: Seq(n),
		pos:       Seq(n),
	}, nil
}

// Len returns the length n of the permutation being built.
func (p *Partial) Len() int {
	return len(p.pos)
}

// Size returns the number of labels placed so far.
func (p *Partial) Size() int {
	return len(p.placed)
}

// NumRemaining returns the number of labels not yet placed.
func (p *Partial) NumRemaining() int {
	return len(p.remaining)
}

// IsComplete reports whether every label has been placed.
func (p *Partial) IsComplete() bool {
	return len(p.remaining) == 0
}

// RemainingAt returns the label at index i of the current remaining ordering.
// It panics with INDEX_OUT_OF_RANGE unless 0 <= i < NumRemaining().
func (p *Partial) RemainingAt(i int) int {
	if i < 0 || i >= len(p.remaining) {
		errors.OutOfRange("remaining", i, len(p.remaining))
	}
	return p.remaining[i]
}

// PlacedAt returns the label at position i of the placed prefix.
// It panics with INDEX_OUT_OF_RANGE unless 0 <= i < Size().
func (p *Partial) PlacedAt(i int) int {
	if i < 0 || i >= len(p.placed) {
		errors.OutOfRange("placed", i, len(p.placed))
	}
	return p.placed[i]
}

// LastPlaced returns the most recently placed label.
// It panics with INDEX_OUT_OF_RANGE if nothing has been placed.
func (p *Partial) LastPlaced() int {
	return p.PlacedAt(len(p.placed) - 1)
}

// IsPlaced reports whether label has already been placed.
// It panics with INDEX_OUT_OF_RANGE unless 0 <= label < Len().
func (p *Partial) IsPlaced(label int) bool {
	if label < 0 || label >= len(p.pos) {
		errors.OutOfRange("label", label, len(p.pos))
	}
	return p.pos[label] < 0
}

// Extend moves the label at index i of the remaining ordering to the end of
// the placed prefix. The last remaining label takes its slot, which
// reorders the remaining set.
// It panics with INDEX_OUT_OF_RANGE unless 0 <= i < NumRemaining().
func (p *Partial) Extend(i int) {
	label := p.RemainingAt(i)
	last := len(p.remaining) - 1
	moved := p.remaining[last]
	p.remaining[i] = moved
	p.pos[moved] = i
	p.remaining = p.remaining[:last]
	p.pos[label] = -1
	p.placed = append(p.placed, label)
}

// Placed returns a copy of the placed prefix.
func (p *Partial) Placed() []int {
	return slices.Clone(p.placed)
}

// Remaining returns a copy of the remaining labels in their current order.
func (p *Partial) Remaining() []int {
	return slices.Clone(p.remaining)
}

// Complete materializes a full permutation: the placed prefix followed by
// any labels still remaining, in their current arbitrary order. The
// receiver is not modified.
//
// Samplers only call Complete once IsComplete is true. On an incomplete
// sequence the result is still a structurally valid permutation but not a
// meaningful solution; this is useful for peeking at a plausible
// completion without mutating state.
func (p *Partial) Complete() []int {
	out := make([]int, 0, len(p.pos))
	out = append(out, p.placed...)
	return append(out, p.remaining...)
}
