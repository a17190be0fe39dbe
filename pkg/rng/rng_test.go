package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(s *Source, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.Uint64()
	}
	return out
}

func TestSeedDeterminism(t *testing.T) {
	a := draws(New(42), 16)
	b := draws(New(42), 16)
	assert.Equal(t, a, b, "same seed must give identical streams")

	c := draws(New(43), 16)
	assert.NotEqual(t, a, c, "different seeds should diverge")
}

func TestSplitDeterminism(t *testing.T) {
	p1, p2 := New(7), New(7)
	c1, c2 := p1.Split(), p2.Split()
	assert.Equal(t, draws(c1, 8), draws(c2, 8))
	assert.Equal(t, draws(p1, 8), draws(p2, 8), "parents stay in lockstep after splitting")
}

func TestSplitIndependence(t *testing.T) {
	parent := New(1)
	first := parent.Split()
	second := parent.Split()

	a, b := draws(first, 32), draws(second, 32)
	assert.NotEqual(t, a, b, "consecutive splits must differ")

	p := draws(parent, 32)
	assert.NotEqual(t, a, p)
	assert.NotEqual(t, b, p)
}

func TestFloat64Range(t *testing.T) {
	s := New(3)
	for i := 0; i < 10000; i++ {
		u := s.Float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestIntNUniform(t *testing.T) {
	const k, trials = 5, 50000
	s := New(9)
	counts := make([]int, k)
	for i := 0; i < trials; i++ {
		counts[s.IntN(k)]++
	}
	for i, c := range counts {
		assert.InDelta(t, trials/k, c, 0.05*trials/k, "bucket %d", i)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7}
	New(5).Shuffle(a)
	seen := make(map[int]bool)
	for _, v := range a {
		seen[v] = true
	}
	assert.Len(t, seen, 8)
}
