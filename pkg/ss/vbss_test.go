package ss

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/search"
)

// firstCounts runs sample trials times and counts which label came first.
// It bypasses the tracker so that reaching the optimum does not stop it.
func firstCounts(sample func() search.SolutionCostPair[int], trials, n int) []int {
	counts := make([]int, n)
	for range trials {
		counts[sample().Solution[0]]++
	}
	return counts
}

// chiSquare returns the chi-square statistic of counts against a uniform
// distribution.
func chiSquare(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	expected := float64(total) / float64(len(counts))
	stat := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

func TestVBSSConfigValidation(t *testing.T) {
	h := newFixed([]float64{1, 2}, false)
	for _, a := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := NewVBSS(h, VBSSConfig{Exponent: a}, Options[int]{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidExponent), "exponent %v", a)
	}

	s, err := NewVBSS(h, VBSSConfig{}, Options[int]{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Exponent())

	_, err = ExponentialBias(0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidExponent))
}

func TestVBSSUniformOnEqualScores(t *testing.T) {
	h := newFixed([]float64{3, 3, 3, 3, 3}, false)
	s, err := NewVBSS(h, VBSSConfig{Exponent: 2}, Options[int]{Seed: 42})
	require.NoError(t, err)

	counts := firstCounts(s.sample, 5000, 5)
	// Critical value for 4 degrees of freedom at p = 0.001.
	assert.Less(t, chiSquare(counts), 18.467, "counts %v", counts)
}

func TestVBSSFavoursDominantCandidate(t *testing.T) {
	h := newFixed([]float64{1, 1, 1, 100}, false)
	s, err := NewVBSS(h, VBSSConfig{}, Options[int]{Seed: 42})
	require.NoError(t, err)

	counts := firstCounts(s.sample, 2000, 4)
	assert.Greater(t, float64(counts[3])/2000, 0.9, "counts %v", counts)
}

func TestVBSSExponent(t *testing.T) {
	tests := []struct {
		exponent float64
		want     float64 // probability that label 1 (score 7) is placed first
		delta    float64
	}{
		{1, 7.0 / 14, 0.03},
		{2, 49.0 / 76, 0.03},
		{10, 0.95, 0.05},
	}
	const trials = 5000
	for _, tt := range tests {
		h := newFixed([]float64{5, 7, 1, 1}, false)
		s, err := NewVBSS(h, VBSSConfig{Exponent: tt.exponent}, Options[int]{Seed: 99})
		require.NoError(t, err)

		counts := firstCounts(s.sample, trials, 4)
		assert.InDelta(t, tt.want, float64(counts[1])/trials, tt.delta, "exponent %v: %v", tt.exponent, counts)
	}
}

func TestVBSSCustomBias(t *testing.T) {
	h := newFixed([]float64{1, 2, 3, 4}, false)
	zero := func(float64) float64 { return 0 }
	s, err := NewVBSS(h, VBSSConfig{Exponent: -5, Bias: zero}, Options[int]{Seed: 1})
	require.NoError(t, err, "exponent is ignored with a custom bias")

	// Every weight is floored to the same value, so choice is uniform.
	counts := firstCounts(s.sample, 4000, 4)
	assert.Less(t, chiSquare(counts), 16.266, "counts %v", counts)

	square, err := ExponentialBias(2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, square(3))
}

func TestVBSSHugeScores(t *testing.T) {
	h := &fixedScores{
		scores:  []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		problem: &weightedPositions{w: []int{1, 2, 3}},
		calls:   new(atomic.Int64),
	}
	for _, a := range []float64{1, 3} {
		s, err := NewVBSS(h, VBSSConfig{Exponent: a}, Options[int]{Seed: 4})
		require.NoError(t, err)
		counts := firstCounts(s.sample, 300, 3)
		for label, c := range counts {
			assert.Positive(t, c, "exponent %v label %d never first", a, label)
		}
	}
}

func TestVBSSCustomBiasOverflow(t *testing.T) {
	// exp(800) is +Inf, so every weight overflows.
	s, err := NewVBSS(newFixed([]float64{800, 800, 800}, false), VBSSConfig{Bias: math.Exp}, Options[int]{Seed: 6})
	require.NoError(t, err)
	counts := firstCounts(s.sample, 600, 3)
	assert.Less(t, chiSquare(counts), 13.816, "counts %v", counts)

	// Only the overflowing weights are eligible, and they share the choice.
	s, err = NewVBSS(newFixed([]float64{800, 1, 800}, false), VBSSConfig{Bias: math.Exp}, Options[int]{Seed: 7})
	require.NoError(t, err)
	counts = firstCounts(s.sample, 600, 3)
	assert.Zero(t, counts[1], "counts %v", counts)
	assert.Positive(t, counts[0], "counts %v", counts)
	assert.Positive(t, counts[2], "counts %v", counts)

	// Large finite weights keep their proportions.
	s, err = NewVBSS(newFixed([]float64{700, 700, 1}, false), VBSSConfig{Bias: math.Exp}, Options[int]{Seed: 8})
	require.NoError(t, err)
	counts = firstCounts(s.sample, 600, 3)
	assert.Zero(t, counts[2], "counts %v", counts)
	assert.InDelta(t, 300, counts[0], 60, "counts %v", counts)
}

func TestNormalize(t *testing.T) {
	w := []float64{2, 8, 4}
	normalize(w)
	assert.Equal(t, []float64{0.25, 1, 0.5}, w)

	w = []float64{math.Inf(1), 3, math.Inf(1)}
	normalize(w)
	assert.Equal(t, []float64{1, 0, 1}, w)

	w = []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	normalize(w)
	assert.Equal(t, []float64{1, 1, 1}, w)
}
