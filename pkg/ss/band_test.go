package ss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
)

func TestAcceptanceBandBeta(t *testing.T) {
	h := newFixed([]float64{1, 2}, false)
	for _, beta := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := NewAcceptanceBand(h, beta, Options[int]{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidBeta), "beta %v", beta)
	}
	s, err := NewAcceptanceBand(h, DefaultBeta, Options[int]{})
	require.NoError(t, err)
	assert.Equal(t, 0.1, s.Beta())
}

func TestAcceptanceBandZeroBetaTakesMax(t *testing.T) {
	scores := []float64{2, 5, 5, 1, 3, 5}
	h := newFixed(scores, false)
	s, err := NewAcceptanceBand(h, 0, Options[int]{Seed: 6})
	require.NoError(t, err)

	firsts := map[int]bool{}
	for range 300 {
		got := s.sample()
		for i := 1; i < len(got.Solution); i++ {
			assert.GreaterOrEqual(t, scores[got.Solution[i-1]], scores[got.Solution[i]])
		}
		assert.Equal(t, 5.0, scores[got.Solution[0]])
		firsts[got.Solution[0]] = true
	}
	assert.Len(t, firsts, 3, "every label tied at the max is eligible")
}

func TestAcceptanceBandFullWidth(t *testing.T) {
	h := newFixed([]float64{1, 1000, 1, 50}, false)
	s, err := NewAcceptanceBand(h, 1, Options[int]{Seed: 6})
	require.NoError(t, err)

	counts := firstCounts(s.sample, 2000, 4)
	for label, c := range counts {
		assert.Positive(t, c, "label %d never chosen: %v", label, counts)
	}
}

func TestAcceptanceBandWidth(t *testing.T) {
	// 91 is within 10% of 100, 89 is not.
	h := newFixed([]float64{100, 91, 89, 10}, false)
	s, err := NewAcceptanceBand(h, DefaultBeta, Options[int]{Seed: 3})
	require.NoError(t, err)

	counts := firstCounts(s.sample, 2000, 4)
	assert.Positive(t, counts[0])
	assert.Positive(t, counts[1])
	assert.Zero(t, counts[2])
	assert.Zero(t, counts[3])
}
