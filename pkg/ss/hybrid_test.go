package ss

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
)

func TestNewHybridErrors(t *testing.T) {
	_, err := NewHybrid[int](nil, HybridConfig{})
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyHeuristicSet))

	a := newFixed([]float64{1, 2, 3}, false)
	b := newFixed([]float64{3, 2, 1}, false) // its own problem instance
	_, err = NewHybrid([]HybridMember[int]{Member(a), Member(b)}, HybridConfig{})
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedProblem))

	short := &fixedScores{scores: []float64{1, 2}, problem: a.problem, calls: new(atomic.Int64)}
	_, err = NewHybrid([]HybridMember[int]{Member(a), Member(short)}, HybridConfig{})
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedProblem))

	_, err = NewHybrid([]HybridMember[int]{Member(a), {}}, HybridConfig{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidHeuristic))

	_, err = NewHybrid([]HybridMember[int]{Member(a)}, HybridConfig{Strategy: HybridWeighted, Weights: []float64{1, 2}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
	_, err = NewHybrid([]HybridMember[int]{Member(a)}, HybridConfig{Strategy: HybridWeighted, Weights: []float64{0}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
	_, err = NewHybrid([]HybridMember[int]{Member(a)}, HybridConfig{Strategy: HybridStrategy(9)})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
}

// sharedMembers returns heuristics with distinct call counters for one
// problem instance. The second member uses an incremental evaluation.
func sharedMembers(n int) (*fixedScores, *fixedScores, *recording, []HybridMember[int]) {
	problem := &weightedPositions{w: make([]int, n)}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = float64(i + 1)
	}
	a := &fixedScores{scores: scores, problem: problem, calls: new(atomic.Int64)}
	b := &fixedScores{scores: scores, problem: problem, calls: new(atomic.Int64)}
	c := &recording{n: n, problem: problem}
	return a, b, c, []HybridMember[int]{Member(a), Member(b), Member(c)}
}

func TestHybridRoutesWholeRunToOneMember(t *testing.T) {
	a, b, c, members := sharedMembers(6)
	hy, err := NewHybrid(members, HybridConfig{Seed: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, hy.Size())
	assert.Equal(t, 6, hy.Len())

	s, err := NewVBSS[*HybridEval, int](hy, VBSSConfig{}, Options[int]{Seed: 5})
	require.NoError(t, err)

	chosen := map[int]int{}
	for range 60 {
		beforeA, beforeB, beforeC := a.calls.Load(), b.calls.Load(), len(c.evals)
		_, ok := s.Optimize()
		require.True(t, ok)

		moved := 0
		if a.calls.Load() != beforeA {
			moved++
			chosen[0]++
		}
		if b.calls.Load() != beforeB {
			moved++
			chosen[1]++
		}
		if len(c.evals) != beforeC {
			moved++
			chosen[2]++
			last := c.evals[len(c.evals)-1]
			assert.Len(t, last.labels, 6, "the chosen member's evaluation sees every placement")
		}
		assert.Equal(t, 1, moved)
	}
	assert.Len(t, chosen, 3, "uniform choice reaches every member: %v", chosen)
}

// inSync scores with an evaluation that must describe the partial
// permutation it is scored against.
type inSync struct {
	recording
	stale atomic.Int64
}

func (h *inSync) H(p *perm.Partial, label int, eval *recorder) float64 {
	if len(eval.labels) != p.Size() {
		h.stale.Add(1)
	}
	return h.recording.H(p, label, eval)
}

func TestHybridMemberScoresWithItsOwnEvaluation(t *testing.T) {
	problem := &weightedPositions{w: make([]int, 5)}
	a := &inSync{recording: recording{n: 5, problem: problem}}
	b := &inSync{recording: recording{n: 5, problem: problem}}
	hy, err := NewHybrid([]HybridMember[int]{Member[*recorder, int](a), Member[*recorder, int](b)}, HybridConfig{Strategy: HybridRoundRobin})
	require.NoError(t, err)

	s, err := NewVBSS[*HybridEval, int](hy, VBSSConfig{}, Options[int]{Seed: 2})
	require.NoError(t, err)
	for range 10 {
		_, ok := s.Optimize()
		require.True(t, ok)
	}
	assert.Zero(t, a.stale.Load())
	assert.Zero(t, b.stale.Load())
	assert.Len(t, a.evals, 5)
	assert.Len(t, b.evals, 5)
	for _, e := range append(a.evals, b.evals...) {
		assert.Len(t, e.labels, 5)
	}
}

func TestHybridRoundRobin(t *testing.T) {
	_, _, _, members := sharedMembers(4)
	hy, err := NewHybrid(members, HybridConfig{Strategy: HybridRoundRobin})
	require.NoError(t, err)

	var got []int
	for range 7 {
		got = append(got, hy.NewIncrementalEvaluation().Chosen())
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, got)
}

func TestHybridWeighted(t *testing.T) {
	_, _, _, members := sharedMembers(4)
	hy, err := NewHybrid(members, HybridConfig{
		Strategy: HybridWeighted,
		Weights:  []float64{0, 1, 3},
		Seed:     17,
	})
	require.NoError(t, err)

	counts := make([]int, 3)
	for range 4000 {
		counts[hy.NewIncrementalEvaluation().Chosen()]++
	}
	assert.Zero(t, counts[0])
	assert.InDelta(t, 0.75, float64(counts[2])/4000, 0.03, "counts %v", counts)
}

func TestHybridProblem(t *testing.T) {
	a, _, _, members := sharedMembers(3)
	hy, err := NewHybrid(members, HybridConfig{})
	require.NoError(t, err)
	assert.Same(t, a.problem.(*weightedPositions), hy.Problem().(*weightedPositions))

	var _ Heuristic[*HybridEval, int] = hy
	var _ search.Problem[int] = hy.Problem()
}

func TestParseHybridStrategy(t *testing.T) {
	for _, s := range []HybridStrategy{HybridRandom, HybridRoundRobin, HybridWeighted} {
		got, err := ParseHybridStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseHybridStrategy("best")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
	assert.Equal(t, "unknown", HybridStrategy(42).String())
}
