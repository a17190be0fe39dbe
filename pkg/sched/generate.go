package sched

import (
	"fmt"
	"math"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/rng"
)

// GenerateOptions controls random instance generation.
//
// Due dates are drawn uniformly from
// [P·(1-Tau-Range/2), P·(1-Tau+Range/2)], where P is the total processing
// time plus the mean setup time per job. Tau is the tardiness factor (the
// larger, the more jobs are late) and Range the due date range factor.
type GenerateOptions struct {
	Tau   float64
	Range float64

	// MaxSetup, if positive, adds sequence-dependent setups drawn
	// uniformly from [0, MaxSetup].
	MaxSetup int
}

// DefaultGenerateOptions returns moderately tight due dates without setups.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Tau: 0.5, Range: 0.5}
}

func (o GenerateOptions) validate() error {
	if math.IsNaN(o.Tau) || o.Tau < 0 || o.Tau > 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "tau must be in [0,1], got %v", o.Tau)
	}
	if math.IsNaN(o.Range) || o.Range < 0 || o.Range > 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "range must be in [0,1], got %v", o.Range)
	}
	if o.MaxSetup < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "max setup must be non-negative, got %d", o.MaxSetup)
	}
	return nil
}

// Generate returns a random instance of n jobs. Processing times are drawn
// from [1,100] and weights from [1,10]. The same seed and options always
// produce the same instance.
func Generate(n int, seed uint64, opts GenerateOptions) (*Instance, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "instance needs at least one job, got %d", n)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	r := rng.New(seed)

	inst := &Instance{
		Name: fmt.Sprintf("wt-%d-%d", n, seed),
		Jobs: make([]Job, n),
	}
	total := 0
	for i := range inst.Jobs {
		inst.Jobs[i].P = 1 + r.IntN(100)
		inst.Jobs[i].W = 1 + r.IntN(10)
		total += inst.Jobs[i].P
	}

	if opts.MaxSetup > 0 {
		inst.Setups = make([][]int, n)
		setupSum := 0
		for i := range inst.Setups {
			inst.Setups[i] = make([]int, n)
			for j := range inst.Setups[i] {
				s := r.IntN(opts.MaxSetup + 1)
				inst.Setups[i][j] = s
				setupSum += s
			}
		}
		total += setupSum / n
	}

	lo := float64(total) * (1 - opts.Tau - opts.Range/2)
	width := float64(total) * opts.Range
	for i := range inst.Jobs {
		d := lo + r.Float64()*width
		inst.Jobs[i].D = max(int(math.Round(d)), 0)
	}
	return inst, nil
}
