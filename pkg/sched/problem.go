package sched

import (
	"github.com/matzehuels/permsample/pkg/search"
)

// Objective names the weighted tardiness objective, for cache keys and
// reports.
const Objective = "weighted-tardiness"

// WeightedTardiness is the problem of sequencing the jobs of an instance on
// one machine to minimize total weighted tardiness, sum of w·max(0, C-d)
// over all jobs where C is the completion time.
type WeightedTardiness struct {
	inst *Instance
}

// NewWeightedTardiness validates inst and returns the problem over it.
func NewWeightedTardiness(inst *Instance) (*WeightedTardiness, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &WeightedTardiness{inst: inst}, nil
}

// Instance returns the underlying instance.
func (wt *WeightedTardiness) Instance() *Instance {
	return wt.inst
}

// Len returns the number of jobs.
func (wt *WeightedTardiness) Len() int {
	return len(wt.inst.Jobs)
}

// Job returns job j.
func (wt *WeightedTardiness) Job(j int) Job {
	return wt.inst.Jobs[j]
}

// Setup returns the setup time of job j when it follows job prev. prev < 0
// means j is scheduled first.
func (wt *WeightedTardiness) Setup(prev, j int) int {
	if !wt.inst.HasSetups() {
		return 0
	}
	if prev < 0 {
		return wt.inst.Setups[j][j]
	}
	return wt.inst.Setups[prev][j]
}

// Completion returns the completion time of every job when sequenced in
// order p, indexed by job.
func (wt *WeightedTardiness) Completion(p []int) []int {
	c := make([]int, len(wt.inst.Jobs))
	t, prev := 0, -1
	for _, j := range p {
		t += wt.Setup(prev, j) + wt.inst.Jobs[j].P
		c[j] = t
		prev = j
	}
	return c
}

// Cost returns the total weighted tardiness of sequence p.
func (wt *WeightedTardiness) Cost(p []int) int {
	cost := 0
	t, prev := 0, -1
	for _, j := range p {
		job := wt.inst.Jobs[j]
		t += wt.Setup(prev, j) + job.P
		if late := t - job.D; late > 0 {
			cost += job.W * late
		}
		prev = j
	}
	return cost
}

// MinCost returns zero, the tardiness of a schedule with no late jobs.
func (wt *WeightedTardiness) MinCost() int {
	return 0
}

// IsMinCost reports whether c is zero.
func (wt *WeightedTardiness) IsMinCost(c int) bool {
	return c == 0
}

var _ search.Problem[int] = (*WeightedTardiness)(nil)
