package sched

import (
	"math"
	"slices"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/perm"
	"github.com/matzehuels/permsample/pkg/search"
	"github.com/matzehuels/permsample/pkg/ss"
)

// Heuristic names accepted by Member.
const (
	NameEDD    = "edd"
	NameSPT    = "spt"
	NameLPT    = "lpt"
	NameWSPT   = "wspt"
	NameMST    = "mst"
	NameATC    = "atc"
	NameCOVERT = "covert"
)

// DefaultK is the default look-ahead parameter of ATC and COVERT.
const DefaultK = 2.0

// Names returns the names of all heuristics, sorted.
func Names() []string {
	names := []string{NameEDD, NameSPT, NameLPT, NameWSPT, NameMST, NameATC, NameCOVERT}
	slices.Sort(names)
	return names
}

// Member returns the named heuristic over wt, type-erased for use in an
// ss.Hybrid. k is the look-ahead parameter of ATC and COVERT and is
// ignored by the other heuristics.
func Member(name string, wt *WeightedTardiness, k float64) (ss.HybridMember[int], error) {
	switch name {
	case NameEDD:
		return ss.Member(NewEDD(wt)), nil
	case NameSPT:
		return ss.Member(NewSPT(wt)), nil
	case NameLPT:
		return ss.Member(NewLPT(wt)), nil
	case NameWSPT:
		return ss.Member(NewWSPT(wt)), nil
	case NameMST:
		return ss.Member(NewMST(wt)), nil
	case NameATC:
		h, err := NewATC(wt, k)
		if err != nil {
			return ss.HybridMember[int]{}, err
		}
		return ss.Member(h), nil
	case NameCOVERT:
		h, err := NewCOVERT(wt, k)
		if err != nil {
			return ss.HybridMember[int]{}, err
		}
		return ss.Member(h), nil
	}
	return ss.HybridMember[int]{}, errors.New(errors.ErrCodeInvalidHeuristic, "unknown heuristic %q (want one of %v)", name, Names())
}

// TimeEval tracks the current time and the last scheduled job while a
// sequence is built.
type TimeEval struct {
	wt         *WeightedTardiness
	time       int
	last       int
	remainingP int
	remaining  int
}

// NewTimeEval returns the evaluation of an empty sequence.
func (wt *WeightedTardiness) NewTimeEval() *TimeEval {
	total := 0
	for _, j := range wt.inst.Jobs {
		total += j.P
	}
	return &TimeEval{wt: wt, last: -1, remainingP: total, remaining: len(wt.inst.Jobs)}
}

// Extend advances the clock past job j.
func (e *TimeEval) Extend(_ *perm.Partial, j int) {
	p := e.wt.inst.Jobs[j].P
	e.time += e.wt.Setup(e.last, j) + p
	e.last = j
	e.remainingP -= p
	e.remaining--
}

// Time returns the completion time of the last scheduled job.
func (e *TimeEval) Time() int { return e.time }

// Last returns the last scheduled job, or -1.
func (e *TimeEval) Last() int { return e.last }

// MeanRemaining returns the mean processing time of unscheduled jobs.
func (e *TimeEval) MeanRemaining() float64 {
	if e.remaining == 0 {
		return 0
	}
	return float64(e.remainingP) / float64(e.remaining)
}

// rule holds what every heuristic needs.
type rule struct {
	wt *WeightedTardiness
}

func (r rule) Len() int                     { return r.wt.Len() }
func (r rule) Problem() search.Problem[int] { return r.wt }

// staticRule is embedded by heuristics that keep no incremental state.
type staticRule struct{ rule }

func (staticRule) NewIncrementalEvaluation() ss.NoEval { return ss.NoEval{} }

// timeRule is embedded by heuristics that depend on the current time.
type timeRule struct{ rule }

func (r timeRule) NewIncrementalEvaluation() *TimeEval { return r.wt.NewTimeEval() }

// EDD (earliest due date) prefers jobs with early due dates.
type EDD struct{ staticRule }

// NewEDD returns the EDD heuristic.
func NewEDD(wt *WeightedTardiness) *EDD { return &EDD{staticRule{rule{wt}}} }

func (h *EDD) H(_ *perm.Partial, j int, _ ss.NoEval) float64 {
	return ss.Floor(1 / float64(max(h.wt.inst.Jobs[j].D, 0)+1))
}

// SPT (shortest processing time) prefers short jobs.
type SPT struct{ staticRule }

// NewSPT returns the SPT heuristic.
func NewSPT(wt *WeightedTardiness) *SPT { return &SPT{staticRule{rule{wt}}} }

func (h *SPT) H(_ *perm.Partial, j int, _ ss.NoEval) float64 {
	return ss.Floor(1 / float64(h.wt.inst.Jobs[j].P))
}

// LPT (longest processing time) prefers long jobs.
type LPT struct{ staticRule }

// NewLPT returns the LPT heuristic.
func NewLPT(wt *WeightedTardiness) *LPT { return &LPT{staticRule{rule{wt}}} }

func (h *LPT) H(_ *perm.Partial, j int, _ ss.NoEval) float64 {
	return ss.Floor(float64(h.wt.inst.Jobs[j].P))
}

// WSPT (weighted shortest processing time) prefers jobs with a high
// weight per unit of processing time.
type WSPT struct{ staticRule }

// NewWSPT returns the WSPT heuristic.
func NewWSPT(wt *WeightedTardiness) *WSPT { return &WSPT{staticRule{rule{wt}}} }

func (h *WSPT) H(_ *perm.Partial, j int, _ ss.NoEval) float64 {
	return ss.Floor(h.ratio(j, 0))
}

// ratio is w/(p+setup).
func (h *WSPT) ratio(j, setup int) float64 {
	job := h.wt.inst.Jobs[j]
	return float64(job.W) / float64(job.P+setup)
}

// MST (minimum slack time) prefers jobs with little slack left before
// their due date. Jobs that are already late score above every job that
// is not, the later the higher.
type MST struct{ timeRule }

// NewMST returns the MST heuristic.
func NewMST(wt *WeightedTardiness) *MST { return &MST{timeRule{rule{wt}}} }

func (h *MST) H(_ *perm.Partial, j int, e *TimeEval) float64 {
	s := slack(h.wt, e, j)
	if s >= 0 {
		return ss.Floor(1 / float64(1+s))
	}
	return float64(1 - s)
}

// slack is d - t - setup - p for job j at the current time.
func slack(wt *WeightedTardiness, e *TimeEval, j int) int {
	job := wt.inst.Jobs[j]
	return job.D - e.time - wt.Setup(e.last, j) - job.P
}

// ATC (apparent tardiness cost) discounts the WSPT ratio exponentially by
// slack, relative to k times the mean remaining processing time.
type ATC struct {
	timeRule
	wspt *WSPT
	k    float64
}

// NewATC returns the ATC heuristic with look-ahead k. It returns an
// INVALID_PARAMETER error unless k is positive.
func NewATC(wt *WeightedTardiness, k float64) (*ATC, error) {
	if err := errors.ValidatePositive("k", k); err != nil {
		return nil, err
	}
	return &ATC{timeRule: timeRule{rule{wt}}, wspt: NewWSPT(wt), k: k}, nil
}

func (h *ATC) H(_ *perm.Partial, j int, e *TimeEval) float64 {
	s := max(slack(h.wt, e, j), 0)
	ratio := h.wspt.ratio(j, h.wt.Setup(e.last, j))
	return ss.Floor(ratio * math.Exp(-float64(s)/(h.k*e.MeanRemaining())))
}

// COVERT (cost over time) discounts the WSPT ratio linearly by slack,
// reaching zero at k times the job's own processing time.
type COVERT struct {
	timeRule
	wspt *WSPT
	k    float64
}

// NewCOVERT returns the COVERT heuristic with look-ahead k. It returns an
// INVALID_PARAMETER error unless k is positive.
func NewCOVERT(wt *WeightedTardiness, k float64) (*COVERT, error) {
	if err := errors.ValidatePositive("k", k); err != nil {
		return nil, err
	}
	return &COVERT{timeRule: timeRule{rule{wt}}, wspt: NewWSPT(wt), k: k}, nil
}

func (h *COVERT) H(_ *perm.Partial, j int, e *TimeEval) float64 {
	setup := h.wt.Setup(e.last, j)
	s := max(slack(h.wt, e, j), 0)
	p := float64(h.wt.inst.Jobs[j].P + setup)
	return ss.Floor(h.wspt.ratio(j, setup) * max(0, 1-float64(s)/(h.k*p)))
}

var (
	_ ss.Heuristic[ss.NoEval, int] = (*EDD)(nil)
	_ ss.Heuristic[ss.NoEval, int] = (*SPT)(nil)
	_ ss.Heuristic[ss.NoEval, int] = (*LPT)(nil)
	_ ss.Heuristic[ss.NoEval, int] = (*WSPT)(nil)
	_ ss.Heuristic[*TimeEval, int] = (*MST)(nil)
	_ ss.Heuristic[*TimeEval, int] = (*ATC)(nil)
	_ ss.Heuristic[*TimeEval, int] = (*COVERT)(nil)
)
