// Package sched provides single-machine scheduling problems for the
// samplers in package ss.
//
// An [Instance] is a list of jobs with processing times, weights and due
// dates, optionally with sequence-dependent setup times. Instances are
// stored as TOML:
//
//	name = "example"
//
//	[[jobs]]
//	p = 3
//	w = 2
//	d = 5
//
//	[[jobs]]
//	p = 4
//	w = 1
//	d = 4
//
// [WeightedTardiness] is the problem of sequencing the jobs to minimize
// total weighted tardiness. It implements search.Problem[int].
//
// # Heuristics
//
// Static dispatching rules score a job by its data alone:
//   - [EDD]: earliest due date
//   - [SPT], [LPT]: shortest and longest processing time
//   - [WSPT]: weighted shortest processing time
//
// Dynamic rules depend on the current time, tracked incrementally by a
// [TimeEval]:
//   - [MST]: minimum slack time
//   - [ATC]: apparent tardiness cost
//   - [COVERT]: cost over time
//
// [Member] looks a heuristic up by name for use in an ss.Hybrid.
package sched
