// Package pkg provides the libraries behind permsample, a stochastic
// constructive search toolkit for permutation problems.
//
// # Overview
//
// A construction run builds a permutation one element at a time. At every
// step a heuristic scores the elements not yet placed, and a sampling
// algorithm picks one of them, deterministically or at random with a bias
// toward high scores. Many independent runs are made and the best
// permutation is kept.
//
// # Architecture
//
// The typical data flow:
//
//	Problem instance (sched)
//	         ↓
//	    heuristics scoring candidates (sched, ss.Hybrid)
//	         ↓
//	    sampler choosing among them (ss: Greedy, VBSS, HBSS, AcceptanceBand)
//	         ↓
//	    best solution shared across workers (search.ProgressTracker)
//	         ↓
//	    best-known cache and run history (cache, history)
//
// # Quick Start
//
//	inst, _ := sched.LoadFile("jobs.toml")
//	wt, _ := sched.NewWeightedTardiness(inst)
//	atc, _ := sched.NewATC(wt, sched.DefaultK)
//
//	s, _ := ss.NewVBSS(atc, ss.VBSSConfig{Exponent: 2}, ss.Options[int]{Seed: 1})
//	batch, _ := ss.Parallel[int](ctx, s, 4, 10000)
//	fmt.Println(batch.Best.Cost, batch.Best.Solution)
//
// # Main Packages
//
// [perm] - Partial permutations with O(1) placement of a remaining element.
//
// [rng] - Seedable, splittable random streams.
//
// [search] - The problem contract, solution/cost pairs and the concurrent
// best-solution tracker.
//
// [ss] - The heuristic contract and the sampling algorithms, the hybrid
// heuristic combinator and the parallel driver.
//
// [sched] - Single-machine weighted tardiness instances and their
// dispatching heuristics.
//
// [cache] - Best known solution per instance: file, Redis and null backends.
//
// [history] - Record of past runs: file and MongoDB backends.
//
// [observability] - Hooks for sampler and cache events, with a Prometheus
// adapter in observability/prom.
//
// [errors] - Structured errors with codes.
//
// [buildinfo] - Version information set at build time.
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/perm
// [rng]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/rng
// [search]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/search
// [ss]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/ss
// [sched]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/sched
// [cache]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/history
// [observability]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/permsample/pkg/buildinfo
package pkg
