// Package ss implements stochastic sampling over constructive heuristics for
// permutation problems.
//
// # Constructive Search
//
// A constructive heuristic builds a permutation one label at a time. At
// each step it scores every remaining candidate given the partial
// permutation built so far, and a sampler decides which candidate to place
// next from those scores. Scores are strictly positive; implementations
// floor them at [MinH] rather than return zero or negative values.
//
// Heuristics that need running state (current time, remaining work) keep it
// in an [IncrementalEvaluation] created fresh for each run and updated once
// per placed label, so scoring never recomputes from scratch. A heuristic
// declares its evaluation type as a type parameter of [Heuristic], which
// makes it impossible to score with an evaluation created by a different
// heuristic.
//
// # Samplers
//
//   - [Greedy]: always places the highest-scoring candidate (first wins ties)
//   - [VBSS]: value-biased stochastic sampling; candidates are chosen with
//     probability proportional to a bias of their score
//   - [HBSS]: heuristic-biased (rank-biased) stochastic sampling; candidates
//     are ranked and chosen with probability proportional to a bias of rank
//   - [AcceptanceBand]: uniform choice among candidates scoring within a
//     fraction beta of the best score
//
// [Hybrid] combines several heuristics for the same problem, choosing one
// per construction run.
//
// # Progress and Cancellation
//
// Every sampler records complete solutions in a shared
// [search.ProgressTracker]. Before each run it checks the tracker: once the
// tracker is stopped, or a solution of the problem's minimum cost has been
// found, no further runs start.
//
// # Concurrency
//
// A sampler instance is not safe for concurrent use. Call Split to obtain
// an independent copy for another goroutine: copies share the heuristic,
// the tracker and immutable tables, and get their own random stream.
// [Parallel] does this for you:
//
//	tracker := search.NewProgressTracker[int]()
//	s, _ := ss.NewVBSS(h, ss.VBSSConfig{Exponent: 2}, ss.Options[int]{Seed: 42, Tracker: tracker})
//	res, err := ss.Parallel[int](ctx, s, 4, 10000)
package ss
