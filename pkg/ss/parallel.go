package ss

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/search"
)

// Batch is the outcome of a Parallel call.
type Batch[C search.Cost] struct {
	// Best is the best solution found by this batch. It is only meaningful
	// if Found is true.
	Best  search.SolutionCostPair[C]
	Found bool

	// Runs is the number of construction runs completed across workers.
	Runs int64
}

// Parallel performs up to samples construction runs of s spread over
// workers goroutines. Each worker runs its own split of s, so all workers
// share s's tracker.
//
// Workers stop early when the tracker is stopped, when it holds an optimal
// solution, or when ctx is done. In the last case the batch so far is
// returned together with ctx.Err().
func Parallel[C search.Cost, S Splittable[C, S]](ctx context.Context, s S, workers, samples int) (Batch[C], error) {
	if workers < 1 {
		return Batch[C]{}, errors.New(errors.ErrCodeInvalidParameter, "workers must be at least 1, got %d", workers)
	}
	if samples < 0 {
		return Batch[C]{}, errors.New(errors.ErrCodeInvalidParameter, "samples must be non-negative, got %d", samples)
	}
	workers = min(workers, max(samples, 1))

	// Split up front: Split mutates the parent's random stream.
	splits := make([]S, workers)
	for i := range splits {
		splits[i] = s.Split()
	}

	results := make([]Batch[C], workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		quota := samples / workers
		if w < samples%workers {
			quota++
		}
		g.Go(func() error {
			sampler := splits[w]
			res := &results[w]
			defer func() { res.Runs = sampler.TotalRunLength() }()
			for range quota {
				if err := ctx.Err(); err != nil {
					return err
				}
				pair, ok := sampler.Optimize()
				if !ok {
					return nil
				}
				if !res.Found || pair.Cost < res.Best.Cost {
					res.Best, res.Found = pair, true
				}
			}
			return nil
		})
	}
	err := g.Wait()

	var batch Batch[C]
	for _, r := range results {
		batch.Runs += r.Runs
		if r.Found && (!batch.Found || r.Best.Cost < batch.Best.Cost) {
			batch.Best, batch.Found = r.Best, true
		}
	}
	return batch, err
}
