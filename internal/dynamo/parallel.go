package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one independent simulation. It must allocate its own system,
// integrator and state.
type Job func(ctx context.Context) (*Result, error)

type Ensemble struct {
	workers int
}

// NewEnsemble returns an ensemble running at most workers jobs at a time.
// workers <= 0 uses GOMAXPROCS.
func NewEnsemble(workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{workers: workers}
}

// Run executes every job and returns results in job order. The first failure
// cancels the context handed to the remaining jobs.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, job := range jobs {
		g.Go(func() error {
			res, err := job(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
