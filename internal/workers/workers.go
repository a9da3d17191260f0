package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers runs its workers concurrently. The first worker to return, with
// or without an error, cancels the context of all the others.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run blocks until every worker has returned and reports the first error.
func (w *Workers) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		worker := worker
		g.Go(func() error {
			defer cancel()
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}
