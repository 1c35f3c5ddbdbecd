// Package concurrency runs bounded fan-out work.
package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes tasks with at most limit running at once. The first error
// cancels the context handed to the remaining tasks and is returned.
// A non-positive limit means no bound.
func Run(ctx context.Context, limit int, tasks ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}
