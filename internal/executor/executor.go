// Package executor fans every task out concurrently, awaits all of them
// under a shared scrape deadline, and collects their results. It is
// infallible from its caller's point of view: a task failure, panic, or
// cancellation becomes an empty TaskResult, never an executor error.
package executor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
)

// ErrDeadlineElapsed is returned by Process when the scrape deadline has
// already expired before any task could be started — the one executor
// failure mode that is not absorbed into an empty TaskResult, since no
// task ran at all.
var ErrDeadlineElapsed = errors.New("executor: scrape deadline already elapsed")

// Process runs every task in tasks concurrently against a context derived
// from parent with the given deadline, and returns one TaskResult per task
// in the same order. maxConcurrency bounds the number of tasks running at
// once; 0 means unbounded (one goroutine per task).
func Process(parent context.Context, tasks []model.Task, deadline time.Duration, maxConcurrency int64) ([]model.TaskResult, error) {
	ctx, cancel := context.WithTimeout(parent, deadline)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, ErrDeadlineElapsed
	}

	results := make([]model.TaskResult, len(tasks))

	var sem *semaphore.Weighted
	if maxConcurrency > 0 {
		sem = semaphore.NewWeighted(maxConcurrency)
	}

	group, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		i, t := i, t
		group.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					results[i] = model.TaskResult{Kind: t.Kind, Instance: t.Instance}
					return nil
				}
				defer sem.Release(1)
			}
			results[i] = runTask(ctx, t)
			return nil
		})
	}
	// Task errors never happen (adapters never propagate them); Wait only
	// ever reports a scheduling-layer failure, which we treat the same way
	// as a pre-expired deadline since no meaningful partial data exists.
	if err := group.Wait(); err != nil {
		logging.Error().Err(err).Msg("executor scheduling failure")
		return nil, err
	}

	return results, nil
}

// runTask executes one task's Run closure, converting a panic into an
// empty result and an ERROR log rather than letting it crash the scrape.
func runTask(ctx context.Context, t model.Task) (result model.TaskResult) {
	result = model.TaskResult{Kind: t.Kind, Instance: t.Instance}
	defer func() {
		if r := recover(); r != nil {
			logging.Error().
				Interface("panic", r).
				Str("kind", string(t.Kind)).
				Str("instance", t.Instance).
				Msg("task panicked, substituting empty result")
			result = model.TaskResult{Kind: t.Kind, Instance: t.Instance}
		}
	}()
	return t.Run(ctx)
}
