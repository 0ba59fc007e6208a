package future

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

var errNilComputation = errors.New("future: nil computation")

// Runner bounds how many future-producing computations run at once. The
// zero value is unusable; construct with NewRunner.
type Runner struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

func NewRunner(max int64) *Runner {
	if max <= 0 {
		max = 1
	}
	return &Runner{sem: semaphore.NewWeighted(max)}
}

// RunWith starts fn under r's concurrency bound and returns its future. If
// admission is canceled before a slot frees up, the future settles with the
// context error. A nil fn settles immediately with an error.
func RunWith[T any](ctx context.Context, r *Runner, fn func(ctx context.Context) (T, error), optFns ...Option) *Future[T] {
	if fn == nil {
		return Failed[T](errNilComputation, optFns...)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.wg.Add(1)
	return Go(ctx, func(ctx context.Context) (T, error) {
		defer r.wg.Done()
		if err := r.sem.Acquire(ctx, 1); err != nil {
			var zero T
			return zero, err
		}
		defer r.sem.Release(1)
		return fn(ctx)
	}, optFns...)
}

// Wait blocks until every computation started through the runner has
// settled its future.
func (r *Runner) Wait() { r.wg.Wait() }
