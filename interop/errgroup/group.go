// Package errgroup provides an adapter that mimics golang.org/x/sync/errgroup
// semantics using the local future implementation. It enables incremental
// migration without pulling errgroup into the core library.
package errgroup

import (
	"context"
	"sync"

	"github.com/NetPo4ki/go-future/future"
)

// Group is an errgroup-like wrapper over future.Go (fail-fast).
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	futs []*future.Future[struct{}]
}

// WithContext creates a Group bound to ctx. Returned context is canceled when
// any function passed to Go returns a non-nil error.
func WithContext(ctx context.Context) (*Group, context.Context) {
	gctx, cancel := context.WithCancel(ctx)
	g := &Group{ctx: gctx, cancel: cancel}
	return g, gctx
}

// Go starts a function. It should return a non-nil error to signal failure.
func (g *Group) Go(f func() error) {
	if f == nil {
		return
	}
	fut := future.Go(g.ctx, func(context.Context) (struct{}, error) {
		return struct{}{}, f()
	})
	// Fail-fast: trip the group context as soon as any task errors. Errors
	// themselves are read back from the futures in Wait, so settlement
	// ordering cannot hide one.
	fut.OnDone(func(_ struct{}, err error) {
		if err != nil {
			g.cancel()
		}
	})
	g.mu.Lock()
	g.futs = append(g.futs, fut)
	g.mu.Unlock()
}

// Wait blocks until all functions have returned. It returns the first non-nil
// error in start order (fail-fast semantics) or nil on success.
func (g *Group) Wait() error {
	g.mu.Lock()
	futs := g.futs
	g.mu.Unlock()
	var firstErr error
	for _, fut := range futs {
		<-fut.Done()
		if _, err, ok := fut.TryGet(); ok && err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.cancel()
	return firstErr
}
