package future

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Option func(*Options)

type Options struct {
	PanicAsError      bool
	Observer          Observer
	DetachedCallbacks bool
}

func defaultOptions() Options { return Options{PanicAsError: true} }

func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// WithDetachedCallbacks runs OnDone callbacks on their own goroutine instead
// of inline on the resolving goroutine. It changes scheduling only; the
// delivered value and error are the same either way.
func WithDetachedCallbacks(v bool) Option { return func(o *Options) { o.DetachedCallbacks = v } }

type Observer interface {
	FutureCreated()
	FutureResolved(dur time.Duration, err error)
	AwaitStarted()
	AwaitFinished(wait time.Duration, err error)
}

// ResolveFunc settles a promise-style future. The first call wins and
// returns true; later calls are no-ops returning false.
type ResolveFunc[T any] func(v T, err error) bool

// Future is an awaitable container for a value of type T. It is resolved at
// most once; awaiting a resolved future never blocks.
type Future[T any] struct {
	done chan struct{}

	mu        sync.Mutex
	val       T
	err       error
	resolved  bool
	callbacks []func(T, error)

	opts    Options
	obs     Observer
	created time.Time
}

func newFuture[T any](optFns ...Option) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), opts: defaultOptions(), created: time.Now()}
	for _, fn := range optFns {
		fn(&f.opts)
	}
	f.obs = f.opts.Observer
	if f.obs != nil {
		f.obs.FutureCreated()
	}
	return f
}

// New returns a pending future and the function that settles it.
func New[T any](optFns ...Option) (*Future[T], ResolveFunc[T]) {
	f := newFuture[T](optFns...)
	return f, f.resolve
}

// Resolved returns a future that is already settled with v.
func Resolved[T any](v T, optFns ...Option) *Future[T] {
	f := newFuture[T](optFns...)
	f.resolve(v, nil)
	return f
}

// Failed returns a future that is already settled with err.
func Failed[T any](err error, optFns ...Option) *Future[T] {
	f := newFuture[T](optFns...)
	var zero T
	f.resolve(zero, err)
	return f
}

// Go starts fn on its own goroutine and returns a future settled with its
// result. A nil ctx is treated as context.Background. Panics in fn become
// errors unless WithPanicAsError(false) is set, in which case they repanic
// on the computation goroutine.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error), optFns ...Option) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFuture[T](optFns...)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if f.opts.PanicAsError {
					var zero T
					f.resolve(zero, fmt.Errorf("panic: %v", r))
				} else {
					panic(r)
				}
			}
		}()
		v, err := fn(ctx)
		f.resolve(v, err)
	}()
	return f
}

func (f *Future[T]) resolve(v T, err error) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.val = v
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	close(f.done)
	if f.obs != nil {
		f.obs.FutureResolved(time.Since(f.created), err)
	}
	f.runCallbacks(cbs, v, err)
	return true
}

func (f *Future[T]) runCallbacks(cbs []func(T, error), v T, err error) {
	for _, cb := range cbs {
		if f.opts.DetachedCallbacks {
			go cb(v, err)
		} else {
			cb(v, err)
		}
	}
}

// Await blocks until the future is settled or ctx is done. It yields exactly
// the value the future was settled with; a canceled Await does not consume
// or disturb the future, and a later Await still succeeds.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var start time.Time
	if f.obs != nil {
		start = time.Now()
		f.obs.AwaitStarted()
	}
	select {
	case <-f.done:
		if f.obs != nil {
			f.obs.AwaitFinished(time.Since(start), f.err)
		}
		return f.val, f.err
	case <-ctx.Done():
		if f.obs != nil {
			f.obs.AwaitFinished(time.Since(start), ctx.Err())
		}
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet reports the settled value without blocking. ok is false while the
// future is still pending.
func (f *Future[T]) TryGet() (v T, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Done returns a channel closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// OnDone registers fn to run once the future settles. If the future is
// already settled, fn runs immediately (inline, or on a fresh goroutine
// under WithDetachedCallbacks).
func (f *Future[T]) OnDone(fn func(v T, err error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.val, f.err
	f.mu.Unlock()
	f.runCallbacks([]func(T, error){fn}, v, err)
}
