package future

import "context"

// Map returns a future settled with fn applied to f's value. An error from f
// or from fn rejects the returned future.
func Map[T, U any](ctx context.Context, f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(ctx, func(ctx context.Context) (U, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Then chains fn onto f, awaiting the future fn returns.
func Then[T, U any](ctx context.Context, f *Future[T], fn func(ctx context.Context, v T) *Future[U]) *Future[U] {
	return Go(ctx, func(ctx context.Context) (U, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, v).Await(ctx)
	})
}

// All awaits every future in order and settles with their values. The first
// error rejects the result; remaining futures are left to settle on their
// own.
func All[T any](ctx context.Context, fs ...*Future[T]) *Future[[]T] {
	return Go(ctx, func(ctx context.Context) ([]T, error) {
		out := make([]T, 0, len(fs))
		for _, f := range fs {
			v, err := f.Await(ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Race settles with whichever future settles first, value or error. With no
// futures the result stays pending forever. Each non-winning future keeps one
// awaiting goroutine alive until that future settles or ctx is done.
func Race[T any](ctx context.Context, fs ...*Future[T]) *Future[T] {
	out, resolve := New[T]()
	for _, f := range fs {
		f := f
		go func() {
			v, err := f.Await(ctx)
			resolve(v, err)
		}()
	}
	return out
}
