package future_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NetPo4ki/go-future/future"
	"github.com/NetPo4ki/go-future/token"
)

// Doubler is a capability interface: one asynchronous operation taking a
// value and a cancellation token and returning a future.
type Doubler interface {
	Double(tok token.Token, n int) *future.Future[int]
}

type doubler struct{}

func (doubler) Double(tok token.Token, n int) *future.Future[int] {
	return future.Go(tok.Context(), func(_ context.Context) (int, error) {
		if err := tok.Check(); err != nil {
			return 0, err
		}
		if err := token.Sleep(tok, time.Millisecond); err != nil {
			return 0, err
		}
		return n * 2, nil
	})
}

func TestInterfaceDispatchDoubles(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	var d Doubler = doubler{}
	got, err := d.Double(token.None(), 21).Await(context.Background())
	r.NoError(err)
	r.Equal(42, got)
}

func TestInterfaceDispatchPreTriggeredToken(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	src := token.NewSource()
	src.Cancel(nil)
	var d Doubler = doubler{}
	_, err := d.Double(src.Token(), 21).Await(context.Background())
	r.Error(err)
	r.True(token.IsCancelled(err), "expected a cancellation-kind error, got %v", err)
}

// slowDoubler stretches the delay so a trigger can land mid-flight.
type slowDoubler struct{}

func (slowDoubler) Double(tok token.Token, n int) *future.Future[int] {
	return future.Go(tok.Context(), func(_ context.Context) (int, error) {
		if err := token.Sleep(tok, 500*time.Millisecond); err != nil {
			return 0, err
		}
		return n * 2, nil
	})
}

func TestInterfaceDispatchTriggeredMidFlight(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	src := token.NewSource()
	var d Doubler = slowDoubler{}
	f := d.Double(src.Token(), 21)
	go func() {
		time.Sleep(5 * time.Millisecond)
		src.Cancel(nil)
	}()
	_, err := f.Await(context.Background())
	r.True(token.IsCancelled(err), "expected cancellation mid-flight, got %v", err)
}
