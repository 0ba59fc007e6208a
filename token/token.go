// Package token provides cooperative cancellation for asynchronous
// operations. A Source is triggered once; its Token is a pollable flag that
// operations consult explicitly — a triggered token never preempts in-flight
// work. Cancellation failures satisfy errors.Is(err, context.Canceled),
// keeping them distinguishable from ordinary errors.
package token

import (
	"context"
	"errors"
	"time"
)

// Token is a cooperative cancellation flag. The zero value (also returned by
// None) never cancels.
type Token struct {
	ctx context.Context
}

// None returns a token that is never triggered, for callers that request no
// cancellation.
func None() Token { return Token{} }

// FromContext adapts an existing context into a Token.
func FromContext(ctx context.Context) Token { return Token{ctx: ctx} }

// Source produces a Token and triggers it. Cancel is idempotent; the first
// cause wins.
type Source struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

func NewSource() *Source {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Source{ctx: ctx, cancel: cancel}
}

// Token returns the source's token. All tokens from one source observe the
// same trigger.
func (s *Source) Token() Token { return Token{ctx: s.ctx} }

// Cancel triggers the source. A nil cause is recorded as context.Canceled.
func (s *Source) Cancel(cause error) { s.cancel(cause) }

// Done returns a channel closed when the token is triggered. For the
// never-cancels token it returns nil, which blocks forever in a select.
func (t Token) Done() <-chan struct{} {
	if t.ctx == nil {
		return nil
	}
	return t.ctx.Done()
}

// Cancelled reports whether the token has been triggered.
func (t Token) Cancelled() bool {
	if t.ctx == nil {
		return false
	}
	return t.ctx.Err() != nil
}

// Check returns nil while the token is untriggered and a cancellation error
// afterwards. Operations call it before starting work governed by the token.
func (t Token) Check() error {
	if t.ctx == nil {
		return nil
	}
	return t.ctx.Err()
}

// Cause returns the error passed to Cancel, or nil while untriggered.
func (t Token) Cause() error {
	if t.ctx == nil {
		return nil
	}
	return context.Cause(t.ctx)
}

// Context exposes the token to APIs that take a context.Context.
func (t Token) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Sleep waits d, returning early with a cancellation error if tok is already
// triggered or becomes triggered during the wait.
func Sleep(tok Token, d time.Duration) error {
	if err := tok.Check(); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-tok.Done():
		return tok.Check()
	}
}

// IsCancelled reports whether err is a cancellation failure rather than an
// ordinary error.
func IsCancelled(err error) bool { return errors.Is(err, context.Canceled) }
