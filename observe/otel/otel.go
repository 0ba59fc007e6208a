package otel

import "time"

// Nop is a no-op implementation of the future.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) FutureCreated()                      {}
func (*Nop) FutureResolved(time.Duration, error) {}
func (*Nop) AwaitStarted()                       {}
func (*Nop) AwaitFinished(time.Duration, error)  {}
