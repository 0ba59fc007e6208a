// Package future provides an awaitable value type for Go. A Future holds a
// value that may already be available or still pending; awaiting it yields
// the value or propagates the failure, and cancellation is observed
// cooperatively through the caller's context.
package future
