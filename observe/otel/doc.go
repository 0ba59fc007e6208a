// Package otel provides an OpenTelemetry observer plugin for the future library.
// It emits span events (create, resolve, await, error) with low overhead.
package otel
