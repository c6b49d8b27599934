package otel

import "context"

type noopOtel struct{}

// NewScope implements Otel.
func (o *noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, Scope) {
	return ctx, noopScope{}
}

// NewNoop returns an Otel implementation that records nothing. Used when no
// exporter endpoint is configured and throughout the test suites.
func NewNoop() Otel {
	return &noopOtel{}
}

type noopScope struct{}

// End implements Scope.
func (noopScope) End() {}

// TraceError implements Scope.
func (noopScope) TraceError(_ error) {}

// TraceIfError implements Scope.
func (noopScope) TraceIfError(_ error) {}

// AddEvent implements Scope.
func (noopScope) AddEvent(_ string) {}

// SetAttribute implements Scope.
func (noopScope) SetAttribute(_ string, _ any) {}

// SetAttributes implements Scope.
func (noopScope) SetAttributes(_ map[string]any) {}
