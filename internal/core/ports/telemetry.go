package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Metrics records engine counters and latencies.
type Metrics interface {
	// QueryStarted counts a new redundant query for the provider.
	QueryStarted(provider string)
	// AttemptSent counts a request sent to one host.
	AttemptSent(provider string)
	// QueryFinished records the terminal status and duration in seconds of a query.
	QueryFinished(provider, status string, seconds float64)
	// IconsResolved counts icons delivered to callers as loaded or missing.
	IconsResolved(loaded, missing int)
	// IconRendered counts a rendered icon.
	IconRendered()
}
