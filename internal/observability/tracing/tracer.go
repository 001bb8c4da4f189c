// Package tracing provides OpenTelemetry integration: a shared tracer and
// HTTP middleware that extracts W3C trace context, opens a server span per
// request, and echoes the trace ID back to the client.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newspulse")

// GetTracer returns the application tracer for creating spans:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "ingest.batch")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
