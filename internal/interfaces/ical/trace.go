package ical

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var icalTracer = otel.Tracer("kalender/internal/interfaces/ical")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// No parent span in context (e.g. a bare CLI invocation without
		// tracing): avoid creating standalone root spans for helpers.
		return ctx, noopSpan
	}
	return icalTracer.Start(ctx, name)
}
