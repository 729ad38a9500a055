package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName     = "gridiron/internal/interfaces/httpapi"
	spanNamePrefix = "httpapi.Handler."
)

// startSpan opens handler spans only under an active trace, and only for
// names inside this package's namespace.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateSpan(ctx, name) {
		return ctx, noop.Span{}
	}
	return otel.Tracer(tracerName).Start(ctx, name)
}

func shouldCreateSpan(ctx context.Context, name string) bool {
	if !strings.HasPrefix(name, spanNamePrefix) {
		return false
	}
	return trace.SpanContextFromContext(ctx).IsValid()
}
