package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
)

// TracerName is the instrumentation scope used for spans.
const TracerName = "github.com/felixgeelhaar/calc-go"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// Tracer overrides the global tracer.
	Tracer trace.Tracer

	// RecordInput records the raw input as a span attribute.
	RecordInput bool

	// MaxAttributeSize limits the size of recorded attributes.
	MaxAttributeSize int
}

// DefaultTracingConfig returns the configuration used by the engine.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		RecordInput:      true,
		MaxAttributeSize: 1024,
	}
}

// Tracing returns middleware that opens a span per evaluation. Invalid
// results are not span errors; only returned errors are.
func Tracing(cfg TracingConfig) middleware.Middleware {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	maxSize := cfg.MaxAttributeSize
	if maxSize <= 0 {
		maxSize = 1024
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			f := execCtx.Formula
			ctx, span := tracer.Start(ctx, "formula."+f.Name(), trace.WithSpanKind(trace.SpanKindInternal))
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("calc.formula", f.Name()),
				attribute.String("calc.category", f.Category()),
				attribute.String("calc.source", execCtx.Source),
				attribute.String("calc.request_id", execCtx.RequestID),
				attribute.Bool("calc.cacheable", f.Annotations().Cacheable),
			}
			if cfg.RecordInput && len(execCtx.Input) > 0 {
				attrs = append(attrs, attribute.String("calc.input", truncate(string(execCtx.Input), maxSize)))
			}
			span.SetAttributes(attrs...)

			result, err := next(ctx, execCtx)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return result, err
			}

			span.SetAttributes(
				attribute.String("calc.status", string(result.Status)),
				attribute.Bool("calc.cached", result.Cached),
			)
			if !result.IsOK() {
				span.AddEvent("invalid input", trace.WithAttributes(attribute.String("calc.reason", result.Reason)))
			}
			span.SetStatus(codes.Ok, "")
			return result, nil
		}
	}
}

// StartSpan starts an internal span under the calc tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// TraceIDs returns the trace and span IDs of the current span, or nil.
func TraceIDs(ctx context.Context) map[string]string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil
	}
	return map[string]string{
		"trace_id": sc.TraceID().String(),
		"span_id":  sc.SpanID().String(),
	}
}
