package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
)

// MetricsConfig configures the metrics middleware.
type MetricsConfig struct {
	// Meter overrides the global meter.
	Meter metric.Meter

	// Prefix is prepended to instrument names.
	Prefix string
}

type instruments struct {
	evaluations metric.Int64Counter
	cacheHits   metric.Int64Counter
	errors      metric.Int64Counter
	duration    metric.Float64Histogram
	inputBytes  metric.Int64Histogram
}

func newInstruments(m metric.Meter, prefix string) (*instruments, error) {
	var in instruments
	var err error
	if in.evaluations, err = m.Int64Counter(prefix+".evaluations",
		metric.WithDescription("Formula evaluations by formula and status"),
		metric.WithUnit("{evaluation}")); err != nil {
		return nil, err
	}
	if in.cacheHits, err = m.Int64Counter(prefix+".cache.hits",
		metric.WithDescription("Evaluations served from the result cache"),
		metric.WithUnit("{hit}")); err != nil {
		return nil, err
	}
	if in.errors, err = m.Int64Counter(prefix+".errors",
		metric.WithDescription("Evaluations that returned an error"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if in.duration, err = m.Float64Histogram(prefix+".duration",
		metric.WithDescription("Evaluation latency"),
		metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if in.inputBytes, err = m.Int64Histogram(prefix+".input.size",
		metric.WithDescription("Raw input size"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	return &in, nil
}

// Metrics returns middleware that records OpenTelemetry metrics per
// evaluation. If the instruments cannot be created it degrades to a pass-through.
func Metrics(cfg MetricsConfig) middleware.Middleware {
	meter := cfg.Meter
	if meter == nil {
		meter = otel.Meter(TracerName)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "calc"
	}

	in, err := newInstruments(meter, prefix)
	if err != nil {
		return middleware.Noop()
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			name := attribute.String("formula", execCtx.Formula.Name())
			in.inputBytes.Record(ctx, int64(len(execCtx.Input)), metric.WithAttributes(name))

			start := time.Now()
			result, err := next(ctx, execCtx)
			elapsed := float64(time.Since(start).Microseconds()) / 1000

			if err != nil {
				in.errors.Add(ctx, 1, metric.WithAttributes(name))
				in.duration.Record(ctx, elapsed, metric.WithAttributes(name, attribute.String("status", "error")))
				return result, err
			}

			status := attribute.String("status", string(result.Status))
			in.evaluations.Add(ctx, 1, metric.WithAttributes(name, status))
			in.duration.Record(ctx, elapsed, metric.WithAttributes(name, status))
			if result.Cached {
				in.cacheHits.Add(ctx, 1, metric.WithAttributes(name))
			}
			return result, nil
		}
	}
}
