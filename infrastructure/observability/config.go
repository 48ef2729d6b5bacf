// Package observability sets up OpenTelemetry tracing and metrics for calc.
package observability

import (
	"io"
	"os"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted in telemetry.exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type options struct {
	serviceVersion string
	writer         io.Writer
	batchTimeout   time.Duration
	setGlobals     bool
}

func defaultOptions() options {
	return options{
		serviceVersion: "dev",
		writer:         os.Stderr,
		batchTimeout:   5 * time.Second,
		setGlobals:     true,
	}
}

// Option configures a Provider.
type Option func(*options)

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(v string) Option {
	return func(o *options) {
		if v != "" {
			o.serviceVersion = v
		}
	}
}

// WithWriter redirects the stdout exporter.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithBatchTimeout sets how long spans are buffered before export.
func WithBatchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.batchTimeout = d
		}
	}
}

// WithoutGlobals keeps the provider from replacing the otel globals.
func WithoutGlobals() Option {
	return func(o *options) {
		o.setGlobals = false
	}
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}
