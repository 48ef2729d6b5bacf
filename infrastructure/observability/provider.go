package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

// InstrumentationName names the tracer and meter handed out by a Provider.
const InstrumentationName = "github.com/felixgeelhaar/calc-go"

// ErrUnknownExporter is returned for an exporter other than none, stdout or otlp.
var ErrUnknownExporter = errors.New("unknown trace exporter")

// Provider owns the tracer and meter providers for the process.
type Provider struct {
	cfg           domainconfig.TelemetryConfig
	tracer        trace.Tracer
	meter         metric.Meter
	reader        *sdkmetric.ManualReader
	shutdownFuncs []func(context.Context) error
}

// New builds a provider from the telemetry section of the configuration.
// Metrics are always collected in process; spans are exported only when
// telemetry is enabled with a stdout or otlp exporter.
func New(ctx context.Context, cfg domainconfig.TelemetryConfig, opts ...Option) (*Provider, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "calc"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(o.serviceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	p := &Provider{cfg: cfg}

	p.reader = sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(p.reader),
	)
	p.meter = mp.Meter(InstrumentationName)
	p.shutdownFuncs = append(p.shutdownFuncs, mp.Shutdown)

	exporter, err := newExporter(ctx, cfg, o)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}

	if exporter == nil {
		p.tracer = tracenoop.NewTracerProvider().Tracer(InstrumentationName)
	} else {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(o.batchTimeout)),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler(cfg.SampleRate)),
		)
		p.tracer = tp.Tracer(InstrumentationName)
		p.shutdownFuncs = append(p.shutdownFuncs, tp.Shutdown)
		if o.setGlobals {
			otel.SetTracerProvider(tp)
		}
	}

	if o.setGlobals {
		otel.SetMeterProvider(mp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	return p, nil
}

func newExporter(ctx context.Context, cfg domainconfig.TelemetryConfig, o options) (sdktrace.SpanExporter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, nil

	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		return exp, nil

	case ExporterOTLP:
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		return exp, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}
}

// NewNoop returns a provider whose tracer and meter discard everything.
func NewNoop() *Provider {
	return &Provider{
		tracer: tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		meter:  metricnoop.NewMeterProvider().Meter(InstrumentationName),
	}
}

// Tracer returns the tracer for formula spans.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Meter returns the meter for formula instruments.
func (p *Provider) Meter() metric.Meter {
	return p.meter
}

// Exporting reports whether spans leave the process.
func (p *Provider) Exporting() bool {
	return p.cfg.Enabled && (p.cfg.Exporter == ExporterStdout || p.cfg.Exporter == ExporterOTLP)
}

// Shutdown flushes and stops the providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(p.shutdownFuncs) - 1; i >= 0; i-- {
		if err := p.shutdownFuncs[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.shutdownFuncs = nil
	return errors.Join(errs...)
}
