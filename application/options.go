package application

import (
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
)

// EngineConfig contains configuration for the engine.
type EngineConfig struct {
	Registry  formula.Registry
	Executor  *resilience.Executor
	Cache     cache.Cache
	CacheTTL  time.Duration
	Formatter *format.Formatter
	Tracer    trace.Tracer
	Meter     metric.Meter

	// Middleware replaces the default chain.
	Middleware *middleware.Registry
}

// Option configures the engine.
type Option func(*EngineConfig)

// New creates an engine from options.
func New(opts ...Option) (*Engine, error) {
	var cfg EngineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewEngine(cfg)
}

// WithRegistry sets the formula registry.
func WithRegistry(r formula.Registry) Option {
	return func(c *EngineConfig) {
		c.Registry = r
	}
}

// WithExecutor sets the resilient executor.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *EngineConfig) {
		c.Executor = e
	}
}

// WithCache enables the result cache.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *EngineConfig) {
		c.Cache = cc
		c.CacheTTL = ttl
	}
}

// WithFormatter sets the summary formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(c *EngineConfig) {
		c.Formatter = f
	}
}

// WithTelemetry sets the tracer and meter used by the default chain.
func WithTelemetry(t trace.Tracer, m metric.Meter) Option {
	return func(c *EngineConfig) {
		c.Tracer = t
		c.Meter = m
	}
}

// WithMiddleware sets a custom middleware registry.
// If not set, the engine uses the default chain:
// recover, logging, tracing, metrics, validation, caching.
func WithMiddleware(r *middleware.Registry) Option {
	return func(c *EngineConfig) {
		c.Middleware = r
	}
}
