// Package application provides the application layer: the formula engine
// and the file job service shared by the CLI, HTTP and MCP surfaces.
package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/calc-go/domain/cache"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/domain/units"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
	inframw "github.com/felixgeelhaar/calc-go/infrastructure/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
)

// Engine evaluates registered formulas.
type Engine struct {
	registry  formula.Registry
	executor  *resilience.Executor
	cache     cache.Cache
	handler   middleware.Handler
	formatter atomic.Pointer[format.Formatter]
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Registry == nil {
		return nil, errors.New("registry is required")
	}

	e := &Engine{
		registry: config.Registry,
		executor: config.Executor,
		cache:    config.Cache,
	}

	if e.executor == nil {
		e.executor = resilience.NewExecutor(resilience.DefaultExecutorConfig())
	}
	f := config.Formatter
	if f == nil {
		f = format.Default()
	}
	e.formatter.Store(f)

	mw := config.Middleware
	if mw == nil {
		mw = e.defaultMiddlewareChain(config)
	}
	e.handler = mw.Chain()(middleware.Evaluate)

	return e, nil
}

// defaultMiddlewareChain builds the chain every evaluation passes through
// inside the executor.
func (e *Engine) defaultMiddlewareChain(config EngineConfig) *middleware.Registry {
	tracing := inframw.DefaultTracingConfig()
	tracing.Tracer = config.Tracer

	return middleware.NewRegistry().
		Use("recover", inframw.Recover()).
		Use("logging", inframw.Logging(inframw.LoggingConfig{})).
		Use("tracing", inframw.Tracing(tracing)).
		Use("metrics", inframw.Metrics(inframw.MetricsConfig{Meter: config.Meter, Prefix: "calc"})).
		Use("validation", inframw.Validation(inframw.DefaultValidationConfig())).
		Use("caching", inframw.Caching(inframw.CachingConfig{Cache: e.cache, TTL: config.CacheTTL}))
}

// EvalOption adjusts one evaluation.
type EvalOption func(*middleware.ExecutionContext)

// FromSource records which surface asked for the evaluation.
func FromSource(source string) EvalOption {
	return func(ec *middleware.ExecutionContext) {
		ec.Source = source
	}
}

// WithRequestID correlates the evaluation with an outer request.
func WithRequestID(id string) EvalOption {
	return func(ec *middleware.ExecutionContext) {
		if id != "" {
			ec.RequestID = id
		}
	}
}

// Evaluate runs the named formula on input. Unknown formulas return
// formula.ErrFormulaNotFound and undecodable input formula.ErrInvalidInput;
// input outside the formula's domain yields an invalid Result, not an error.
func (e *Engine) Evaluate(ctx context.Context, name string, input json.RawMessage, opts ...EvalOption) (formula.Result, error) {
	f, ok := e.registry.Get(name)
	if !ok {
		return formula.Result{}, fmt.Errorf("%w: %s", formula.ErrFormulaNotFound, name)
	}

	input = bytes.TrimSpace(input)
	if len(input) == 0 || bytes.Equal(input, []byte("null")) {
		input = json.RawMessage(`{}`)
	}

	execCtx := &middleware.ExecutionContext{
		RequestID: uuid.NewString(),
		Source:    "api",
		Formula:   f,
		Input:     input,
		Vars:      make(map[string]any),
	}
	for _, opt := range opts {
		opt(execCtx)
	}

	ctx = format.WithFormatter(ctx, e.Formatter())
	return e.executor.Execute(ctx, execCtx, e.handler)
}

// Export evaluates the formula and renders the clipboard text: the formula
// title followed by one "Label: Value" line per summary entry.
func (e *Engine) Export(ctx context.Context, name string, input json.RawMessage, opts ...EvalOption) (string, error) {
	res, err := e.Evaluate(ctx, name, input, opts...)
	if err != nil {
		return "", err
	}
	f, _ := e.registry.Get(name)
	return res.Text(f.Title()), nil
}

// Convert converts value of kind between two units.
func (e *Engine) Convert(kind string, value float64, from, to string) (float64, error) {
	return units.Convert(units.Kind(kind), value, from, to)
}

// ConvertAll converts value of kind from one unit into every unit of the kind.
func (e *Engine) ConvertAll(kind string, value float64, from string) ([]units.Conversion, error) {
	return units.ConvertAll(units.Kind(kind), value, from)
}

// Info describes a registered formula.
type Info struct {
	Name        string              `json:"name"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Fields      []formula.Field     `json:"fields"`
	Annotations formula.Annotations `json:"annotations"`
	Schema      json.RawMessage     `json:"schema"`
}

func describe(f formula.Formula) Info {
	fields := f.Fields()
	return Info{
		Name:        f.Name(),
		Title:       f.Title(),
		Description: f.Description(),
		Category:    f.Category(),
		Fields:      fields,
		Annotations: f.Annotations(),
		Schema:      formula.Schema(fields),
	}
}

// List returns every registered formula sorted by name. A non-empty
// category narrows the list.
func (e *Engine) List(category string) []Info {
	all := e.registry.List()
	out := make([]Info, 0, len(all))
	for _, f := range all {
		if category != "" && f.Category() != category {
			continue
		}
		out = append(out, describe(f))
	}
	return out
}

// Categories returns the distinct formula categories, sorted.
func (e *Engine) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range e.registry.List() {
		if c := f.Category(); c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Describe returns one formula's description.
func (e *Engine) Describe(name string) (Info, error) {
	f, ok := e.registry.Get(name)
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", formula.ErrFormulaNotFound, name)
	}
	return describe(f), nil
}

// Formatter returns the formatter used for summaries.
func (e *Engine) Formatter() *format.Formatter {
	return e.formatter.Load()
}

// SetFormatter swaps the formatter. Cached results carry summaries in the
// old format, so the cache is cleared.
func (e *Engine) SetFormatter(ctx context.Context, f *format.Formatter) {
	if f == nil {
		return
	}
	e.formatter.Store(f)
	if e.cache != nil {
		if err := e.cache.Clear(ctx); err != nil {
			logging.Warn().
				Add(logging.Component("engine")).
				Add(logging.ErrorField(err)).
				Msg("failed to clear cache after formatter change")
		}
	}
}

// Cache returns the result cache, or nil when caching is off.
func (e *Engine) Cache() cache.Cache {
	return e.cache
}
