// Package resilience guards formula evaluation and cache backends using fortify.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
)

// ErrOverloaded is returned when the bulkhead rejects an evaluation.
var ErrOverloaded = errors.New("too many concurrent evaluations")

// Executor bounds concurrent evaluations and applies a per-evaluation timeout.
type Executor struct {
	bulkhead bulkhead.Bulkhead[formula.Result]
	timeout  time.Duration
}

// ExecutorConfig configures the executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent evaluations.
	MaxConcurrent int

	// Timeout bounds a single evaluation. Zero disables it.
	Timeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent: 64,
		Timeout:       2 * time.Second,
	}
}

// NewExecutor creates a new executor.
func NewExecutor(config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultExecutorConfig().MaxConcurrent
	}
	return &Executor{
		bulkhead: bulkhead.New[formula.Result](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		timeout: config.Timeout,
	}
}

// Execute runs next under the bulkhead and timeout and stamps the duration.
// Composition order: Bulkhead → Timeout → handler.
func (e *Executor) Execute(ctx context.Context, execCtx *middleware.ExecutionContext, next middleware.Handler) (formula.Result, error) {
	start := time.Now()
	entered := false

	result, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (formula.Result, error) {
		entered = true
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}

		res, err := next(ctx, execCtx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return formula.Result{}, fmt.Errorf("%w after %s", formula.ErrEvaluationTimeout, e.timeout)
		}
		return res, err
	})

	if err != nil {
		if !entered && ctx.Err() == nil {
			return formula.Result{}, fmt.Errorf("%w: %v", ErrOverloaded, err)
		}
		return formula.Result{}, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Middleware exposes the executor as an evaluation middleware.
func (e *Executor) Middleware() middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			return e.Execute(ctx, execCtx, next)
		}
	}
}
