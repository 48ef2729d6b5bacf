// Package middleware provides pre-built middleware around formula evaluation.
package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// LogInput logs the raw input (may be large).
	LogInput bool
	// MaxInputLen truncates logged input.
	MaxInputLen int
}

// Logging returns middleware that logs each evaluation at debug level and
// failures at error level.
func Logging(cfg LoggingConfig) middleware.Middleware {
	if cfg.MaxInputLen <= 0 {
		cfg.MaxInputLen = 500
	}
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			start := time.Now()
			name := execCtx.Formula.Name()

			entry := logging.Debug().
				Add(logging.RequestID(execCtx.RequestID)).
				Add(logging.Source(execCtx.Source)).
				Add(logging.Formula(name))
			if cfg.LogInput && len(execCtx.Input) > 0 {
				entry = entry.Add(logging.Str("input", truncate(string(execCtx.Input), cfg.MaxInputLen)))
			}
			entry.Msg("evaluating formula")

			result, err := next(ctx, execCtx)
			elapsed := time.Since(start)

			if err != nil {
				logging.Error().
					Add(logging.RequestID(execCtx.RequestID)).
					Add(logging.Formula(name)).
					Add(logging.ErrorField(err)).
					Add(logging.Duration(elapsed)).
					Msg("formula evaluation failed")
				return result, err
			}

			logging.Info().
				Add(logging.RequestID(execCtx.RequestID)).
				Add(logging.Source(execCtx.Source)).
				Add(logging.Formula(name)).
				Add(logging.Status(string(result.Status))).
				Add(logging.Cached(result.Cached)).
				Add(logging.Duration(elapsed)).
				Msg("formula evaluated")
			return result, nil
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "...[truncated]"
}
