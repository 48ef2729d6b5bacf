// Package middleware provides composable middleware around formula evaluation.
package middleware

import (
	"context"
	"encoding/json"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

// ExecutionContext carries one evaluation through the chain.
type ExecutionContext struct {
	// RequestID correlates log lines and spans of one evaluation.
	RequestID string
	// Source names the surface that asked: "cli", "http" or "mcp".
	Source string
	// Formula is the formula being evaluated.
	Formula formula.Formula
	// Input is the raw JSON input.
	Input json.RawMessage
	// Vars holds values middleware pass down the chain.
	Vars map[string]any
}

// Handler evaluates a formula and returns its result.
type Handler func(ctx context.Context, execCtx *ExecutionContext) (formula.Result, error)

// Middleware wraps a Handler with additional behavior.
type Middleware func(next Handler) Handler

// Chain composes multiple middleware into a single middleware.
// Chain(A, B, C) produces: A -> B -> C -> handler
func Chain(middlewares ...Middleware) Middleware {
	return func(final Handler) Handler {
		handler := final
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Noop returns a middleware that passes through.
func Noop() Middleware {
	return func(next Handler) Handler {
		return next
	}
}

// Evaluate is the terminal handler: it runs the formula itself.
func Evaluate(ctx context.Context, execCtx *ExecutionContext) (formula.Result, error) {
	return execCtx.Formula.Evaluate(ctx, execCtx.Input)
}
