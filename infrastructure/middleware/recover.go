package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
)

// ErrFormulaPanic wraps a panic raised inside a formula.
var ErrFormulaPanic = errors.New("formula panicked")

// Recover returns middleware that turns a panicking formula into an error.
func Recover() middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (result formula.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					logging.Error().
						Add(logging.RequestID(execCtx.RequestID)).
						Add(logging.Formula(execCtx.Formula.Name())).
						Add(logging.Str("panic", fmt.Sprint(r))).
						Add(logging.Str("stack", string(debug.Stack()))).
						Msg("formula panicked")
					result = formula.Result{}
					err = fmt.Errorf("%w: %v", ErrFormulaPanic, r)
				}
			}()
			return next(ctx, execCtx)
		}
	}
}
