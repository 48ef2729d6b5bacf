package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/middleware"
)

// ValidationConfig configures the input validation middleware.
type ValidationConfig struct {
	// MaxInputBytes rejects larger inputs. Zero disables the check.
	MaxInputBytes int
	// CheckRequired reports declared required fields that are absent or null.
	CheckRequired bool
}

// DefaultValidationConfig returns the configuration used by the engine.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxInputBytes: 64 << 10,
		CheckRequired: true,
	}
}

// Validation returns middleware that rejects inputs that are not a JSON
// object with formula.ErrInvalidInput, and reports missing required fields
// as an invalid result without running the formula.
func Validation(cfg ValidationConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (formula.Result, error) {
			raw := bytes.TrimSpace(execCtx.Input)
			if cfg.MaxInputBytes > 0 && len(raw) > cfg.MaxInputBytes {
				return formula.Result{}, fmt.Errorf("%w: input exceeds %d bytes", formula.ErrInvalidInput, cfg.MaxInputBytes)
			}

			var fields map[string]json.RawMessage
			if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
				if err := json.Unmarshal(raw, &fields); err != nil {
					return formula.Result{}, fmt.Errorf("%w: input must be a JSON object", formula.ErrInvalidInput)
				}
			}

			if cfg.CheckRequired {
				var fe input.FieldErrors
				for _, f := range execCtx.Formula.Fields() {
					if !f.Required {
						continue
					}
					v, ok := fields[f.Name]
					if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
						fe.Add(f.Name, "is required")
					}
				}
				if len(fe) > 0 {
					res := formula.Invalid("missing required input", fe...)
					res.Formula = execCtx.Formula.Name()
					return res, nil
				}
			}

			return next(ctx, execCtx)
		}
	}
}
