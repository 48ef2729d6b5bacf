package formula

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

// Summarizer is implemented by outputs that render a human summary.
type Summarizer interface {
	Summary(f *format.Formatter) []format.Line
}

// InvalidError reports that an input is outside a formula's domain.
type InvalidError struct {
	Reason     string
	Violations []input.FieldError
}

func (e *InvalidError) Error() string {
	return e.Reason
}

// Invalidf returns an InvalidError with a formatted reason.
func Invalidf(format string, args ...any) error {
	return &InvalidError{Reason: fmt.Sprintf(format, args...)}
}

// Typed adapts a typed evaluation function to a Handler. Input is decoded
// into In; an *InvalidError or input.FieldErrors from fn becomes an invalid
// Result. Outputs that are not finite numbers are reported as invalid too.
func Typed[In, Out any](fn func(ctx context.Context, in In) (Out, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (Result, error) {
		var in In
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &in); err != nil {
				return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
		}

		out, err := fn(ctx, in)
		if err != nil {
			var fe input.FieldErrors
			if errors.As(err, &fe) {
				return Invalid("invalid input", fe...), nil
			}
			var inv *InvalidError
			if errors.As(err, &inv) {
				return Invalid(inv.Reason, inv.Violations...), nil
			}
			return Result{}, err
		}

		encoded, err := json.Marshal(out)
		if err != nil {
			var unsupported *json.UnsupportedValueError
			if errors.As(err, &unsupported) {
				return Invalid("result is not a finite number"), nil
			}
			return Result{}, err
		}

		var summary []format.Line
		if s, ok := any(out).(Summarizer); ok {
			summary = s.Summary(format.FromContext(ctx))
		}
		return OK(encoded, summary), nil
	}
}
