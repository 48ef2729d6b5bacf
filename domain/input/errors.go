package input

import (
	"fmt"
	"strings"
)

// FieldError is a validation failure attached to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects field violations. A nil or empty FieldErrors means
// the input is within the formula's domain.
type FieldErrors []FieldError

// Error implements error.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no field errors"
	}
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation for field.
func (fe *FieldErrors) Add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns fe as an error, or nil when empty.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Positive records a violation unless v > 0.
func (fe *FieldErrors) Positive(field string, v float64) {
	if !(v > 0) {
		fe.Add(field, "must be greater than 0")
	}
}

// NonNegative records a violation when v < 0.
func (fe *FieldErrors) NonNegative(field string, v float64) {
	if v < 0 {
		fe.Add(field, "must not be negative")
	}
}

// Between records a violation unless min <= v <= max.
func (fe *FieldErrors) Between(field string, v, min, max float64) {
	if v < min || v > max {
		fe.Add(field, "must be between %g and %g", min, max)
	}
}

// AtLeast records a violation when v < min.
func (fe *FieldErrors) AtLeast(field string, v, min float64) {
	if v < min {
		fe.Add(field, "must be at least %g", min)
	}
}

// OneOf records a violation unless v is one of allowed.
func (fe *FieldErrors) OneOf(field, v string, allowed ...string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	fe.Add(field, "must be one of %s", strings.Join(allowed, ", "))
}
