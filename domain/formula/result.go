package formula

import (
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

// Status tags a Result.
type Status string

// Result statuses.
const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
)

// Result is the outcome of one evaluation.
type Result struct {
	Formula    string             `json:"formula"`
	Status     Status             `json:"status"`
	Outputs    json.RawMessage    `json:"outputs,omitempty"`
	Summary    []format.Line      `json:"summary,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	Violations []input.FieldError `json:"violations,omitempty"`
	Duration   time.Duration      `json:"duration"`
	Cached     bool               `json:"cached,omitempty"`
}

// OK creates a successful result.
func OK(outputs json.RawMessage, summary []format.Line) Result {
	return Result{Status: StatusOK, Outputs: outputs, Summary: summary}
}

// Invalid creates a result for input outside the formula's domain.
func Invalid(reason string, violations ...input.FieldError) Result {
	return Result{Status: StatusInvalid, Reason: reason, Violations: violations}
}

// IsOK reports whether the result carries outputs.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// Decode unmarshals the outputs into v.
func (r Result) Decode(v any) error {
	if !r.IsOK() {
		return ErrNotOK
	}
	return json.Unmarshal(r.Outputs, v)
}

// Text renders the clipboard form of the result under title.
func (r Result) Text(title string) string {
	if r.IsOK() {
		return format.Text(title, r.Summary)
	}
	lines := []format.Line{format.L("Invalid", r.Reason)}
	for _, v := range r.Violations {
		lines = append(lines, format.L(v.Field, v.Message))
	}
	return format.Text(title, lines)
}
