package math

import (
	"context"
	"encoding/json"
	stdmath "math"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

func evaluate(t *testing.T, name, in string) formula.Result {
	t.Helper()
	f, ok := New().GetFormula(name)
	if !ok {
		t.Fatalf("formula %s missing", name)
	}
	res, err := f.Evaluate(context.Background(), json.RawMessage(in))
	if err != nil {
		t.Fatalf("Evaluate(%s) error = %v", name, err)
	}
	return res
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		x, y float64
		want float64
	}{
		{PercentOf, 20, 50, 10},
		{IsWhatPercent, 25, 200, 12.5},
		{IsWhatPercent, 5, 0, 0},
		{IsYPercentOfWhat, 50, 25, 200},
		{IsYPercentOfWhat, 50, 0, 0},
		{PercentChange, 50, 75, 50},
		{PercentChange, -50, -25, 50},
		{PercentChange, 0, 10, 0},
	}
	for _, tt := range tests {
		got, err := Percentage(tt.mode, tt.x, tt.y)
		if err != nil {
			t.Fatalf("Percentage(%s) error = %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("Percentage(%s, %v, %v) = %v, want %v", tt.mode, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPercentageFormula(t *testing.T) {
	t.Parallel()

	res := evaluate(t, "percentage", `{"mode":"is_y_percent_of_what","x":"50","y":"25"}`)
	var out percentageOutput
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.Result != 200 {
		t.Errorf("Result = %v, want 200", out.Result)
	}
	if len(res.Summary) != 1 || res.Summary[0].Label != "50.00 is 25.00% of" {
		t.Errorf("Summary = %v", res.Summary)
	}

	if res := evaluate(t, "percentage", `{"mode":"ratio","x":1,"y":2}`); res.Status != formula.StatusInvalid {
		t.Errorf("unknown mode status = %s, want invalid", res.Status)
	}
}

func TestTip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		tip       float64
		perPerson float64
	}{
		{"default percent", `{"bill":100}`, 15, 115},
		{"split", `{"bill":80,"tip_percent":20,"people":4}`, 16, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out tipOutput
			if err := evaluate(t, "tip", tt.input).Decode(&out); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if out.Tip != tt.tip || out.PerPerson != tt.perPerson {
				t.Errorf("tip/per person = %v/%v, want %v/%v", out.Tip, out.PerPerson, tt.tip, tt.perPerson)
			}
		})
	}

	if res := evaluate(t, "tip", `{"bill":100,"people":0}`); res.Status != formula.StatusInvalid {
		t.Errorf("zero people status = %s, want invalid", res.Status)
	}
}

func TestLogarithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
	}{
		{`{"x":1000}`, 3},
		{`{"x":8,"base_type":"binary"}`, 3},
		{`{"x":1,"base_type":"natural"}`, 0},
		{`{"x":81,"base_type":"custom","base":3}`, 4},
	}
	for _, tt := range tests {
		var out logOutput
		if err := evaluate(t, "logarithm", tt.input).Decode(&out); err != nil {
			t.Fatalf("%s: Decode() error = %v", tt.input, err)
		}
		if stdmath.Abs(out.Result-tt.want) > 1e-12 {
			t.Errorf("%s: result = %v, want %v", tt.input, out.Result, tt.want)
		}
	}

	for _, in := range []string{
		`{"x":0}`,
		`{"x":-2,"base_type":"natural"}`,
		`{"x":10,"base_type":"custom","base":1}`,
		`{"x":10,"base_type":"custom","base":0}`,
	} {
		if res := evaluate(t, "logarithm", in); res.Status != formula.StatusInvalid {
			t.Errorf("%s: status = %s, want invalid", in, res.Status)
		}
	}
}
