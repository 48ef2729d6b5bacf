package electrical

import (
	"context"
	"encoding/json"
	"math"
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

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestSolve_AllPairs(t *testing.T) {
	t.Parallel()

	want := Circuit{Voltage: 12, Current: 2, Resistance: 6, Power: 24}
	tests := []struct {
		name string
		in   Circuit
	}{
		{"voltage current", Circuit{Voltage: 12, Current: 2}},
		{"voltage resistance", Circuit{Voltage: 12, Resistance: 6}},
		{"voltage power", Circuit{Voltage: 12, Power: 24}},
		{"current resistance", Circuit{Current: 2, Resistance: 6}},
		{"current power", Circuit{Current: 2, Power: 24}},
		{"resistance power", Circuit{Resistance: 6, Power: 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, from, ok := Solve(tt.in)
			if !ok || len(from) != 2 {
				t.Fatalf("Solve() ok = %v from = %v", ok, from)
			}
			if !near(got.Voltage, want.Voltage) || !near(got.Current, want.Current) ||
				!near(got.Resistance, want.Resistance) || !near(got.Power, want.Power) {
				t.Errorf("Solve() = %+v, want %+v", got, want)
			}
			if !near(got.Voltage, got.Current*got.Resistance) {
				t.Errorf("V = %v, I·R = %v", got.Voltage, got.Current*got.Resistance)
			}
			if !near(got.Power, got.Voltage*got.Current) {
				t.Errorf("P = %v, V·I = %v", got.Power, got.Voltage*got.Current)
			}
		})
	}
}

func TestSolve_FirstTwoWin(t *testing.T) {
	t.Parallel()

	got, from, ok := Solve(Circuit{Voltage: 10, Current: 2, Resistance: 100})
	if !ok || from[0] != "voltage" || from[1] != "current" {
		t.Fatalf("from = %v", from)
	}
	if got.Resistance != 5 {
		t.Errorf("Resistance = %v, want 5", got.Resistance)
	}
}

func TestOhmsLaw_TooFewKnown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{}`, `{"voltage":5}`, `{"voltage":5,"current":0}`, `{"voltage":5,"current":-1}`} {
		res := evaluate(t, "ohms_law", in)
		if res.Status != formula.StatusInvalid || res.Reason != ReasonTooFewKnown {
			t.Errorf("%s: %s %q, want invalid %q", in, res.Status, res.Reason, ReasonTooFewKnown)
		}
	}
}

func TestOhmsLaw_Formula(t *testing.T) {
	t.Parallel()

	res := evaluate(t, "ohms_law", `{"voltage":"230","current":"10"}`)
	var out ohmsOutput
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.Resistance != 23 || out.Power != 2300 {
		t.Errorf("R/P = %v/%v, want 23/2300", out.Resistance, out.Power)
	}
}

func TestHorsepower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		hp    float64
		kw    float64
	}{
		{"torque", `{"mode":"torque","torque":5252,"rpm":1}`, 1, 0.745699872},
		{"torque nm", `{"mode":"torque","torque":1.3558179483,"torque_unit":"Nm","rpm":5252}`, 1, 0.745699872},
		{"convert kw", `{"mode":"convert","power":100,"power_unit":"kW"}`, 134.10220896, 100},
		{"convert default hp", `{"mode":"convert","power":1}`, 1, 0.745699872},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out horsepowerOutput
			if err := evaluate(t, "horsepower", tt.input).Decode(&out); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if math.Abs(out.Horsepower-tt.hp) > 1e-6 || math.Abs(out.Kilowatts-tt.kw) > 1e-6 {
				t.Errorf("hp/kW = %v/%v, want %v/%v", out.Horsepower, out.Kilowatts, tt.hp, tt.kw)
			}
		})
	}

	for _, in := range []string{`{"mode":"torque","torque":100}`, `{"mode":"boost"}`, `{"mode":"convert","power":1,"power_unit":"furlong"}`} {
		if res := evaluate(t, "horsepower", in); res.Status != formula.StatusInvalid {
			t.Errorf("%s: status = %s, want invalid", in, res.Status)
		}
	}
}
