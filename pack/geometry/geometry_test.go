package geometry

import (
	"context"
	"encoding/json"
	"math"
	"strings"
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

func decode[T any](t *testing.T, res formula.Result) T {
	t.Helper()
	var out T
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v (reason %q, violations %v)", err, res.Reason, res.Violations)
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestTriangle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		area      float64
		sideType  string
		angleType string
	}{
		{"3-4-5", `{"a":3,"b":4,"c":5}`, 6, "scalene", "right"},
		{"equilateral", `{"a":2,"b":2,"c":2}`, math.Sqrt(3), "equilateral", "acute"},
		{"obtuse", `{"a":2,"b":2,"c":3}`, 3 * math.Sqrt(7) / 4, "isosceles", "obtuse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := decode[triangleOutput](t, evaluate(t, "triangle", tt.input))
			if !near(out.Area, tt.area) {
				t.Errorf("Area = %v, want %v", out.Area, tt.area)
			}
			if out.SideType != tt.sideType || out.AngleType != tt.angleType {
				t.Errorf("type = %s/%s, want %s/%s", out.SideType, out.AngleType, tt.sideType, tt.angleType)
			}
			if sum := out.AngleA + out.AngleB + out.AngleC; !near(sum, 180) {
				t.Errorf("angle sum = %v, want 180", sum)
			}
		})
	}
}

func TestTriangle_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		`{"a":1,"b":1,"c":3}`,
		`{"a":1,"b":2,"c":3}`,
		`{"a":0,"b":4,"c":5}`,
		`{"a":3,"b":4}`,
	} {
		res := evaluate(t, "triangle", in)
		if res.Status != formula.StatusInvalid {
			t.Errorf("%s: status = %s, want invalid", in, res.Status)
		}
	}

	res := evaluate(t, "triangle", `{"a":1,"b":1,"c":3}`)
	if !strings.Contains(res.Reason, "do not form a triangle") {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestArea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		area      float64
		perimeter *float64
	}{
		{`{"shape":"square","side":3}`, 9, ptr(12)},
		{`{"shape":"rectangle","length":3,"width":4}`, 12, ptr(14)},
		{`{"shape":"circle","radius":1}`, math.Pi, ptr(2 * math.Pi)},
		{`{"shape":"triangle","base":10,"height":5}`, 25, nil},
		{`{"shape":"trapezoid","base":6,"top":4,"height":2}`, 10, nil},
		{`{"shape":"ellipse","a":2,"b":2}`, 4 * math.Pi, ptr(4 * math.Pi)},
		{`{"shape":"parallelogram","base":5,"height":2}`, 10, nil},
	}
	for _, tt := range tests {
		out := decode[areaOutput](t, evaluate(t, "area", tt.input))
		if !near(out.Area, tt.area) {
			t.Errorf("%s: area = %v, want %v", tt.input, out.Area, tt.area)
		}
		switch {
		case tt.perimeter == nil && out.Perimeter != nil:
			t.Errorf("%s: perimeter = %v, want nil", tt.input, *out.Perimeter)
		case tt.perimeter != nil && (out.Perimeter == nil || !near(*out.Perimeter, *tt.perimeter)):
			t.Errorf("%s: perimeter = %v, want %v", tt.input, out.Perimeter, *tt.perimeter)
		}
	}

	res := evaluate(t, "area", `{"shape":"rectangle","length":3}`)
	if res.Status != formula.StatusInvalid || len(res.Violations) != 1 || res.Violations[0].Field != "width" {
		t.Errorf("missing width = %s %v", res.Status, res.Violations)
	}
	if res := evaluate(t, "area", `{"shape":"hexagon","side":1}`); res.Status != formula.StatusInvalid {
		t.Errorf("unknown shape status = %s, want invalid", res.Status)
	}
}

func TestVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		volume  float64
		surface float64
	}{
		{`{"shape":"cube","side":2}`, 8, 24},
		{`{"shape":"box","length":2,"width":3,"height":4}`, 24, 52},
		{`{"shape":"sphere","radius":1}`, 4.0 / 3.0 * math.Pi, 4 * math.Pi},
		{`{"shape":"cylinder","radius":1,"height":2}`, 2 * math.Pi, 6 * math.Pi},
		{`{"shape":"cone","radius":3,"height":4}`, 12 * math.Pi, 24 * math.Pi},
		{`{"shape":"pyramid","length":6,"width":6,"height":4}`, 48, 96},
	}
	for _, tt := range tests {
		out := decode[volumeOutput](t, evaluate(t, "volume", tt.input))
		if !near(out.Volume, tt.volume) || !near(out.SurfaceArea, tt.surface) {
			t.Errorf("%s: volume/surface = %v/%v, want %v/%v", tt.input, out.Volume, out.SurfaceArea, tt.volume, tt.surface)
		}
	}
}

func TestDistance(t *testing.T) {
	t.Parallel()

	out := decode[distanceOutput](t, evaluate(t, "distance", `{"x1":0,"y1":0,"x2":3,"y2":4}`))
	if out.Distance != 5 || out.Midpoint != (Point{1.5, 2}) {
		t.Errorf("distance = %v midpoint = %v", out.Distance, out.Midpoint)
	}
	if out.Slope == nil || !near(*out.Slope, 4.0/3.0) {
		t.Errorf("Slope = %v, want 4/3", out.Slope)
	}

	res := evaluate(t, "distance", `{"x1":1,"y1":0,"x2":1,"y2":5}`)
	if !strings.Contains(string(res.Outputs), `"slope":null`) {
		t.Errorf("vertical line outputs = %s, want null slope", res.Outputs)
	}
}

func TestPythagorean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		solved string
		want   float64
	}{
		{`{"a":3,"b":4}`, "c", 5},
		{`{"a":3,"c":5}`, "b", 4},
		{`{"b":4,"c":5}`, "a", 3},
	}
	for _, tt := range tests {
		out := decode[pythagoreanOutput](t, evaluate(t, "pythagorean", tt.input))
		got := map[string]float64{"a": out.A, "b": out.B, "c": out.C}[tt.solved]
		if out.Solved != tt.solved || !near(got, tt.want) {
			t.Errorf("%s: solved %s = %v, want %s = %v", tt.input, out.Solved, got, tt.solved, tt.want)
		}
	}

	for _, in := range []string{`{"a":5,"c":3}`, `{"c":5}`, `{}`} {
		if res := evaluate(t, "pythagorean", in); res.Status != formula.StatusInvalid {
			t.Errorf("%s: status = %s, want invalid", in, res.Status)
		}
	}
}
