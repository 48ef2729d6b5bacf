package units_test

import (
	"errors"
	"math"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/units"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     units.Kind
		value    float64
		from, to string
		want     float64
	}{
		{"inches to cm", units.Length, 1, "in", "cm", 2.54},
		{"pounds to kg", units.Mass, 1, "lb", "kg", 0.453592},
		{"boiling point", units.Temperature, 100, "C", "F", 212},
		{"body temperature", units.Temperature, 98.6, "F", "C", 37},
		{"absolute zero", units.Temperature, 0, "K", "C", -273.15},
		{"horsepower to watts", units.Power, 1, "hp", "W", 745.699872},
		{"metric hp to watts", units.Power, 1, "PS", "W", 735.49875},
		{"lbft to Nm", units.Torque, 100, "lbft", "Nm", 135.58179483},
		{"bits to bytes", units.Data, 16, "b", "B", 2},
		{"alias lookup", units.Length, 3, "feet", "inch", 36},
		{"same unit", units.Speed, 42, "mph", "mph", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := units.Convert(tt.kind, tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !approxEqual(got, tt.want) {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvert_RoundTripEveryPair(t *testing.T) {
	t.Parallel()

	values := []float64{0, 1, -12.5, 37.5, 1234.5678}
	for _, kind := range units.Kinds() {
		list, err := units.Units(kind)
		if err != nil {
			t.Fatal(err)
		}
		for _, a := range list {
			for _, b := range list {
				for _, v := range values {
					there, err := units.Convert(kind, v, a.Symbol, b.Symbol)
					if err != nil {
						t.Fatalf("%s %s->%s: %v", kind, a.Symbol, b.Symbol, err)
					}
					back, err := units.Convert(kind, there, b.Symbol, a.Symbol)
					if err != nil {
						t.Fatalf("%s %s->%s: %v", kind, b.Symbol, a.Symbol, err)
					}
					if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
						t.Errorf("%s %v %s->%s->%s = %v", kind, v, a.Symbol, b.Symbol, a.Symbol, back)
					}
				}
			}
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	if _, err := units.Convert("flavor", 1, "a", "b"); !errors.Is(err, units.ErrUnknownKind) {
		t.Errorf("unknown kind error = %v", err)
	}
	if _, err := units.Convert(units.Length, 1, "parsec", "m"); !errors.Is(err, units.ErrUnknownUnit) {
		t.Errorf("unknown unit error = %v", err)
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := units.Convert(units.Length, v, "m", "cm"); !errors.Is(err, units.ErrNotFinite) {
			t.Errorf("Convert(%v) error = %v", v, err)
		}
		if _, err := units.ConvertAll(units.Length, v, "m"); !errors.Is(err, units.ErrNotFinite) {
			t.Errorf("ConvertAll(%v) error = %v", v, err)
		}
	}
	if _, err := units.Convert(units.Length, 1e308, "km", "mm"); !errors.Is(err, units.ErrNotFinite) {
		t.Errorf("overflowing conversion error = %v", err)
	}
	if _, err := units.ConvertAll(units.Length, 1e308, "km"); !errors.Is(err, units.ErrNotFinite) {
		t.Errorf("overflowing ConvertAll error = %v", err)
	}
}

func TestConvertAll(t *testing.T) {
	t.Parallel()

	all, err := units.ConvertAll(units.Length, 1, "m")
	if err != nil {
		t.Fatal(err)
	}
	list, _ := units.Units(units.Length)
	if len(all) != len(list) {
		t.Fatalf("ConvertAll returned %d entries, want %d", len(all), len(list))
	}
	for _, c := range all {
		if c.Unit == "cm" && !approxEqual(c.Value, 100) {
			t.Errorf("1 m in cm = %v, want 100", c.Value)
		}
		if c.Unit == "m" && c.Value != 1 {
			t.Errorf("source unit value = %v, want 1", c.Value)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	got, err := units.Canonical(units.Mass)
	if err != nil || got != "kg" {
		t.Errorf("Canonical(mass) = %q, %v", got, err)
	}
}

func TestLookup_Normalizes(t *testing.T) {
	t.Parallel()

	u, err := units.Lookup(units.Area, "m²")
	if err != nil {
		t.Fatalf("Lookup(m²) error = %v", err)
	}
	if u.Symbol != "m2" {
		t.Errorf("Lookup(m²) = %q, want m2", u.Symbol)
	}
}
