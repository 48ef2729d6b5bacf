// Package units holds the canonical conversion table shared by every
// formula. Each unit maps to its kind's canonical unit by
// canonical = value*Factor + Offset.
package units

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind is a physical quantity such as length or mass.
type Kind string

// Quantity kinds.
const (
	Length      Kind = "length"
	Mass        Kind = "mass"
	Volume      Kind = "volume"
	Area        Kind = "area"
	Speed       Kind = "speed"
	Temperature Kind = "temperature"
	Pressure    Kind = "pressure"
	Energy      Kind = "energy"
	Power       Kind = "power"
	Torque      Kind = "torque"
	Data        Kind = "data"
	Time        Kind = "time"
	Angle       Kind = "angle"
)

// Unit is one row of the table.
type Unit struct {
	Symbol  string   `json:"symbol"`
	Name    string   `json:"name"`
	Factor  float64  `json:"factor"`
	Offset  float64  `json:"offset,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// ToCanonical converts v from u to the canonical unit of its kind.
func (u Unit) ToCanonical(v float64) float64 {
	return v*u.Factor + u.Offset
}

// FromCanonical converts a canonical value c into u.
func (u Unit) FromCanonical(c float64) float64 {
	return (c - u.Offset) / u.Factor
}

// Conversion factors shared by formulas that work in canonical units.
const (
	CentimetersPerInch = 2.54
	KilogramsPerPound  = 0.453592
	WattsPerHorsepower = 745.699872
	WattsPerMetricHP   = 735.49875
	NewtonMetersPerLbf = 1.3558179483
)

// Canonical returns the canonical unit symbol of kind.
func Canonical(kind Kind) (string, error) {
	t, ok := table[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t.canonical, nil
}

// Kinds returns every kind in the table, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Units returns the units of kind in table order.
func Units(kind Kind) ([]Unit, error) {
	t, ok := table[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out, nil
}

// Lookup resolves a unit symbol, name or alias within kind. Symbols match
// exactly first ("b" is a bit, "B" a byte), then case-insensitively.
// Input is NFKC-normalized, so "m²" resolves to "m2".
func Lookup(kind Kind, unit string) (Unit, error) {
	t, ok := table[kind]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	unit = strings.TrimSpace(norm.NFKC.String(unit))
	for _, u := range t.units {
		if u.Symbol == unit {
			return u, nil
		}
	}
	for _, u := range t.units {
		if strings.EqualFold(u.Symbol, unit) || strings.EqualFold(u.Name, unit) {
			return u, nil
		}
		for _, a := range u.Aliases {
			if strings.EqualFold(a, unit) {
				return u, nil
			}
		}
	}
	return Unit{}, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, unit, kind)
}

// ToCanonical converts v in unit to the canonical unit of kind.
func ToCanonical(kind Kind, v float64, unit string) (float64, error) {
	u, err := Lookup(kind, unit)
	if err != nil {
		return 0, err
	}
	return u.ToCanonical(v), nil
}

// FromCanonical converts canonical value c of kind into unit.
func FromCanonical(kind Kind, c float64, unit string) (float64, error) {
	u, err := Lookup(kind, unit)
	if err != nil {
		return 0, err
	}
	return u.FromCanonical(c), nil
}

// Convert converts v of kind from one unit to another.
func Convert(kind Kind, v float64, from, to string) (float64, error) {
	src, err := Lookup(kind, from)
	if err != nil {
		return 0, err
	}
	dst, err := Lookup(kind, to)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	if src.Symbol == dst.Symbol {
		return v, nil
	}
	out := dst.FromCanonical(src.ToCanonical(v))
	if !finite(out) {
		return 0, fmt.Errorf("%w: %g %s is out of range in %s", ErrNotFinite, v, src.Symbol, dst.Symbol)
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Conversion is one entry of ConvertAll.
type Conversion struct {
	Unit  string  `json:"unit"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ConvertAll converts v of kind from one unit into every unit of the kind.
func ConvertAll(kind Kind, v float64, from string) ([]Conversion, error) {
	src, err := Lookup(kind, from)
	if err != nil {
		return nil, err
	}
	if !finite(v) {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	c := src.ToCanonical(v)
	t := table[kind]
	out := make([]Conversion, 0, len(t.units))
	for _, u := range t.units {
		val := u.FromCanonical(c)
		if u.Symbol == src.Symbol {
			val = v
		}
		if !finite(val) {
			return nil, fmt.Errorf("%w: %g %s is out of range in %s", ErrNotFinite, v, src.Symbol, u.Symbol)
		}
		out = append(out, Conversion{Unit: u.Symbol, Name: u.Name, Value: val})
	}
	return out, nil
}
