package formula

import (
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// Canonical converts v from unit (def when empty) into the canonical unit
// of kind. An unknown unit is recorded on field and yields 0.
func Canonical(fe *input.FieldErrors, field string, kind units.Kind, v float64, unit, def string) float64 {
	if unit == "" {
		unit = def
	}
	c, err := units.ToCanonical(kind, v, unit)
	if err != nil {
		fe.Add(field, "unknown %s unit %q", kind, unit)
		return 0
	}
	return c
}

// FromCanonical converts a canonical value of kind into unit, falling back
// to def when unit is empty or unknown.
func FromCanonical(kind units.Kind, c float64, unit, def string) (float64, string) {
	if unit != "" {
		if u, err := units.Lookup(kind, unit); err == nil {
			return u.FromCanonical(c), u.Symbol
		}
	}
	u, err := units.Lookup(kind, def)
	if err != nil {
		return c, def
	}
	return u.FromCanonical(c), u.Symbol
}
