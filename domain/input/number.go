// Package input provides coercion of loosely typed form values into numbers
// and the field-level violations formulas report back.
package input

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric form value. It decodes from a JSON number, from a
// string holding a numeric prefix, or from null. Anything unparseable
// decodes to an unset Number whose Value is 0.
type Number struct {
	v   float64
	set bool
}

// Of returns a Number holding v.
func Of(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{v: v, set: true}
}

// Value returns the number, or 0 when unset.
func (n Number) Value() float64 {
	return n.v
}

// Set reports whether a usable number was supplied.
func (n Number) Set() bool {
	return n.set
}

// Or returns the number when set and def otherwise.
func (n Number) Or(def float64) float64 {
	if !n.set {
		return def
	}
	return n.v
}

// Int returns the value truncated toward zero, saturating at the int range.
func (n Number) Int() int {
	switch {
	case n.v >= math.MaxInt:
		return math.MaxInt
	case n.v <= math.MinInt:
		return math.MinInt
	}
	return int(n.v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, ok := ParseLenient(s); ok {
			*n = Of(v)
		}
		return nil
	}
	if string(b) == "true" || string(b) == "false" {
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return nil
	}
	*n = Of(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.v, 'g', -1, 64), nil
}

// ParseLenient parses the longest numeric prefix of s after leading
// whitespace, the way form fields are read: "12.5kg" is 12.5 and "abc"
// is not a number.
func ParseLenient(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
