// Package format renders formula outputs: rounding to fixed decimals,
// locale number and currency formatting, and the plain-text summary a
// user copies to the clipboard.
package format

import (
	"math"
	"strconv"
)

// Round rounds v half away from zero to places decimals. Non-finite values
// are returned unchanged.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// Fixed formats v with exactly places decimals.
func Fixed(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	return strconv.FormatFloat(Round(v, places), 'f', places, 64)
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
