// Package geometry provides area, volume, triangle and coordinate formulas.
package geometry

import (
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// New creates the geometry pack.
func New() *pack.Pack {
	return pack.NewBuilder("geometry").
		WithDescription("Areas, volumes, triangles, distances and right triangles").
		WithVersion("1.0.0").
		AddFormulas(
			areaFormula(),
			volumeFormula(),
			triangleFormula(),
			distanceFormula(),
			pythagoreanFormula(),
		).
		Build()
}
