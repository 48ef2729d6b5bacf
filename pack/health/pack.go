// Package health provides body-measurement and clinical estimate formulas.
package health

import (
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/pack"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// New creates the health pack.
func New() *pack.Pack {
	return pack.NewBuilder("health").
		WithDescription("Body mass, energy, kidney function and body composition calculators").
		WithVersion("1.0.0").
		AddFormulas(
			bmiFormula(),
			bmrFormula(),
			egfrFormula(),
			smartPointsFormula(),
			braSizeFormula(),
			bodyFatFormula(),
			idealWeightFormula(),
		).
		Build()
}

const (
	sexMale   = "male"
	sexFemale = "female"
)

func sexField() formula.Field {
	return formula.Enum("sex", "Biological sex", sexMale, sexFemale).Require()
}

func weightFields() []formula.Field {
	return []formula.Field{
		formula.Number("weight", "Body weight").AtLeast(0),
		formula.Unit("weight_unit", units.Mass, "kg"),
	}
}

func heightFields() []formula.Field {
	return []formula.Field{
		formula.Number("height", "Body height").AtLeast(0),
		formula.Unit("height_unit", units.Length, "cm"),
	}
}
