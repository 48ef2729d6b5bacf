package health

import (
	"context"

	"github.com/felixgeelhaar/calc-go/domain/classify"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// BMI category boundaries. A value on a boundary belongs to the upper band.
var bmiCategories = classify.Below(18.5, "Underweight").
	Below(25, "Normal weight").
	Below(30, "Overweight").
	Otherwise("Obese")

const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

type bmiInput struct {
	Weight     input.Number `json:"weight"`
	WeightUnit string       `json:"weight_unit"`
	Height     input.Number `json:"height"`
	HeightUnit string       `json:"height_unit"`
	Feet       input.Number `json:"feet"`
	Inches     input.Number `json:"inches"`
}

type bmiOutput struct {
	BMI            float64 `json:"bmi"`
	Category       string  `json:"category"`
	HealthyMin     float64 `json:"healthy_weight_min"`
	HealthyMax     float64 `json:"healthy_weight_max"`
	HealthyUnit    string  `json:"healthy_weight_unit"`
	HeightMeters   float64 `json:"height_m"`
	WeightKilogram float64 `json:"weight_kg"`
}

func (o bmiOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("BMI", f.NumberN(o.BMI, 2)),
		format.L("Category", o.Category),
		format.L("Healthy weight", f.NumberN(o.HealthyMin, 1)+" - "+f.Unit(o.HealthyMax, o.HealthyUnit)),
	}
}

func bmiFormula() formula.Formula {
	fields := append(weightFields(), heightFields()...)
	fields = append(fields,
		formula.Number("feet", "Height feet, used instead of height when set"),
		formula.Number("inches", "Height inches, used with feet"),
	)

	return formula.NewBuilder("bmi").
		WithTitle("BMI").
		WithDescription("Body mass index with category and healthy weight range").
		WithCategory("health").
		WithFields(fields...).
		Pure().
		WithTags("health", "weight").
		WithHandler(formula.Typed(func(_ context.Context, in bmiInput) (bmiOutput, error) {
			var fe input.FieldErrors
			kg := formula.Canonical(&fe, "weight_unit", units.Mass, in.Weight.Value(), in.WeightUnit, "kg")

			var m float64
			if in.Feet.Set() || in.Inches.Set() {
				totalInches := in.Feet.Value()*12 + in.Inches.Value()
				m = totalInches * units.CentimetersPerInch / 100
				fe.Positive("feet", m)
			} else {
				m = formula.Canonical(&fe, "height_unit", units.Length, in.Height.Value(), in.HeightUnit, "cm")
				fe.Positive("height", m)
			}
			fe.Positive("weight", kg)
			if err := fe.Err(); err != nil {
				return bmiOutput{}, err
			}

			bmi := format.Round(kg/(m*m), 2)
			lo, unit := formula.FromCanonical(units.Mass, healthyBMIMin*m*m, in.WeightUnit, "kg")
			hi, _ := formula.FromCanonical(units.Mass, healthyBMIMax*m*m, in.WeightUnit, "kg")
			return bmiOutput{
				BMI:            bmi,
				Category:       bmiCategories.Classify(bmi),
				HealthyMin:     format.Round(lo, 1),
				HealthyMax:     format.Round(hi, 1),
				HealthyUnit:    unit,
				HeightMeters:   m,
				WeightKilogram: kg,
			}, nil
		})).
		MustBuild()
}
