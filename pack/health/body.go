package health

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/classify"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// ACE body fat categories.
var maleFatCategories = classify.Below(6, "Essential fat").
	Below(14, "Athletes").
	Below(18, "Fitness").
	Below(25, "Average").
	Otherwise("Obese")

var femaleFatCategories = classify.Below(14, "Essential fat").
	Below(21, "Athletes").
	Below(25, "Fitness").
	Below(32, "Average").
	Otherwise("Obese")

type bodyFatInput struct {
	Sex    string       `json:"sex"`
	Height input.Number `json:"height"`
	Waist  input.Number `json:"waist"`
	Neck   input.Number `json:"neck"`
	Hip    input.Number `json:"hip"`
	Unit   string       `json:"unit"`
}

type bodyFatOutput struct {
	BodyFat  float64 `json:"body_fat_percent"`
	Category string  `json:"category"`
}

func (o bodyFatOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Body fat", f.Percent(o.BodyFat)),
		format.L("Category", o.Category),
	}
}

func bodyFatFormula() formula.Formula {
	return formula.NewBuilder("body_fat").
		WithTitle("Body Fat").
		WithDescription("Body fat percentage by the US Navy circumference method").
		WithCategory("health").
		WithFields(
			sexField(),
			formula.Number("height", "Body height").AtLeast(0),
			formula.Number("waist", "Waist circumference").AtLeast(0),
			formula.Number("neck", "Neck circumference").AtLeast(0),
			formula.Number("hip", "Hip circumference, used for women").AtLeast(0),
			formula.Enum("unit", "Measurement unit", "cm", "in").WithDefault("cm"),
		).
		Pure().
		WithTags("health", "body").
		WithHandler(formula.Typed(func(_ context.Context, in bodyFatInput) (bodyFatOutput, error) {
			var fe input.FieldErrors
			fe.OneOf("sex", in.Sex, sexMale, sexFemale)
			perUnit := formula.Canonical(&fe, "unit", units.Length, 1, in.Unit, "cm") * 100 / units.CentimetersPerInch
			height := in.Height.Value() * perUnit
			waist := in.Waist.Value() * perUnit
			neck := in.Neck.Value() * perUnit
			hip := in.Hip.Value() * perUnit
			fe.Positive("height", height)
			fe.Positive("waist", waist)
			fe.Positive("neck", neck)
			if in.Sex == sexFemale {
				fe.Positive("hip", hip)
			}
			if err := fe.Err(); err != nil {
				return bodyFatOutput{}, err
			}

			var pct float64
			if in.Sex == sexMale {
				if waist <= neck {
					return bodyFatOutput{}, formula.Invalidf("waist must be larger than neck")
				}
				pct = 86.010*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
			} else {
				if waist+hip <= neck {
					return bodyFatOutput{}, formula.Invalidf("waist plus hip must be larger than neck")
				}
				pct = 163.205*math.Log10(waist+hip-neck) - 97.684*math.Log10(height) - 78.387
			}
			if pct <= 0 {
				return bodyFatOutput{}, formula.Invalidf("measurements give a non-positive body fat")
			}

			pct = format.Round(pct, 1)
			cats := maleFatCategories
			if in.Sex == sexFemale {
				cats = femaleFatCategories
			}
			return bodyFatOutput{BodyFat: pct, Category: cats.Classify(pct)}, nil
		})).
		MustBuild()
}

type idealWeightInput struct {
	Height     input.Number `json:"height"`
	HeightUnit string       `json:"height_unit"`
	Sex        string       `json:"sex"`
	WeightUnit string       `json:"weight_unit"`
}

type idealWeightOutput struct {
	Devine   float64 `json:"devine"`
	Robinson float64 `json:"robinson"`
	Miller   float64 `json:"miller"`
	Hamwi    float64 `json:"hamwi"`
	Unit     string  `json:"unit"`
}

func (o idealWeightOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Devine", f.Unit(o.Devine, o.Unit)),
		format.L("Robinson", f.Unit(o.Robinson, o.Unit)),
		format.L("Miller", f.Unit(o.Miller, o.Unit)),
		format.L("Hamwi", f.Unit(o.Hamwi, o.Unit)),
	}
}

// idealWeightCoefficients holds kg at five feet and kg per inch above it.
var idealWeightCoefficients = map[string]map[string][2]float64{
	sexMale: {
		"devine":   {50, 2.3},
		"robinson": {52, 1.9},
		"miller":   {56.2, 1.41},
		"hamwi":    {48, 2.7},
	},
	sexFemale: {
		"devine":   {45.5, 2.3},
		"robinson": {49, 1.7},
		"miller":   {53.1, 1.36},
		"hamwi":    {45.5, 2.2},
	},
}

func idealWeightFormula() formula.Formula {
	return formula.NewBuilder("ideal_weight").
		WithTitle("Ideal Weight").
		WithDescription("Ideal body weight by the Devine, Robinson, Miller and Hamwi formulas").
		WithCategory("health").
		WithFields(append(heightFields(),
			sexField(),
			formula.Unit("weight_unit", units.Mass, "kg"),
		)...).
		Pure().
		WithTags("health", "weight").
		WithHandler(formula.Typed(func(_ context.Context, in idealWeightInput) (idealWeightOutput, error) {
			var fe input.FieldErrors
			m := formula.Canonical(&fe, "height_unit", units.Length, in.Height.Value(), in.HeightUnit, "cm")
			fe.Positive("height", m)
			fe.OneOf("sex", in.Sex, sexMale, sexFemale)
			if err := fe.Err(); err != nil {
				return idealWeightOutput{}, err
			}

			over := m*100/units.CentimetersPerInch - 60
			coef := idealWeightCoefficients[in.Sex]
			_, unit := formula.FromCanonical(units.Mass, 0, in.WeightUnit, "kg")
			weigh := func(method string) float64 {
				c := coef[method]
				v, _ := formula.FromCanonical(units.Mass, c[0]+c[1]*over, unit, "kg")
				return format.Round(v, 1)
			}
			return idealWeightOutput{
				Devine:   weigh("devine"),
				Robinson: weigh("robinson"),
				Miller:   weigh("miller"),
				Hamwi:    weigh("hamwi"),
				Unit:     unit,
			}, nil
		})).
		MustBuild()
}
