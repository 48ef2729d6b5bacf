package health

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

type smartPointsInput struct {
	Calories     input.Number `json:"calories"`
	SaturatedFat input.Number `json:"saturated_fat"`
	Sugar        input.Number `json:"sugar"`
	Protein      input.Number `json:"protein"`
}

type smartPointsOutput struct {
	Points int     `json:"points"`
	Raw    float64 `json:"raw"`
}

func (o smartPointsOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{format.L("SmartPoints", f.NumberN(float64(o.Points), 0))}
}

func smartPointsFormula() formula.Formula {
	return formula.NewBuilder("smartpoints").
		WithTitle("SmartPoints").
		WithDescription("Food points from calories, saturated fat, sugar and protein").
		WithCategory("health").
		WithFields(
			formula.Number("calories", "Energy in kcal").AtLeast(0),
			formula.Number("saturated_fat", "Saturated fat in grams").AtLeast(0),
			formula.Number("sugar", "Sugar in grams").AtLeast(0),
			formula.Number("protein", "Protein in grams").AtLeast(0),
		).
		Pure().
		WithTags("health", "nutrition").
		WithHandler(formula.Typed(func(_ context.Context, in smartPointsInput) (smartPointsOutput, error) {
			var fe input.FieldErrors
			fe.NonNegative("calories", in.Calories.Value())
			fe.NonNegative("saturated_fat", in.SaturatedFat.Value())
			fe.NonNegative("sugar", in.Sugar.Value())
			fe.NonNegative("protein", in.Protein.Value())
			if err := fe.Err(); err != nil {
				return smartPointsOutput{}, err
			}

			raw := in.Calories.Value()*0.0305 +
				in.SaturatedFat.Value()*0.275 +
				in.Sugar.Value()*0.12 -
				in.Protein.Value()*0.098
			raw = math.Max(raw, 0)
			return smartPointsOutput{Points: int(math.Round(raw)), Raw: format.Round(raw, 4)}, nil
		})).
		MustBuild()
}
