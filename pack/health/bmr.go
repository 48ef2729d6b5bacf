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

var activityFactors = classify.NewTable("activity level", map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
})

var goalAdjustments = classify.NewTable("goal", map[string]float64{
	"lose":     -500,
	"maintain": 0,
	"gain":     500,
})

type bmrInput struct {
	Weight     input.Number `json:"weight"`
	WeightUnit string       `json:"weight_unit"`
	Height     input.Number `json:"height"`
	HeightUnit string       `json:"height_unit"`
	Age        input.Number `json:"age"`
	Sex        string       `json:"sex"`
	Activity   string       `json:"activity"`
	Goal       string       `json:"goal"`
}

type bmrOutput struct {
	BMR          float64 `json:"bmr"`
	TDEE         float64 `json:"tdee"`
	GoalCalories float64 `json:"goal_calories"`
	Activity     string  `json:"activity"`
	Goal         string  `json:"goal"`
}

func (o bmrOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("BMR", f.Unit(math.Round(o.BMR), "kcal/day")),
		format.L("TDEE ("+o.Activity+")", f.Unit(math.Round(o.TDEE), "kcal/day")),
		format.L("Target ("+o.Goal+")", f.Unit(math.Round(o.GoalCalories), "kcal/day")),
	}
}

func bmrFormula() formula.Formula {
	fields := append(weightFields(), heightFields()...)
	fields = append(fields,
		formula.Number("age", "Age in years").AtLeast(0),
		sexField(),
		formula.Enum("activity", "Activity level", activityFactors.Keys()...).WithDefault("sedentary"),
		formula.Enum("goal", "Weight goal", goalAdjustments.Keys()...).WithDefault("maintain"),
	)

	return formula.NewBuilder("bmr").
		WithTitle("BMR & Calories").
		WithDescription("Basal metabolic rate (Mifflin-St Jeor), daily energy expenditure and goal calories").
		WithCategory("health").
		WithFields(fields...).
		Pure().
		WithTags("health", "nutrition").
		WithHandler(formula.Typed(func(_ context.Context, in bmrInput) (bmrOutput, error) {
			var fe input.FieldErrors
			kg := formula.Canonical(&fe, "weight_unit", units.Mass, in.Weight.Value(), in.WeightUnit, "kg")
			m := formula.Canonical(&fe, "height_unit", units.Length, in.Height.Value(), in.HeightUnit, "cm")
			fe.Positive("weight", kg)
			fe.Positive("height", m)
			fe.Positive("age", in.Age.Value())
			fe.OneOf("sex", in.Sex, sexMale, sexFemale)

			if in.Activity == "" {
				in.Activity = "sedentary"
			}
			if in.Goal == "" {
				in.Goal = "maintain"
			}
			factor, ok := activityFactors.Get(in.Activity)
			if !ok {
				fe.OneOf("activity", in.Activity, activityFactors.Keys()...)
			}
			adjust, ok := goalAdjustments.Get(in.Goal)
			if !ok {
				fe.OneOf("goal", in.Goal, goalAdjustments.Keys()...)
			}
			if err := fe.Err(); err != nil {
				return bmrOutput{}, err
			}

			bmr := 10*kg + 6.25*(m*100) - 5*in.Age.Value()
			if in.Sex == sexMale {
				bmr += 5
			} else {
				bmr -= 161
			}
			tdee := bmr * factor
			return bmrOutput{
				BMR:          bmr,
				TDEE:         tdee,
				GoalCalories: tdee + adjust,
				Activity:     in.Activity,
				Goal:         in.Goal,
			}, nil
		})).
		MustBuild()
}
