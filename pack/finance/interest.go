package finance

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

type simpleInterestInput struct {
	Principal input.Number `json:"principal"`
	Rate      input.Number `json:"rate"`
	Years     input.Number `json:"years"`
}

type simpleInterestOutput struct {
	Interest float64 `json:"interest"`
	Total    float64 `json:"total"`
}

func (o simpleInterestOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Interest", f.Money(o.Interest)),
		format.L("Total", f.Money(o.Total)),
	}
}

func simpleInterestFormula() formula.Formula {
	return formula.NewBuilder("simple_interest").
		WithTitle("Simple Interest").
		WithDescription("Interest I = P·r·t and the total amount").
		WithCategory("finance").
		WithFields(
			formula.Number("principal", "Principal").AtLeast(0),
			formula.Number("rate", "Annual rate in percent").AtLeast(0),
			formula.Number("years", "Time in years").AtLeast(0),
		).
		Pure().
		WithTags("finance", "interest").
		WithHandler(formula.Typed(func(_ context.Context, in simpleInterestInput) (simpleInterestOutput, error) {
			var fe input.FieldErrors
			fe.Positive("principal", in.Principal.Value())
			fe.Positive("rate", in.Rate.Value())
			fe.Positive("years", in.Years.Value())
			if err := fe.Err(); err != nil {
				return simpleInterestOutput{}, err
			}

			p := in.Principal.Value()
			interest := p * in.Rate.Value() / 100 * in.Years.Value()
			return simpleInterestOutput{
				Interest: format.Round(interest, 2),
				Total:    format.Round(p+interest, 2),
			}, nil
		})).
		MustBuild()
}

var compoundingFrequencies = []string{"1", "2", "4", "12", "365"}

type compoundInput struct {
	Principal           input.Number `json:"principal"`
	Rate                input.Number `json:"rate"`
	Years               input.Number `json:"years"`
	CompoundsPerYear    input.Number `json:"compounds_per_year"`
	MonthlyContribution input.Number `json:"monthly_contribution"`
}

type compoundOutput struct {
	FutureValue        float64 `json:"future_value"`
	TotalContributions float64 `json:"total_contributions"`
	InterestEarned     float64 `json:"interest_earned"`
	EffectiveRate      float64 `json:"effective_annual_rate"`
}

func (o compoundOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Future value", f.Money(o.FutureValue)),
		format.L("Contributions", f.Money(o.TotalContributions)),
		format.L("Interest earned", f.Money(o.InterestEarned)),
		format.L("Effective annual rate", f.Percent(o.EffectiveRate)),
	}
}

func compoundInterestFormula() formula.Formula {
	return formula.NewBuilder("compound_interest").
		WithTitle("Compound Interest").
		WithDescription("Future value with periodic compounding and optional monthly contributions").
		WithCategory("finance").
		WithFields(
			formula.Number("principal", "Initial deposit").AtLeast(0),
			formula.Number("rate", "Annual rate in percent").AtLeast(0),
			formula.Number("years", "Time in years").AtLeast(0),
			formula.Enum("compounds_per_year", "Compounding periods per year", compoundingFrequencies...).WithDefault("12"),
			formula.Number("monthly_contribution", "Deposit added at the end of each month").AtLeast(0),
		).
		Pure().
		WithTags("finance", "interest", "savings").
		WithHandler(formula.Typed(func(_ context.Context, in compoundInput) (compoundOutput, error) {
			var fe input.FieldErrors
			p := in.Principal.Value()
			c := in.MonthlyContribution.Value()
			n := in.CompoundsPerYear.Or(12)
			fe.NonNegative("principal", p)
			fe.NonNegative("monthly_contribution", c)
			fe.NonNegative("rate", in.Rate.Value())
			fe.Positive("years", in.Years.Value())
			fe.Positive("compounds_per_year", n)
			if p == 0 && c == 0 {
				fe.Add("principal", "principal or monthly contribution must be greater than 0")
			}
			if err := fe.Err(); err != nil {
				return compoundOutput{}, err
			}

			r := in.Rate.Value() / 100
			t := in.Years.Value()
			fv := p * math.Pow(1+r/n, n*t)

			months := math.Round(t * 12)
			monthly := math.Pow(1+r/n, n/12) - 1
			if monthly == 0 {
				fv += c * months
			} else {
				fv += c * (math.Pow(1+monthly, months) - 1) / monthly
			}
			contributions := p + c*months
			return compoundOutput{
				FutureValue:        format.Round(fv, 2),
				TotalContributions: format.Round(contributions, 2),
				InterestEarned:     format.Round(fv-contributions, 2),
				EffectiveRate:      format.Round((math.Pow(1+r/n, n)-1)*100, 4),
			}, nil
		})).
		MustBuild()
}

type roiInput struct {
	Initial input.Number `json:"initial"`
	Final   input.Number `json:"final"`
	Years   input.Number `json:"years"`
}

type roiOutput struct {
	Gain       float64  `json:"gain"`
	ROI        float64  `json:"roi_percent"`
	Annualized *float64 `json:"annualized_percent"`
}

func (o roiOutput) Summary(f *format.Formatter) []format.Line {
	lines := []format.Line{
		format.L("Gain", f.Money(o.Gain)),
		format.L("ROI", f.Percent(o.ROI)),
	}
	if o.Annualized != nil {
		lines = append(lines, format.L("Annualized", f.Percent(*o.Annualized)))
	}
	return lines
}

func roiFormula() formula.Formula {
	return formula.NewBuilder("roi").
		WithTitle("Return on Investment").
		WithDescription("Gain, ROI percentage and annualized return").
		WithCategory("finance").
		WithFields(
			formula.Number("initial", "Amount invested").AtLeast(0),
			formula.Number("final", "Final value"),
			formula.Number("years", "Holding period in years, enables the annualized return").AtLeast(0),
		).
		Pure().
		WithTags("finance", "investment").
		WithHandler(formula.Typed(func(_ context.Context, in roiInput) (roiOutput, error) {
			var fe input.FieldErrors
			fe.Positive("initial", in.Initial.Value())
			fe.NonNegative("years", in.Years.Value())
			if err := fe.Err(); err != nil {
				return roiOutput{}, err
			}

			initial, final := in.Initial.Value(), in.Final.Value()
			gain := final - initial
			out := roiOutput{
				Gain: format.Round(gain, 2),
				ROI:  format.Round(gain/initial*100, 4),
			}
			if years := in.Years.Value(); years > 0 && final >= 0 {
				a := format.Round((math.Pow(final/initial, 1/years)-1)*100, 4)
				out.Annualized = &a
			}
			return out, nil
		})).
		MustBuild()
}
