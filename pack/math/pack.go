// Package math provides percentage, tip and logarithm formulas.
package math

import (
	"context"
	stdmath "math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// New creates the math pack.
func New() *pack.Pack {
	return pack.NewBuilder("math").
		WithDescription("Percentages, tips and logarithms").
		WithVersion("1.0.0").
		AddFormulas(
			percentageFormula(),
			tipFormula(),
			logarithmFormula(),
		).
		Build()
}

// Percentage modes.
const (
	PercentOf        = "percent_of"
	IsWhatPercent    = "is_what_percent"
	IsYPercentOfWhat = "is_y_percent_of_what"
	PercentChange    = "percent_change"
)

type percentageInput struct {
	Mode string       `json:"mode"`
	X    input.Number `json:"x"`
	Y    input.Number `json:"y"`
}

type percentageOutput struct {
	Mode   string  `json:"mode"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Result float64 `json:"result"`
}

func (o percentageOutput) Summary(f *format.Formatter) []format.Line {
	value := f.Number(o.Result)
	if o.Mode == IsWhatPercent || o.Mode == PercentChange {
		value = f.Percent(o.Result)
	}
	return []format.Line{format.L(phrase(f, o.Mode, o.X, o.Y), value)}
}

// Percentage evaluates one percentage mode. Divisions by zero yield 0.
func Percentage(mode string, x, y float64) (float64, error) {
	switch mode {
	case PercentOf:
		return x / 100 * y, nil
	case IsWhatPercent:
		if y == 0 {
			return 0, nil
		}
		return x / y * 100, nil
	case IsYPercentOfWhat:
		if y == 0 {
			return 0, nil
		}
		return x * 100 / y, nil
	case PercentChange:
		if x == 0 {
			return 0, nil
		}
		return (y - x) / stdmath.Abs(x) * 100, nil
	default:
		return 0, formula.Invalidf("unknown mode %q", mode)
	}
}

func percentageFormula() formula.Formula {
	modes := []string{PercentOf, IsWhatPercent, IsYPercentOfWhat, PercentChange}
	return formula.NewBuilder("percentage").
		WithTitle("Percentage").
		WithDescription("X% of Y, X as a percent of Y, X is Y% of what, and percent change from X to Y").
		WithCategory("math").
		WithFields(
			formula.Enum("mode", "Calculation", modes...).Require(),
			formula.Number("x", "First value"),
			formula.Number("y", "Second value"),
		).
		Pure().
		WithTags("math", "percent").
		WithHandler(formula.Typed(func(_ context.Context, in percentageInput) (percentageOutput, error) {
			var fe input.FieldErrors
			fe.OneOf("mode", in.Mode, modes...)
			if err := fe.Err(); err != nil {
				return percentageOutput{}, err
			}
			x, y := in.X.Value(), in.Y.Value()
			r, err := Percentage(in.Mode, x, y)
			if err != nil {
				return percentageOutput{}, err
			}
			return percentageOutput{Mode: in.Mode, X: x, Y: y, Result: r}, nil
		})).
		MustBuild()
}

func phrase(f *format.Formatter, mode string, x, y float64) string {
	switch mode {
	case PercentOf:
		return f.Number(x) + "% of " + f.Number(y)
	case IsWhatPercent:
		return f.Number(x) + " of " + f.Number(y)
	case IsYPercentOfWhat:
		return f.Number(x) + " is " + f.Number(y) + "% of"
	default:
		return "Change from " + f.Number(x) + " to " + f.Number(y)
	}
}

type tipInput struct {
	Bill       input.Number `json:"bill"`
	TipPercent input.Number `json:"tip_percent"`
	People     input.Number `json:"people"`
}

type tipOutput struct {
	Tip          float64 `json:"tip"`
	Total        float64 `json:"total"`
	PerPerson    float64 `json:"per_person"`
	TipPerPerson float64 `json:"tip_per_person"`
}

func (o tipOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Tip", f.Money(o.Tip)),
		format.L("Total", f.Money(o.Total)),
		format.L("Per person", f.Money(o.PerPerson)),
	}
}

func tipFormula() formula.Formula {
	return formula.NewBuilder("tip").
		WithTitle("Tip").
		WithDescription("Tip, total and per-person share of a bill").
		WithCategory("math").
		WithFields(
			formula.Number("bill", "Bill amount").AtLeast(0),
			formula.Number("tip_percent", "Tip in percent").AtLeast(0).WithDefault(15),
			formula.Number("people", "People splitting the bill").AtLeast(1).WithDefault(1),
		).
		Pure().
		WithTags("math", "money").
		WithHandler(formula.Typed(func(_ context.Context, in tipInput) (tipOutput, error) {
			var fe input.FieldErrors
			bill := in.Bill.Value()
			pct := in.TipPercent.Or(15)
			people := in.People.Or(1)
			fe.NonNegative("bill", bill)
			fe.NonNegative("tip_percent", pct)
			fe.Positive("people", people)
			if err := fe.Err(); err != nil {
				return tipOutput{}, err
			}

			tip := bill * pct / 100
			total := bill + tip
			return tipOutput{
				Tip:          format.Round(tip, 2),
				Total:        format.Round(total, 2),
				PerPerson:    format.Round(total/people, 2),
				TipPerPerson: format.Round(tip/people, 2),
			}, nil
		})).
		MustBuild()
}

// Logarithm bases.
const (
	BaseCommon  = "common"
	BaseNatural = "natural"
	BaseBinary  = "binary"
	BaseCustom  = "custom"
)

type logInput struct {
	X        input.Number `json:"x"`
	BaseType string       `json:"base_type"`
	Base     input.Number `json:"base"`
}

type logOutput struct {
	Result float64 `json:"result"`
	Base   float64 `json:"base"`
}

func (o logOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Base", f.NumberN(o.Base, 4)),
		format.L("Logarithm", f.NumberN(o.Result, 6)),
	}
}

func logarithmFormula() formula.Formula {
	bases := []string{BaseCommon, BaseNatural, BaseBinary, BaseCustom}
	return formula.NewBuilder("logarithm").
		WithTitle("Logarithm").
		WithDescription("Common, natural, binary or custom-base logarithm").
		WithCategory("math").
		WithFields(
			formula.Number("x", "Argument"),
			formula.Enum("base_type", "Base", bases...).WithDefault(BaseCommon),
			formula.Number("base", "Custom base"),
		).
		Pure().
		WithTags("math").
		WithHandler(formula.Typed(func(_ context.Context, in logInput) (logOutput, error) {
			var fe input.FieldErrors
			x := in.X.Value()
			fe.Positive("x", x)

			var base float64
			switch in.BaseType {
			case "", BaseCommon:
				base = 10
			case BaseNatural:
				base = stdmath.E
			case BaseBinary:
				base = 2
			case BaseCustom:
				base = in.Base.Value()
				fe.Positive("base", base)
				if base == 1 {
					fe.Add("base", "must not be 1")
				}
			default:
				fe.OneOf("base_type", in.BaseType, bases...)
			}
			if err := fe.Err(); err != nil {
				return logOutput{}, err
			}

			var r float64
			switch base {
			case 10:
				r = stdmath.Log10(x)
			case 2:
				r = stdmath.Log2(x)
			default:
				r = stdmath.Log(x) / stdmath.Log(base)
			}
			return logOutput{Result: r, Base: base}, nil
		})).
		MustBuild()
}
