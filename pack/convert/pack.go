// Package convert exposes the shared unit table as formulas.
package convert

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/pack"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// New creates the convert pack.
func New() *pack.Pack {
	return pack.NewBuilder("convert").
		WithDescription("Unit conversion across length, mass, volume, temperature and more").
		WithVersion("1.0.0").
		AddFormulas(convertUnitFormula(), convertAllFormula()).
		Build()
}

func kindNames() []string {
	kinds := units.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// lookup resolves unit within kind, recording failures on field.
func lookup(fe *input.FieldErrors, kind units.Kind, field, unit string) units.Unit {
	u, err := units.Lookup(kind, unit)
	switch {
	case errors.Is(err, units.ErrUnknownKind):
		fe.OneOf("kind", string(kind), kindNames()...)
	case err != nil:
		fe.Add(field, "unknown %s unit %q", kind, unit)
	}
	return u
}

type convertInput struct {
	Kind  units.Kind   `json:"kind"`
	Value input.Number `json:"value"`
	From  string       `json:"from"`
	To    string       `json:"to"`
}

type convertOutput struct {
	Kind  units.Kind `json:"kind"`
	Value float64    `json:"value"`
	From  string     `json:"from"`
	To    string     `json:"to"`
}

func (o convertOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{format.L(o.From+" → "+o.To, f.Unit(o.Value, o.To))}
}

func convertUnitFormula() formula.Formula {
	return formula.NewBuilder("convert_unit").
		WithTitle("Unit Converter").
		WithDescription("Convert a value from one unit to another of the same kind").
		WithCategory("convert").
		WithFields(
			formula.Enum("kind", "Quantity kind", kindNames()...).Require(),
			formula.Number("value", "Value to convert"),
			formula.Text("from", "Source unit symbol or name").Require(),
			formula.Text("to", "Target unit symbol or name").Require(),
		).
		Pure().
		WithTags("convert", "units").
		WithHandler(formula.Typed(func(_ context.Context, in convertInput) (convertOutput, error) {
			var fe input.FieldErrors
			src := lookup(&fe, in.Kind, "from", in.From)
			if len(fe) > 0 {
				return convertOutput{}, fe
			}
			dst := lookup(&fe, in.Kind, "to", in.To)
			if err := fe.Err(); err != nil {
				return convertOutput{}, err
			}
			v, err := units.Convert(in.Kind, in.Value.Value(), src.Symbol, dst.Symbol)
			if errors.Is(err, units.ErrNotFinite) {
				fe.Add("value", "%s", err.Error())
				return convertOutput{}, fe
			}
			if err != nil {
				return convertOutput{}, err
			}
			return convertOutput{Kind: in.Kind, Value: v, From: src.Symbol, To: dst.Symbol}, nil
		})).
		MustBuild()
}

type convertAllInput struct {
	Kind  units.Kind   `json:"kind"`
	Value input.Number `json:"value"`
	From  string       `json:"from"`
}

type convertAllOutput struct {
	Kind        units.Kind         `json:"kind"`
	From        string             `json:"from"`
	Conversions []units.Conversion `json:"conversions"`
}

func (o convertAllOutput) Summary(f *format.Formatter) []format.Line {
	lines := make([]format.Line, 0, len(o.Conversions))
	for _, c := range o.Conversions {
		lines = append(lines, format.L(c.Name, f.Unit(c.Value, c.Unit)))
	}
	return lines
}

func convertAllFormula() formula.Formula {
	return formula.NewBuilder("convert_all").
		WithTitle("Convert to All Units").
		WithDescription("Convert a value into every unit of its kind").
		WithCategory("convert").
		WithFields(
			formula.Enum("kind", "Quantity kind", kindNames()...).Require(),
			formula.Number("value", "Value to convert"),
			formula.Text("from", "Source unit symbol or name").Require(),
		).
		Pure().
		WithTags("convert", "units").
		WithHandler(formula.Typed(func(_ context.Context, in convertAllInput) (convertAllOutput, error) {
			var fe input.FieldErrors
			src := lookup(&fe, in.Kind, "from", in.From)
			if err := fe.Err(); err != nil {
				return convertAllOutput{}, err
			}
			all, err := units.ConvertAll(in.Kind, in.Value.Value(), src.Symbol)
			if errors.Is(err, units.ErrNotFinite) {
				fe.Add("value", "%s", err.Error())
				return convertAllOutput{}, fe
			}
			if err != nil {
				return convertAllOutput{}, err
			}
			return convertAllOutput{Kind: in.Kind, From: src.Symbol, Conversions: all}, nil
		})).
		MustBuild()
}
