// Package electrical provides Ohm's law and horsepower formulas.
package electrical

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/pack"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

// New creates the electrical pack.
func New() *pack.Pack {
	return pack.NewBuilder("electrical").
		WithDescription("Ohm's law and engine power").
		WithVersion("1.0.0").
		AddFormulas(
			ohmsLawFormula(),
			horsepowerFormula(),
		).
		Build()
}

// Circuit holds voltage, current, resistance and power.
type Circuit struct {
	Voltage    float64 `json:"voltage"`
	Current    float64 `json:"current"`
	Resistance float64 `json:"resistance"`
	Power      float64 `json:"power"`
}

// ReasonTooFewKnown is the reason reported when fewer than two values are known.
const ReasonTooFewKnown = "need at least two known values"

// Solve completes c from the first two positive values in voltage, current,
// resistance, power order. It reports false when fewer than two are known.
func Solve(c Circuit) (Circuit, []string, bool) {
	v, i, r, p := c.Voltage > 0, c.Current > 0, c.Resistance > 0, c.Power > 0
	out := c
	switch {
	case v && i:
		out.Resistance = c.Voltage / c.Current
		out.Power = c.Voltage * c.Current
		return out, []string{"voltage", "current"}, true
	case v && r:
		out.Current = c.Voltage / c.Resistance
		out.Power = c.Voltage * c.Voltage / c.Resistance
		return out, []string{"voltage", "resistance"}, true
	case v && p:
		out.Current = c.Power / c.Voltage
		out.Resistance = c.Voltage * c.Voltage / c.Power
		return out, []string{"voltage", "power"}, true
	case i && r:
		out.Voltage = c.Current * c.Resistance
		out.Power = c.Current * c.Current * c.Resistance
		return out, []string{"current", "resistance"}, true
	case i && p:
		out.Voltage = c.Power / c.Current
		out.Resistance = c.Power / (c.Current * c.Current)
		return out, []string{"current", "power"}, true
	case r && p:
		out.Voltage = math.Sqrt(c.Power * c.Resistance)
		out.Current = math.Sqrt(c.Power / c.Resistance)
		return out, []string{"resistance", "power"}, true
	default:
		return c, nil, false
	}
}

type ohmsInput struct {
	Voltage    input.Number `json:"voltage"`
	Current    input.Number `json:"current"`
	Resistance input.Number `json:"resistance"`
	Power      input.Number `json:"power"`
}

type ohmsOutput struct {
	Circuit
	SolvedFrom []string `json:"solved_from"`
}

func (o ohmsOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Voltage", f.Unit(o.Voltage, "V")),
		format.L("Current", f.Unit(o.Current, "A")),
		format.L("Resistance", f.Unit(o.Resistance, "Ω")),
		format.L("Power", f.Unit(o.Power, "W")),
	}
}

func ohmsLawFormula() formula.Formula {
	return formula.NewBuilder("ohms_law").
		WithTitle("Ohm's Law").
		WithDescription("Voltage, current, resistance and power from any two of them").
		WithCategory("electrical").
		WithFields(
			formula.Number("voltage", "Volts").AtLeast(0),
			formula.Number("current", "Amperes").AtLeast(0),
			formula.Number("resistance", "Ohms").AtLeast(0),
			formula.Number("power", "Watts").AtLeast(0),
		).
		Pure().
		WithTags("electrical").
		WithHandler(formula.Typed(func(_ context.Context, in ohmsInput) (ohmsOutput, error) {
			c, from, ok := Solve(Circuit{
				Voltage:    in.Voltage.Value(),
				Current:    in.Current.Value(),
				Resistance: in.Resistance.Value(),
				Power:      in.Power.Value(),
			})
			if !ok {
				return ohmsOutput{}, formula.Invalidf(ReasonTooFewKnown)
			}
			return ohmsOutput{Circuit: c, SolvedFrom: from}, nil
		})).
		MustBuild()
}

// Torque in lb-ft times rpm over this constant gives horsepower.
const hpTorqueConstant = 5252

type horsepowerInput struct {
	Mode       string       `json:"mode"`
	Torque     input.Number `json:"torque"`
	TorqueUnit string       `json:"torque_unit"`
	RPM        input.Number `json:"rpm"`
	Power      input.Number `json:"power"`
	PowerUnit  string       `json:"power_unit"`
}

type horsepowerOutput struct {
	Horsepower       float64 `json:"hp"`
	Kilowatts        float64 `json:"kw"`
	Watts            float64 `json:"w"`
	MetricHorsepower float64 `json:"ps"`
}

func (o horsepowerOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Horsepower", f.Unit(o.Horsepower, "hp")),
		format.L("Kilowatts", f.Unit(o.Kilowatts, "kW")),
		format.L("Watts", f.Unit(o.Watts, "W")),
		format.L("Metric horsepower", f.Unit(o.MetricHorsepower, "PS")),
	}
}

func fromWatts(w float64) horsepowerOutput {
	return horsepowerOutput{
		Horsepower:       w / units.WattsPerHorsepower,
		Kilowatts:        w / 1000,
		Watts:            w,
		MetricHorsepower: w / units.WattsPerMetricHP,
	}
}

func horsepowerFormula() formula.Formula {
	return formula.NewBuilder("horsepower").
		WithTitle("Horsepower").
		WithDescription("Horsepower from torque and engine speed, or conversion between power units").
		WithCategory("electrical").
		WithFields(
			formula.Enum("mode", "Calculation", "torque", "convert").Require(),
			formula.Number("torque", "Torque").AtLeast(0),
			formula.Unit("torque_unit", units.Torque, "lbft"),
			formula.Number("rpm", "Engine speed in rpm").AtLeast(0),
			formula.Number("power", "Power to convert").AtLeast(0),
			formula.Unit("power_unit", units.Power, "hp"),
		).
		Pure().
		WithTags("electrical", "engine").
		WithHandler(formula.Typed(func(_ context.Context, in horsepowerInput) (horsepowerOutput, error) {
			var fe input.FieldErrors
			switch in.Mode {
			case "torque":
				nm := formula.Canonical(&fe, "torque_unit", units.Torque, in.Torque.Value(), in.TorqueUnit, "lbft")
				fe.Positive("torque", nm)
				fe.Positive("rpm", in.RPM.Value())
				if err := fe.Err(); err != nil {
					return horsepowerOutput{}, err
				}
				hp := nm / units.NewtonMetersPerLbf * in.RPM.Value() / hpTorqueConstant
				out := fromWatts(hp * units.WattsPerHorsepower)
				out.Horsepower = hp
				return out, nil
			case "convert":
				w := formula.Canonical(&fe, "power_unit", units.Power, in.Power.Value(), in.PowerUnit, "hp")
				fe.Positive("power", w)
				if err := fe.Err(); err != nil {
					return horsepowerOutput{}, err
				}
				return fromWatts(w), nil
			default:
				fe.OneOf("mode", in.Mode, "torque", "convert")
				return horsepowerOutput{}, fe
			}
		})).
		MustBuild()
}
