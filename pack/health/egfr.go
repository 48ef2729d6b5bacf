package health

import (
	"context"
	"math"
	"strings"

	"github.com/felixgeelhaar/calc-go/domain/classify"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

// Micromoles per liter in one mg/dL of creatinine.
const umolPerMgDL = 88.4

var ckdStages = classify.AtLeast(90, "G1").
	AtLeast(60, "G2").
	AtLeast(45, "G3a").
	AtLeast(30, "G3b").
	AtLeast(15, "G4").
	Otherwise("G5")

var ckdDescriptions = classify.NewTable("CKD stage", map[string]string{
	"G1":  "Normal or high",
	"G2":  "Mildly decreased",
	"G3a": "Mildly to moderately decreased",
	"G3b": "Moderately to severely decreased",
	"G4":  "Severely decreased",
	"G5":  "Kidney failure",
})

type egfrInput struct {
	Creatinine     input.Number `json:"creatinine"`
	CreatinineUnit string       `json:"creatinine_unit"`
	Age            input.Number `json:"age"`
	Sex            string       `json:"sex"`
	Black          bool         `json:"black"`
}

type egfrOutput struct {
	EGFR        float64 `json:"egfr"`
	Stage       string  `json:"stage"`
	Description string  `json:"description"`
}

func (o egfrOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("eGFR", f.Unit(o.EGFR, "mL/min/1.73m²")),
		format.L("Stage", o.Stage+" ("+o.Description+")"),
	}
}

func egfrFormula() formula.Formula {
	return formula.NewBuilder("egfr").
		WithTitle("eGFR").
		WithDescription("Estimated glomerular filtration rate by CKD-EPI 2009 with CKD stage").
		WithCategory("health").
		WithFields(
			formula.Number("creatinine", "Serum creatinine").AtLeast(0),
			formula.Enum("creatinine_unit", "Creatinine unit", "mg/dL", "umol/L").WithDefault("mg/dL"),
			formula.Number("age", "Age in years").AtLeast(0),
			sexField(),
			formula.Bool("black", "Apply the race coefficient"),
		).
		Pure().
		WithTags("health", "clinical").
		WithHandler(formula.Typed(func(_ context.Context, in egfrInput) (egfrOutput, error) {
			var fe input.FieldErrors
			scr := in.Creatinine.Value()
			switch strings.ToLower(strings.ReplaceAll(in.CreatinineUnit, "µ", "u")) {
			case "", "mg/dl":
			case "umol/l":
				scr /= umolPerMgDL
			default:
				fe.OneOf("creatinine_unit", in.CreatinineUnit, "mg/dL", "umol/L")
			}
			fe.Positive("creatinine", scr)
			fe.Positive("age", in.Age.Value())
			fe.OneOf("sex", in.Sex, sexMale, sexFemale)
			if err := fe.Err(); err != nil {
				return egfrOutput{}, err
			}

			v := format.Round(ckdEPI(scr, in.Age.Value(), in.Sex == sexFemale, in.Black), 1)
			stage := ckdStages.Classify(v)
			desc, _ := ckdDescriptions.Get(stage)
			return egfrOutput{EGFR: v, Stage: stage, Description: desc}, nil
		})).
		MustBuild()
}

func ckdEPI(scr, age float64, female, black bool) float64 {
	kappa, alpha := 0.9, -0.411
	if female {
		kappa, alpha = 0.7, -0.329
	}
	ratio := scr / kappa
	v := 141 * math.Pow(math.Min(ratio, 1), alpha) * math.Pow(math.Max(ratio, 1), -1.209) * math.Pow(0.993, age)
	if female {
		v *= 1.018
	}
	if black {
		v *= 1.159
	}
	return v
}
