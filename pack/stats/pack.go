// Package stats provides descriptive statistics, sample size and z-score
// formulas.
package stats

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/felixgeelhaar/calc-go/domain/classify"
	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// New creates the stats pack.
func New() *pack.Pack {
	return pack.NewBuilder("stats").
		WithDescription("Descriptive statistics, survey sample size and z-scores").
		WithVersion("1.0.0").
		AddFormulas(
			descriptiveFormula(),
			sampleSizeFormula(),
			zScoreFormula(),
		).
		Build()
}

type descriptiveInput struct {
	Numbers input.Numbers `json:"numbers"`
}

type descriptiveOutput struct {
	Count              int       `json:"count"`
	Sum                float64   `json:"sum"`
	Mean               float64   `json:"mean"`
	Median             float64   `json:"median"`
	Modes              []float64 `json:"modes"`
	Min                float64   `json:"min"`
	Max                float64   `json:"max"`
	Range              float64   `json:"range"`
	PopulationVariance float64   `json:"population_variance"`
	PopulationStdDev   float64   `json:"population_stddev"`
	SampleVariance     *float64  `json:"sample_variance"`
	SampleStdDev       *float64  `json:"sample_stddev"`
}

func (o descriptiveOutput) Summary(f *format.Formatter) []format.Line {
	lines := []format.Line{
		format.L("Count", f.NumberN(float64(o.Count), 0)),
		format.L("Sum", f.Number(o.Sum)),
		format.L("Mean", f.Number(o.Mean)),
		format.L("Median", f.Number(o.Median)),
		format.L("Min", f.Number(o.Min)),
		format.L("Max", f.Number(o.Max)),
		format.L("Range", f.Number(o.Range)),
		format.L("Population std dev", f.Number(o.PopulationStdDev)),
	}
	if o.SampleStdDev != nil {
		lines = append(lines, format.L("Sample std dev", f.Number(*o.SampleStdDev)))
	}
	if len(o.Modes) > 0 {
		modes := ""
		for i, m := range o.Modes {
			if i > 0 {
				modes += ", "
			}
			modes += f.Number(m)
		}
		lines = append(lines, format.L("Mode", modes))
	}
	return lines
}

func describe(data stats.Float64Data) (descriptiveOutput, error) {
	var out descriptiveOutput
	var err error
	out.Count = data.Len()
	if out.Sum, err = stats.Sum(data); err != nil {
		return out, err
	}
	if out.Mean, err = stats.Mean(data); err != nil {
		return out, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, err
	}
	if out.Modes, err = stats.Mode(data); err != nil {
		return out, err
	}
	if out.Modes == nil {
		out.Modes = []float64{}
	}
	if out.Min, err = stats.Min(data); err != nil {
		return out, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, err
	}
	out.Range = out.Max - out.Min
	if out.PopulationVariance, err = stats.PopulationVariance(data); err != nil {
		return out, err
	}
	out.PopulationStdDev = math.Sqrt(out.PopulationVariance)
	if out.Count > 1 {
		v, err := stats.SampleVariance(data)
		if err != nil {
			return out, err
		}
		sd := math.Sqrt(v)
		out.SampleVariance, out.SampleStdDev = &v, &sd
	}
	return out, nil
}

func descriptiveFormula() formula.Formula {
	return formula.NewBuilder("descriptive").
		WithTitle("Descriptive Statistics").
		WithDescription("Count, sum, mean, median, modes, extremes, variance and standard deviation of a list").
		WithCategory("stats").
		WithFields(
			formula.List("numbers", "Numbers as an array or a comma, semicolon or space separated string").Require(),
		).
		Pure().
		WithTags("stats").
		WithHandler(formula.Typed(func(_ context.Context, in descriptiveInput) (descriptiveOutput, error) {
			if len(in.Numbers) == 0 {
				var fe input.FieldErrors
				fe.Add("numbers", "must contain at least one number")
				return descriptiveOutput{}, fe
			}
			return describe(stats.Float64Data(in.Numbers))
		})).
		MustBuild()
}

// zScores maps a confidence level in percent to its two-sided z value.
var zScores = classify.NewTable("confidence level", map[int]float64{
	80: 1.28,
	85: 1.44,
	90: 1.645,
	95: 1.96,
	99: 2.576,
})

type sampleSizeInput struct {
	Confidence input.Number `json:"confidence"`
	Margin     input.Number `json:"margin"`
	Proportion input.Number `json:"proportion"`
	Population input.Number `json:"population"`
}

type sampleSizeOutput struct {
	Z          float64 `json:"z"`
	Unadjusted int     `json:"unadjusted"`
	Adjusted   *int    `json:"adjusted"`
}

func (o sampleSizeOutput) Summary(f *format.Formatter) []format.Line {
	lines := []format.Line{
		format.L("Z", f.NumberN(o.Z, 3)),
		format.L("Sample size", f.NumberN(float64(o.Unadjusted), 0)),
	}
	if o.Adjusted != nil {
		lines = append(lines, format.L("Adjusted for population", f.NumberN(float64(*o.Adjusted), 0)))
	}
	return lines
}

// SampleSize returns the unadjusted sample size for z, proportion p and
// margin e (both fractions), and the finite population correction for
// population when it is positive. Both sizes are at least 1. ok is false
// when the size does not fit an int.
func SampleSize(z, p, e, population float64) (unadjusted int, adjusted *int, ok bool) {
	n0 := z * z * p * (1 - p) / (e * e)
	if math.IsNaN(n0) || math.Ceil(n0) >= math.MaxInt {
		return 0, nil, false
	}
	unadjusted = max(int(math.Ceil(n0)), 1)
	if population <= 0 {
		return unadjusted, nil, true
	}
	n := max(int(math.Ceil(n0/(1+(n0-1)/population))), 1)
	return unadjusted, &n, true
}

func sampleSizeFormula() formula.Formula {
	levels := make([]string, 0, 5)
	for _, k := range zScores.Keys() {
		levels = append(levels, format.Fixed(float64(k), 0))
	}
	return formula.NewBuilder("sample_size").
		WithTitle("Sample Size").
		WithDescription("Survey sample size for a confidence level and margin of error, with finite population correction").
		WithCategory("stats").
		WithFields(
			formula.Enum("confidence", "Confidence level in percent", levels...).WithDefault("95"),
			formula.Number("margin", "Margin of error in percent").Between(0, 100).WithDefault(5),
			formula.Number("proportion", "Expected proportion in percent").Between(0, 100).WithDefault(50),
			formula.Number("population", "Population size, enables the correction").AtLeast(0),
		).
		Pure().
		WithTags("stats", "survey").
		WithHandler(formula.Typed(func(_ context.Context, in sampleSizeInput) (sampleSizeOutput, error) {
			var fe input.FieldErrors
			conf := in.Confidence.Or(95)
			z, ok := zScores.Get(int(conf))
			if !ok || conf != math.Trunc(conf) {
				fe.OneOf("confidence", format.Fixed(conf, 2), levels...)
			}
			e := in.Margin.Or(5)
			p := in.Proportion.Or(50)
			fe.Positive("margin", e)
			fe.Between("margin", e, 0, 100)
			fe.Between("proportion", p, 0, 100)
			fe.NonNegative("population", in.Population.Value())
			if err := fe.Err(); err != nil {
				return sampleSizeOutput{}, err
			}

			unadjusted, adjusted, ok := SampleSize(z, p/100, e/100, in.Population.Value())
			if !ok {
				fe.Add("margin", "%s%% is too small for a countable sample", format.Fixed(e, 2))
				return sampleSizeOutput{}, fe.Err()
			}
			return sampleSizeOutput{Z: z, Unadjusted: unadjusted, Adjusted: adjusted}, nil
		})).
		MustBuild()
}

type zScoreInput struct {
	Value  input.Number `json:"value"`
	Mean   input.Number `json:"mean"`
	StdDev input.Number `json:"stddev"`
}

type zScoreOutput struct {
	Z          float64 `json:"z"`
	Percentile float64 `json:"percentile"`
}

func (o zScoreOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Z-score", f.NumberN(o.Z, 4)),
		format.L("Percentile", f.Percent(o.Percentile)),
	}
}

func zScoreFormula() formula.Formula {
	return formula.NewBuilder("zscore").
		WithTitle("Z-Score").
		WithDescription("Standard score of a value and its percentile under the normal distribution").
		WithCategory("stats").
		WithFields(
			formula.Number("value", "Observed value"),
			formula.Number("mean", "Population mean"),
			formula.Number("stddev", "Population standard deviation").AtLeast(0),
		).
		Pure().
		WithTags("stats").
		WithHandler(formula.Typed(func(_ context.Context, in zScoreInput) (zScoreOutput, error) {
			var fe input.FieldErrors
			fe.Positive("stddev", in.StdDev.Value())
			if err := fe.Err(); err != nil {
				return zScoreOutput{}, err
			}
			z := (in.Value.Value() - in.Mean.Value()) / in.StdDev.Value()
			return zScoreOutput{
				Z:          z,
				Percentile: 50 * (1 + math.Erf(z/math.Sqrt2)),
			}, nil
		})).
		MustBuild()
}
