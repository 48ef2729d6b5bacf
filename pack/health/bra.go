package health

import (
	"context"
	"math"
	"strconv"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/units"
)

var cupSizes = []string{"AA", "A", "B", "C", "D", "DD", "DDD", "G", "H", "I", "J"}

type braInput struct {
	Underbust input.Number `json:"underbust"`
	Bust      input.Number `json:"bust"`
	Unit      string       `json:"unit"`
}

// BraSize is a band and cup pair.
type BraSize struct {
	Band int    `json:"band"`
	Cup  string `json:"cup"`
}

func (b BraSize) String() string {
	return strconv.Itoa(b.Band) + b.Cup
}

type braOutput struct {
	Size    BraSize   `json:"size"`
	Label   string    `json:"label"`
	Sisters []BraSize `json:"sister_sizes"`
}

func (o braOutput) Summary(_ *format.Formatter) []format.Line {
	lines := []format.Line{format.L("Size", o.Label)}
	for _, s := range o.Sisters {
		lines = append(lines, format.L("Sister size", s.String()))
	}
	return lines
}

func braSizeFormula() formula.Formula {
	return formula.NewBuilder("bra_size").
		WithTitle("Bra Size").
		WithDescription("US band and cup size from underbust and bust measurements, with sister sizes").
		WithCategory("health").
		WithFields(
			formula.Number("underbust", "Underbust measurement").AtLeast(0),
			formula.Number("bust", "Bust measurement").AtLeast(0),
			formula.Enum("unit", "Measurement unit", "in", "cm").WithDefault("in"),
		).
		Pure().
		WithTags("health", "sizing").
		WithHandler(formula.Typed(func(_ context.Context, in braInput) (braOutput, error) {
			var fe input.FieldErrors
			perUnit := formula.Canonical(&fe, "unit", units.Length, 1, in.Unit, "in") * 100 / units.CentimetersPerInch
			underIn := in.Underbust.Value() * perUnit
			bustIn := in.Bust.Value() * perUnit
			fe.Positive("underbust", underIn)
			fe.Positive("bust", bustIn)
			if err := fe.Err(); err != nil {
				return braOutput{}, err
			}

			band := int(math.Round(underIn/2)) * 2
			cup := int(math.Round(bustIn - float64(band)))
			if cup < 0 || cup >= len(cupSizes) {
				return braOutput{}, formula.Invalidf("bust is %s in over the band, outside the %s to %s cup range",
					format.Fixed(bustIn-float64(band), 1), cupSizes[0], cupSizes[len(cupSizes)-1])
			}

			size := BraSize{Band: band, Cup: cupSizes[cup]}
			var sisters []BraSize
			if cup+1 < len(cupSizes) && band > 2 {
				sisters = append(sisters, BraSize{Band: band - 2, Cup: cupSizes[cup+1]})
			}
			if cup > 0 {
				sisters = append(sisters, BraSize{Band: band + 2, Cup: cupSizes[cup-1]})
			}
			return braOutput{Size: size, Label: size.String(), Sisters: sisters}, nil
		})).
		MustBuild()
}
