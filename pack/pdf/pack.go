package pdf

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/job"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// DefaultMaxFileSize is the per-file limit applied when none is configured.
const DefaultMaxFileSize = 50 << 20

// PackConfig configures the PDF pack.
type PackConfig struct {
	// MaxFileSize is the per-file limit in bytes.
	MaxFileSize int64
}

// New creates the pdf pack.
func New(cfg PackConfig) *pack.Pack {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	return pack.NewBuilder("pdf").
		WithDescription("Checks for simulated PDF merge, split and convert jobs").
		WithVersion("1.0.0").
		AddFormulas(validateFormula(cfg)).
		Build()
}

type validateInput struct {
	Operation job.Operation `json:"operation"`
	Files     []job.FileRef `json:"files"`
	Target    string        `json:"target"`
}

type validateOutput struct {
	Operation  job.Operation `json:"operation"`
	FileCount  int           `json:"file_count"`
	TotalBytes int64         `json:"total_bytes"`
	TotalHuman string        `json:"total_human"`
	Limit      string        `json:"limit"`
}

func (o validateOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Operation", string(o.Operation)),
		format.L("Files", f.NumberN(float64(o.FileCount), 0)),
		format.L("Total size", o.TotalHuman),
		format.L("Per-file limit", o.Limit),
	}
}

func validateFormula(cfg PackConfig) formula.Formula {
	return formula.NewBuilder("pdf_validate").
		WithTitle("PDF Job Check").
		WithDescription("Check files against the type, size and count rules of a PDF job").
		WithCategory("pdf").
		WithFields(
			formula.Enum("operation", "Job operation", string(job.OpMerge), string(job.OpSplit), string(job.OpConvert)).Require(),
			formula.Text("files", "Files as a list of {name, mime_type, size}").Require(),
			formula.Enum("target", "Convert target format", job.ConvertTargets...),
		).
		Pure().
		WithTags("pdf", "files").
		WithHandler(formula.Typed(func(_ context.Context, in validateInput) (validateOutput, error) {
			if err := job.Validate(in.Operation, in.Files, in.Target, cfg.MaxFileSize); err != nil {
				var fe input.FieldErrors
				fe.Add("files", "%s", err.Error())
				return validateOutput{}, fe
			}
			var total int64
			for _, f := range in.Files {
				total += f.Size
			}
			return validateOutput{
				Operation:  in.Operation,
				FileCount:  len(in.Files),
				TotalBytes: total,
				TotalHuman: humanize.IBytes(uint64(total)), // #nosec G115 -- sizes are validated non-negative
				Limit:      humanize.IBytes(uint64(cfg.MaxFileSize)), // #nosec G115 -- positive
			}, nil
		})).
		MustBuild()
}
