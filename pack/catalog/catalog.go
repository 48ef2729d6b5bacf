// Package catalog assembles every built-in formula pack.
package catalog

import (
	"github.com/felixgeelhaar/calc-go/domain/pack"
	"github.com/felixgeelhaar/calc-go/pack/convert"
	"github.com/felixgeelhaar/calc-go/pack/electrical"
	"github.com/felixgeelhaar/calc-go/pack/finance"
	"github.com/felixgeelhaar/calc-go/pack/geometry"
	"github.com/felixgeelhaar/calc-go/pack/health"
	calcmath "github.com/felixgeelhaar/calc-go/pack/math"
	"github.com/felixgeelhaar/calc-go/pack/network"
	"github.com/felixgeelhaar/calc-go/pack/pdf"
	"github.com/felixgeelhaar/calc-go/pack/stats"
)

// Config configures packs that take options.
type Config struct {
	// MaxFileSize is the per-file limit of the pdf pack.
	MaxFileSize int64
}

// Packs returns a fresh instance of every built-in pack.
func Packs(cfg Config) []*pack.Pack {
	return []*pack.Pack{
		convert.New(),
		electrical.New(),
		finance.New(),
		geometry.New(),
		health.New(),
		calcmath.New(),
		network.New(),
		pdf.New(pdf.PackConfig{MaxFileSize: cfg.MaxFileSize}),
		stats.New(),
	}
}
