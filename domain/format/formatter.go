package format

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults used when no Formatter is configured.
const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
	DefaultDecimals = 2
)

// Formatter renders numbers and money for one locale.
type Formatter struct {
	locale   language.Tag
	currency currency.Unit
	decimals int
	printer  *message.Printer
}

// New returns a Formatter for a BCP 47 locale and an ISO 4217 currency.
func New(locale, currencyCode string, decimals int) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %v", ErrInvalidFormat, locale, err)
	}
	cur, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: currency %q: %v", ErrInvalidFormat, currencyCode, err)
	}
	if decimals < 0 || decimals > 10 {
		return nil, fmt.Errorf("%w: decimals %d out of range 0-10", ErrInvalidFormat, decimals)
	}
	return &Formatter{
		locale:   tag,
		currency: cur,
		decimals: decimals,
		printer:  message.NewPrinter(tag),
	}, nil
}

// Default returns the en-US, USD, two-decimal Formatter.
func Default() *Formatter {
	return &Formatter{
		locale:   language.AmericanEnglish,
		currency: currency.USD,
		decimals: DefaultDecimals,
		printer:  message.NewPrinter(language.AmericanEnglish),
	}
}

// Locale returns the formatter's locale tag.
func (f *Formatter) Locale() string { return f.locale.String() }

// Currency returns the ISO currency code.
func (f *Formatter) Currency() string { return f.currency.String() }

// Decimals returns the default number of decimals.
func (f *Formatter) Decimals() int { return f.decimals }

// Number formats v with locale grouping and the default decimals.
func (f *Formatter) Number(v float64) string {
	return f.NumberN(v, f.decimals)
}

// NumberN formats v with locale grouping and exactly places decimals.
func (f *Formatter) NumberN(v float64, places int) string {
	if !Finite(v) {
		return "n/a"
	}
	return f.printer.Sprint(number.Decimal(Round(v, places), number.Scale(places)))
}

// Money formats v as an amount in the formatter's currency.
func (f *Formatter) Money(v float64) string {
	if !Finite(v) {
		return "n/a"
	}
	sym := f.printer.Sprint(currency.Symbol(f.currency))
	if Round(v, f.decimals) < 0 {
		return "-" + sym + f.NumberN(-v, f.decimals)
	}
	return sym + f.NumberN(v, f.decimals)
}

// Percent formats v (already in percent) with a trailing percent sign.
func (f *Formatter) Percent(v float64) string {
	if !Finite(v) {
		return "n/a"
	}
	return f.Number(v) + "%"
}

// Unit formats v followed by a unit label.
func (f *Formatter) Unit(v float64, unit string) string {
	s := f.Number(v)
	if unit = strings.TrimSpace(unit); unit != "" {
		s += " " + unit
	}
	return s
}

type ctxKey struct{}

// WithFormatter returns a context carrying f.
func WithFormatter(ctx context.Context, f *Formatter) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// FromContext returns the Formatter carried by ctx, or Default.
func FromContext(ctx context.Context) *Formatter {
	if f, ok := ctx.Value(ctxKey{}).(*Formatter); ok && f != nil {
		return f
	}
	return Default()
}
