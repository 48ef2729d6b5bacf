package finance

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

type loanInput struct {
	Principal      input.Number `json:"principal"`
	AnnualRate     input.Number `json:"annual_rate"`
	Years          input.Number `json:"years"`
	PeriodsPerYear input.Number `json:"periods_per_year"`
}

// terms validates the loan and returns the principal, periodic rate and
// number of periods.
func (in loanInput) terms() (principal, rate float64, periods int, err error) {
	var fe input.FieldErrors
	principal = in.Principal.Value()
	fe.Positive("principal", principal)
	fe.NonNegative("annual_rate", in.AnnualRate.Value())
	fe.Positive("years", in.Years.Value())
	perYear := in.PeriodsPerYear.Or(12)
	fe.AtLeast("periods_per_year", perYear, 1)
	if err = fe.Err(); err != nil {
		return 0, 0, 0, err
	}

	periods = int(math.Round(in.Years.Value() * perYear))
	if periods < 1 {
		return 0, 0, 0, formula.Invalidf("term is shorter than one payment period")
	}
	return principal, in.AnnualRate.Value() / 100 / perYear, periods, nil
}

// payment is the level annuity payment for principal p at periodic rate r
// over n periods.
func payment(p, r float64, n int) float64 {
	if r == 0 {
		return p / float64(n)
	}
	return p * r / (1 - math.Pow(1+r, -float64(n)))
}

type loanOutput struct {
	Payment       float64 `json:"payment"`
	Periods       int     `json:"periods"`
	TotalPaid     float64 `json:"total_paid"`
	TotalInterest float64 `json:"total_interest"`
}

func (o loanOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Payment", f.Money(o.Payment)),
		format.L("Payments", f.NumberN(float64(o.Periods), 0)),
		format.L("Total paid", f.Money(o.TotalPaid)),
		format.L("Total interest", f.Money(o.TotalInterest)),
	}
}

func loanPaymentFormula() formula.Formula {
	return formula.NewBuilder("loan_payment").
		WithTitle("Loan Payment").
		WithDescription("Level payment of an amortizing loan with total paid and total interest").
		WithCategory("finance").
		WithFields(loanFields()...).
		Pure().
		WithTags("finance", "loan").
		WithHandler(formula.Typed(func(_ context.Context, in loanInput) (loanOutput, error) {
			p, r, n, err := in.terms()
			if err != nil {
				return loanOutput{}, err
			}
			pmt := payment(p, r, n)
			total := pmt * float64(n)
			return loanOutput{
				Payment:       format.Round(pmt, 2),
				Periods:       n,
				TotalPaid:     format.Round(total, 2),
				TotalInterest: format.Round(total-p, 2),
			}, nil
		})).
		MustBuild()
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type amortizationOutput struct {
	Payment       float64       `json:"payment"`
	TotalInterest float64       `json:"total_interest"`
	Schedule      []Installment `json:"schedule"`
}

func (o amortizationOutput) Summary(f *format.Formatter) []format.Line {
	lines := []format.Line{
		format.L("Payment", f.Money(o.Payment)),
		format.L("Total interest", f.Money(o.TotalInterest)),
		format.L("Payments", f.NumberN(float64(len(o.Schedule)), 0)),
	}
	if len(o.Schedule) > 0 {
		lines = append(lines, format.L("First payment interest", f.Money(o.Schedule[0].Interest)))
	}
	return lines
}

func amortizationFormula() formula.Formula {
	return formula.NewBuilder("amortization").
		WithTitle("Amortization Schedule").
		WithDescription("Per-period payment, principal, interest and remaining balance").
		WithCategory("finance").
		WithFields(loanFields()...).
		Pure().
		WithTags("finance", "loan").
		WithHandler(formula.Typed(func(_ context.Context, in loanInput) (amortizationOutput, error) {
			p, r, n, err := in.terms()
			if err != nil {
				return amortizationOutput{}, err
			}
			if n > MaxSchedulePeriods {
				return amortizationOutput{}, formula.Invalidf("schedule of %d payments exceeds %d", n, MaxSchedulePeriods)
			}

			pmt := payment(p, r, n)
			schedule := make([]Installment, 0, n)
			balance := p
			var interestTotal float64
			for i := 1; i <= n; i++ {
				interest := balance * r
				principal := pmt - interest
				if i == n {
					principal = balance
				}
				balance -= principal
				interestTotal += interest
				schedule = append(schedule, Installment{
					Period:    i,
					Payment:   format.Round(principal+interest, 2),
					Principal: format.Round(principal, 2),
					Interest:  format.Round(interest, 2),
					Balance:   format.Round(math.Max(balance, 0), 2),
				})
			}
			return amortizationOutput{
				Payment:       format.Round(pmt, 2),
				TotalInterest: format.Round(interestTotal, 2),
				Schedule:      schedule,
			}, nil
		})).
		MustBuild()
}
