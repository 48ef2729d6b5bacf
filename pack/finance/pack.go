// Package finance provides loan, interest, return and retirement formulas.
// Rates are entered in percent.
package finance

import (
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// MaxSchedulePeriods bounds the length of an amortization schedule.
const MaxSchedulePeriods = 1200

// New creates the finance pack.
func New() *pack.Pack {
	return pack.NewBuilder("finance").
		WithDescription("Loans, amortization, interest, ROI and required minimum distributions").
		WithVersion("1.0.0").
		AddFormulas(
			loanPaymentFormula(),
			amortizationFormula(),
			simpleInterestFormula(),
			compoundInterestFormula(),
			roiFormula(),
			rmdFormula(),
		).
		Build()
}

func loanFields() []formula.Field {
	return []formula.Field{
		formula.Number("principal", "Loan amount").AtLeast(0),
		formula.Number("annual_rate", "Annual interest rate in percent").AtLeast(0),
		formula.Number("years", "Loan term in years").AtLeast(0),
		formula.Number("periods_per_year", "Payments per year").AtLeast(1).WithDefault(12),
	}
}
