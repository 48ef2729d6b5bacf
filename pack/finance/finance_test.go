package finance

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

func evaluate(t *testing.T, name, in string) formula.Result {
	t.Helper()
	f, ok := New().GetFormula(name)
	if !ok {
		t.Fatalf("formula %s missing", name)
	}
	res, err := f.Evaluate(context.Background(), json.RawMessage(in))
	if err != nil {
		t.Fatalf("Evaluate(%s) error = %v", name, err)
	}
	return res
}

func decode[T any](t *testing.T, res formula.Result) T {
	t.Helper()
	var out T
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v (reason %q, violations %v)", err, res.Reason, res.Violations)
	}
	return out
}

func fields(res formula.Result) map[string]bool {
	out := make(map[string]bool, len(res.Violations))
	for _, v := range res.Violations {
		out[v.Field] = true
	}
	return out
}

func TestSimpleInterest(t *testing.T) {
	t.Parallel()

	out := decode[simpleInterestOutput](t, evaluate(t, "simple_interest", `{"principal":10000,"rate":5,"years":5}`))
	if out.Interest != 2500 || out.Total != 12500 {
		t.Errorf("simple interest = %v/%v, want 2500/12500", out.Interest, out.Total)
	}
}

func TestSimpleInterest_Invalid(t *testing.T) {
	t.Parallel()

	res := evaluate(t, "simple_interest", `{"principal":0,"rate":-1,"years":"abc"}`)
	if res.Status != formula.StatusInvalid {
		t.Fatalf("status = %s, want invalid", res.Status)
	}
	got := fields(res)
	for _, f := range []string{"principal", "rate", "years"} {
		if !got[f] {
			t.Errorf("missing violation for %s in %v", f, res.Violations)
		}
	}
}

func TestLoanPayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		payment  float64
		interest float64
	}{
		{"mortgage", `{"principal":200000,"annual_rate":6,"years":30}`, 1199.10, 231676.38},
		{"zero rate", `{"principal":12000,"annual_rate":0,"years":1}`, 1000, 0},
		{"quarterly", `{"principal":4000,"annual_rate":0,"years":1,"periods_per_year":4}`, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := decode[loanOutput](t, evaluate(t, "loan_payment", tt.input))
			if out.Payment != tt.payment {
				t.Errorf("Payment = %v, want %v", out.Payment, tt.payment)
			}
			if math.Abs(out.TotalInterest-tt.interest) > 0.05 {
				t.Errorf("TotalInterest = %v, want %v", out.TotalInterest, tt.interest)
			}
		})
	}

	if res := evaluate(t, "loan_payment", `{"principal":1000,"annual_rate":5}`); res.Status != formula.StatusInvalid {
		t.Errorf("missing years status = %s, want invalid", res.Status)
	}
}

func TestAmortization(t *testing.T) {
	t.Parallel()

	out := decode[amortizationOutput](t, evaluate(t, "amortization", `{"principal":1000,"annual_rate":12,"years":1}`))
	if len(out.Schedule) != 12 {
		t.Fatalf("schedule length = %d, want 12", len(out.Schedule))
	}
	if out.Payment != 88.85 {
		t.Errorf("Payment = %v, want 88.85", out.Payment)
	}
	if out.Schedule[0].Interest != 10 {
		t.Errorf("first interest = %v, want 10", out.Schedule[0].Interest)
	}
	if last := out.Schedule[11]; last.Balance != 0 {
		t.Errorf("final balance = %v, want 0", last.Balance)
	}
	var principal float64
	for _, row := range out.Schedule {
		principal += row.Principal
	}
	if math.Abs(principal-1000) > 0.05 {
		t.Errorf("principal repaid = %v, want 1000", principal)
	}

	res := evaluate(t, "amortization", `{"principal":1000,"annual_rate":1,"years":200}`)
	if res.Status != formula.StatusInvalid {
		t.Errorf("long schedule status = %s, want invalid", res.Status)
	}
}

func TestCompoundInterest(t *testing.T) {
	t.Parallel()

	annual := decode[compoundOutput](t, evaluate(t, "compound_interest",
		`{"principal":1000,"rate":5,"years":10,"compounds_per_year":"1"}`))
	if annual.FutureValue != 1628.89 {
		t.Errorf("FutureValue = %v, want 1628.89", annual.FutureValue)
	}
	if annual.EffectiveRate != 5 {
		t.Errorf("EffectiveRate = %v, want 5", annual.EffectiveRate)
	}

	savings := decode[compoundOutput](t, evaluate(t, "compound_interest",
		`{"principal":0,"rate":0,"years":1,"monthly_contribution":100}`))
	if savings.FutureValue != 1200 || savings.InterestEarned != 0 {
		t.Errorf("savings = %+v, want 1200 with no interest", savings)
	}

	monthly := decode[compoundOutput](t, evaluate(t, "compound_interest",
		`{"principal":1000,"rate":5,"years":10}`))
	if monthly.FutureValue <= annual.FutureValue {
		t.Errorf("monthly compounding %v should exceed annual %v", monthly.FutureValue, annual.FutureValue)
	}

	if res := evaluate(t, "compound_interest", `{"rate":5,"years":1}`); res.Status != formula.StatusInvalid {
		t.Errorf("nothing invested status = %s, want invalid", res.Status)
	}
}

func TestROI(t *testing.T) {
	t.Parallel()

	out := decode[roiOutput](t, evaluate(t, "roi", `{"initial":1000,"final":1500,"years":2}`))
	if out.Gain != 500 || out.ROI != 50 {
		t.Errorf("gain/roi = %v/%v, want 500/50", out.Gain, out.ROI)
	}
	if out.Annualized == nil || *out.Annualized != 22.4745 {
		t.Errorf("Annualized = %v, want 22.4745", out.Annualized)
	}

	noYears := decode[roiOutput](t, evaluate(t, "roi", `{"initial":1000,"final":900}`))
	if noYears.ROI != -10 || noYears.Annualized != nil {
		t.Errorf("roi = %v annualized = %v, want -10 and nil", noYears.ROI, noYears.Annualized)
	}
}

func TestRMD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"age 75", `{"age":75,"balance":100000}`, 4065.04},
		{"first year", `{"age":72,"balance":27400}`, 1000},
		{"past table", `{"age":125,"balance":100000}`, 50000},
		{"huge age", `{"age":1e19,"balance":100000}`, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := decode[rmdOutput](t, evaluate(t, "rmd", tt.input))
			if out.Distribution != tt.want {
				t.Errorf("Distribution = %v, want %v", out.Distribution, tt.want)
			}
		})
	}

	res := evaluate(t, "rmd", `{"age":70,"balance":0}`)
	got := fields(res)
	if res.Status != formula.StatusInvalid || !got["age"] || !got["balance"] {
		t.Errorf("invalid rmd = %s %v, want age and balance violations", res.Status, res.Violations)
	}
}

func TestUniformLifetimeTableComplete(t *testing.T) {
	t.Parallel()

	prev := math.Inf(1)
	for age := rmdMinAge; age <= rmdMaxAge; age++ {
		d, ok := uniformLifetime.Get(age)
		if !ok {
			t.Fatalf("age %d missing", age)
		}
		if d >= prev {
			t.Errorf("divisor at %d = %v, not below %v", age, d, prev)
		}
		prev = d
	}
}
