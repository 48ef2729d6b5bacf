package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

func TestPacks_Valid(t *testing.T) {
	t.Parallel()

	seen := map[string]string{}
	for _, p := range Packs(Config{}) {
		if err := p.Validate(); err != nil {
			t.Errorf("pack %s: Validate() error = %v", p.Name, err)
		}
		for _, f := range p.Formulas {
			if other, dup := seen[f.Name()]; dup {
				t.Errorf("formula %s in both %s and %s", f.Name(), other, p.Name)
			}
			seen[f.Name()] = p.Name
			if f.Category() != p.Name {
				t.Errorf("formula %s category = %s, want %s", f.Name(), f.Category(), p.Name)
			}
			if !json.Valid(formula.Schema(f.Fields())) {
				t.Errorf("formula %s schema is not valid JSON", f.Name())
			}
		}
	}
	if len(seen) < 30 {
		t.Errorf("catalogue has %d formulas, want at least 30", len(seen))
	}
}

func TestPacks_EmptyInputNeverErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, p := range Packs(Config{}) {
		for _, f := range p.Formulas {
			res, err := f.Evaluate(ctx, json.RawMessage(`{}`))
			if err != nil {
				t.Errorf("%s({}) error = %v", f.Name(), err)
				continue
			}
			if res.Status != formula.StatusOK && res.Status != formula.StatusInvalid {
				t.Errorf("%s({}) status = %q", f.Name(), res.Status)
			}
		}
	}
}

func TestPacks_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"bmi":               `{"weight":70,"height":170}`,
		"loan_payment":      `{"principal":200000,"annual_rate":6,"years":30}`,
		"triangle":          `{"a":3,"b":4,"c":5}`,
		"descriptive":       `{"numbers":"1,2,2,3,4"}`,
		"ohms_law":          `{"voltage":12,"current":2}`,
		"ip_subnet":         `{"ip":"10.0.0.1/8"}`,
		"convert_all":       `{"kind":"length","value":1,"from":"m"}`,
		"percentage":        `{"mode":"percent_change","x":4,"y":5}`,
		"compound_interest": `{"principal":1000,"rate":5,"years":10}`,
	}
	ctx := context.Background()
	for _, p := range Packs(Config{}) {
		for _, f := range p.Formulas {
			in, ok := inputs[f.Name()]
			if !ok {
				continue
			}
			first, err := f.Evaluate(ctx, json.RawMessage(in))
			if err != nil {
				t.Fatalf("%s: Evaluate() error = %v", f.Name(), err)
			}
			second, err := f.Evaluate(ctx, json.RawMessage(in))
			if err != nil {
				t.Fatalf("%s: Evaluate() error = %v", f.Name(), err)
			}
			if !first.IsOK() {
				t.Errorf("%s: status = %s (%s)", f.Name(), first.Status, first.Reason)
			}
			if !bytes.Equal(first.Outputs, second.Outputs) {
				t.Errorf("%s: outputs differ\n%s\n%s", f.Name(), first.Outputs, second.Outputs)
			}
			if first.Text(f.Title()) != second.Text(f.Title()) {
				t.Errorf("%s: summaries differ", f.Name())
			}
		}
	}
}
