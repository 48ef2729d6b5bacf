package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

func newFormula(name, category string) formula.Formula {
	return formula.NewBuilder(name).
		WithCategory(category).
		WithHandler(func(_ context.Context, _ json.RawMessage) (formula.Result, error) {
			return formula.OK(json.RawMessage(`{}`), nil), nil
		}).
		MustBuild()
}

func TestFormulaRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewFormulaRegistry()
	if err := r.Register(newFormula("bmi", "health")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(newFormula("bmi", "health")); !errors.Is(err, formula.ErrFormulaExists) {
		t.Errorf("duplicate Register() error = %v, want ErrFormulaExists", err)
	}
	if err := r.Register(nil); !errors.Is(err, formula.ErrEmptyName) {
		t.Errorf("Register(nil) error = %v, want ErrEmptyName", err)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestFormulaRegistry_ListIsSorted(t *testing.T) {
	t.Parallel()

	r := NewFormulaRegistry()
	for _, n := range []string{"tip", "bmi", "roi", "area"} {
		if err := r.Register(newFormula(n, "x")); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"area", "bmi", "roi", "tip"}
	for i, f := range r.List() {
		if f.Name() != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, f.Name(), want[i])
		}
	}
	names := r.Names()
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestFormulaRegistry_ByCategory(t *testing.T) {
	t.Parallel()

	r := NewFormulaRegistry()
	_ = r.Register(newFormula("bmi", "health"))
	_ = r.Register(newFormula("bmr", "health"))
	_ = r.Register(newFormula("roi", "finance"))

	got := r.ByCategory("health")
	if len(got) != 2 || got[0].Name() != "bmi" || got[1].Name() != "bmr" {
		t.Errorf("ByCategory(health) = %v", got)
	}
	if len(r.ByCategory("geometry")) != 0 {
		t.Error("ByCategory(geometry) should be empty")
	}
}

func TestFormulaRegistry_GetHasUnregister(t *testing.T) {
	t.Parallel()

	r := NewFormulaRegistry()
	_ = r.Register(newFormula("tip", "math"))

	if f, ok := r.Get("tip"); !ok || f.Name() != "tip" {
		t.Errorf("Get(tip) = %v, %v", f, ok)
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get(nope) should miss")
	}
	if !r.Has("tip") {
		t.Error("Has(tip) = false")
	}
	if err := r.Unregister("tip"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
	if err := r.Unregister("tip"); !errors.Is(err, formula.ErrFormulaNotFound) {
		t.Errorf("second Unregister() error = %v, want ErrFormulaNotFound", err)
	}
}

func TestFormulaRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewFormulaRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = r.Register(newFormula(string(rune('a'+i%26))+"_f", "x"))
		}(i)
		go func() {
			defer wg.Done()
			_ = r.List()
		}()
	}
	wg.Wait()

	if r.Count() != 26 {
		t.Errorf("Count() = %d, want 26", r.Count())
	}
}
