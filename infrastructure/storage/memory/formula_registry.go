// Package memory provides in-memory storage implementations.
package memory

import (
	"sort"
	"sync"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

// FormulaRegistry is an in-memory implementation of formula.Registry.
type FormulaRegistry struct {
	formulas map[string]formula.Formula
	mu       sync.RWMutex
}

// NewFormulaRegistry creates a new in-memory formula registry.
func NewFormulaRegistry() *FormulaRegistry {
	return &FormulaRegistry{
		formulas: make(map[string]formula.Formula),
	}
}

// Register adds a formula to the registry.
func (r *FormulaRegistry) Register(f formula.Formula) error {
	if f == nil || f.Name() == "" {
		return formula.ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formulas[f.Name()]; exists {
		return formula.ErrFormulaExists
	}
	r.formulas[f.Name()] = f
	return nil
}

// Get retrieves a formula by name.
func (r *FormulaRegistry) Get(name string) (formula.Formula, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formulas[name]
	return f, ok
}

// List returns all registered formulas sorted by name.
func (r *FormulaRegistry) List() []formula.Formula {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]formula.Formula, 0, len(r.formulas))
	for _, f := range r.formulas {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ByCategory returns the formulas of one category sorted by name.
func (r *FormulaRegistry) ByCategory(category string) []formula.Formula {
	var out []formula.Formula
	for _, f := range r.List() {
		if f.Category() == category {
			out = append(out, f)
		}
	}
	return out
}

// Names returns all registered formula names sorted.
func (r *FormulaRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formulas))
	for name := range r.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a formula is registered.
func (r *FormulaRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.formulas[name]
	return ok
}

// Unregister removes a formula from the registry.
func (r *FormulaRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formulas[name]; !exists {
		return formula.ErrFormulaNotFound
	}
	delete(r.formulas, name)
	return nil
}

// Count returns the number of registered formulas.
func (r *FormulaRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.formulas)
}

var _ formula.Registry = (*FormulaRegistry)(nil)
