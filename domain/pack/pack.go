// Package pack provides types for grouping formulas into installable packs.
package pack

import (
	"github.com/felixgeelhaar/calc-go/domain/formula"
)

// Pack is a collection of related formulas.
type Pack struct {
	// Name is the unique identifier for the pack.
	Name string `json:"name"`

	// Description explains what the pack provides.
	Description string `json:"description"`

	// Version is the semantic version of the pack.
	Version string `json:"version,omitempty"`

	// Formulas is the collection of formulas in this pack.
	Formulas []formula.Formula `json:"-"`

	// Dependencies lists other packs this pack depends on.
	Dependencies []string `json:"dependencies,omitempty"`

	// Metadata holds additional pack information.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FormulaNames returns the names of all formulas in the pack.
func (p *Pack) FormulaNames() []string {
	names := make([]string, len(p.Formulas))
	for i, f := range p.Formulas {
		names[i] = f.Name()
	}
	return names
}

// GetFormula returns a formula by name from the pack.
func (p *Pack) GetFormula(name string) (formula.Formula, bool) {
	for _, f := range p.Formulas {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Validate checks the pack is named and holds uniquely named formulas.
func (p *Pack) Validate() error {
	if p.Name == "" {
		return ErrInvalidPack
	}
	seen := make(map[string]bool, len(p.Formulas))
	for _, f := range p.Formulas {
		if seen[f.Name()] {
			return ErrDuplicateFormula
		}
		seen[f.Name()] = true
	}
	return nil
}

// Builder provides a fluent API for constructing packs.
type Builder struct {
	pack *Pack
}

// NewBuilder creates a new pack builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		pack: &Pack{
			Name:     name,
			Formulas: make([]formula.Formula, 0),
			Metadata: make(map[string]string),
		},
	}
}

// WithDescription sets the pack description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.pack.Description = desc
	return b
}

// WithVersion sets the pack version.
func (b *Builder) WithVersion(version string) *Builder {
	b.pack.Version = version
	return b
}

// AddFormulas adds formulas to the pack.
func (b *Builder) AddFormulas(formulas ...formula.Formula) *Builder {
	b.pack.Formulas = append(b.pack.Formulas, formulas...)
	return b
}

// WithDependency adds a dependency on another pack.
func (b *Builder) WithDependency(packName string) *Builder {
	b.pack.Dependencies = append(b.pack.Dependencies, packName)
	return b
}

// WithMetadata adds metadata to the pack.
func (b *Builder) WithMetadata(key, value string) *Builder {
	b.pack.Metadata[key] = value
	return b
}

// Build returns the constructed pack.
func (b *Builder) Build() *Pack {
	return b.pack
}
