// Package formula provides the domain model for calculators: a formula
// takes a JSON input record and deterministically produces a tagged
// result that is either ok or invalid.
package formula

import (
	"context"
	"encoding/json"
)

// Formula is a registered pure calculation.
type Formula interface {
	// Name returns the stable identifier used to look the formula up.
	Name() string

	// Title returns the human title used in summaries.
	Title() string

	// Description returns what the formula computes.
	Description() string

	// Category returns the pack-level grouping such as "health".
	Category() string

	// Fields describes the accepted inputs.
	Fields() []Field

	// Annotations returns the formula's behavioral annotations.
	Annotations() Annotations

	// Evaluate runs the formula. Domain violations come back as an invalid
	// Result; errors are reserved for undecodable input and cancellation.
	Evaluate(ctx context.Context, input json.RawMessage) (Result, error)
}

// Handler is the function signature for formula evaluation.
type Handler func(ctx context.Context, input json.RawMessage) (Result, error)

// Annotations describe formula behavior for caching and listing.
type Annotations struct {
	// Idempotent indicates identical input always yields identical output.
	Idempotent bool `json:"idempotent"`

	// Cacheable indicates results may be served from the result cache.
	Cacheable bool `json:"cacheable"`

	// Tags are arbitrary labels for search and grouping.
	Tags []string `json:"tags,omitempty"`
}

// Definition is the concrete Formula produced by Builder.
type Definition struct {
	name        string
	title       string
	description string
	category    string
	fields      []Field
	annotations Annotations
	handler     Handler
}

func (d *Definition) Name() string { return d.name }

func (d *Definition) Title() string {
	if d.title == "" {
		return d.name
	}
	return d.title
}

func (d *Definition) Description() string { return d.description }

func (d *Definition) Category() string { return d.category }

func (d *Definition) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

func (d *Definition) Annotations() Annotations { return d.annotations }

// Evaluate runs the handler and stamps the formula name on the result.
func (d *Definition) Evaluate(ctx context.Context, input json.RawMessage) (Result, error) {
	if d.handler == nil {
		return Result{}, ErrNoHandler
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res, err := d.handler(ctx, input)
	if err != nil {
		return Result{}, err
	}
	res.Formula = d.name
	return res, nil
}

// Builder provides a fluent API for constructing formulas.
type Builder struct {
	def *Definition
}

// NewBuilder creates a formula builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{def: &Definition{name: name}}
}

// WithTitle sets the title shown in summaries.
func (b *Builder) WithTitle(title string) *Builder {
	b.def.title = title
	return b
}

// WithDescription sets the description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.def.description = desc
	return b
}

// WithCategory sets the category.
func (b *Builder) WithCategory(category string) *Builder {
	b.def.category = category
	return b
}

// WithFields appends input field descriptors.
func (b *Builder) WithFields(fields ...Field) *Builder {
	b.def.fields = append(b.def.fields, fields...)
	return b
}

// Idempotent marks the formula as idempotent.
func (b *Builder) Idempotent() *Builder {
	b.def.annotations.Idempotent = true
	return b
}

// Cacheable marks the formula's results as cacheable.
func (b *Builder) Cacheable() *Builder {
	b.def.annotations.Cacheable = true
	return b
}

// Pure marks the formula idempotent and cacheable.
func (b *Builder) Pure() *Builder {
	return b.Idempotent().Cacheable()
}

// WithTags adds tags.
func (b *Builder) WithTags(tags ...string) *Builder {
	b.def.annotations.Tags = append(b.def.annotations.Tags, tags...)
	return b
}

// WithHandler sets the evaluation handler.
func (b *Builder) WithHandler(h Handler) *Builder {
	b.def.handler = h
	return b
}

// Build constructs the formula.
func (b *Builder) Build() (Formula, error) {
	if b.def.name == "" {
		return nil, ErrEmptyName
	}
	if b.def.handler == nil {
		return nil, ErrNoHandler
	}
	for _, f := range b.def.fields {
		if f.Name == "" {
			return nil, ErrInvalidField
		}
	}
	return b.def, nil
}

// MustBuild constructs the formula or panics.
func (b *Builder) MustBuild() Formula {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}
