package formula

import (
	"encoding/json"

	"github.com/felixgeelhaar/calc-go/domain/units"
)

// FieldKind is the input type of a field.
type FieldKind string

// Field kinds.
const (
	KindNumber FieldKind = "number"
	KindEnum   FieldKind = "enum"
	KindText   FieldKind = "text"
	KindList   FieldKind = "list"
	KindBool   FieldKind = "bool"
)

// Field describes one named input of a formula.
type Field struct {
	Name        string     `json:"name"`
	Kind        FieldKind  `json:"kind"`
	Description string     `json:"description,omitempty"`
	UnitKind    units.Kind `json:"unit_kind,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Enum        []string   `json:"enum,omitempty"`
	Default     any        `json:"default,omitempty"`
}

// Number declares a numeric field.
func Number(name, desc string) Field {
	return Field{Name: name, Kind: KindNumber, Description: desc}
}

// Enum declares a field restricted to values.
func Enum(name, desc string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Description: desc, Enum: values}
}

// Text declares a free-text field.
func Text(name, desc string) Field {
	return Field{Name: name, Kind: KindText, Description: desc}
}

// List declares a number-list field.
func List(name, desc string) Field {
	return Field{Name: name, Kind: KindList, Description: desc}
}

// Bool declares a boolean field.
func Bool(name, desc string) Field {
	return Field{Name: name, Kind: KindBool, Description: desc}
}

// Unit declares the unit selector of a unit-bearing field.
func Unit(name string, kind units.Kind, def string) Field {
	f := Field{Name: name, Kind: KindEnum, UnitKind: kind, Description: string(kind) + " unit", Default: def}
	if list, err := units.Units(kind); err == nil {
		for _, u := range list {
			f.Enum = append(f.Enum, u.Symbol)
		}
	}
	return f
}

// Require marks the field as required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// Between bounds a numeric field.
func (f Field) Between(min, max float64) Field {
	f.Min, f.Max = &min, &max
	return f
}

// AtLeast sets a lower bound.
func (f Field) AtLeast(min float64) Field {
	f.Min = &min
	return f
}

// WithDefault sets the value assumed when the field is absent.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// Schema renders fields as a JSON Schema object. Numeric fields also accept
// strings since form values are coerced.
func Schema(fields []Field) json.RawMessage {
	props := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		p := map[string]any{}
		if f.Description != "" {
			p["description"] = f.Description
		}
		switch f.Kind {
		case KindNumber:
			p["type"] = []string{"number", "string", "null"}
			if f.Min != nil {
				p["minimum"] = *f.Min
			}
			if f.Max != nil {
				p["maximum"] = *f.Max
			}
		case KindEnum:
			p["type"] = "string"
			p["enum"] = f.Enum
		case KindList:
			p["type"] = []string{"array", "string"}
			p["items"] = map[string]any{"type": "number"}
		case KindBool:
			p["type"] = "boolean"
		default:
			p["type"] = "string"
		}
		if f.Default != nil {
			p["default"] = f.Default
		}
		props[f.Name] = p
		if f.Required {
			required = append(required, f.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	raw, _ := json.Marshal(schema)
	return raw
}
