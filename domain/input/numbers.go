package input

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Numbers is a list of numbers pasted by a user. It decodes from a JSON
// array (elements coerced like Number) or from a string separated by
// commas, semicolons or whitespace. Tokens that are not numbers are skipped.
type Numbers []float64

// UnmarshalJSON implements json.Unmarshaler.
func (ns *Numbers) UnmarshalJSON(b []byte) error {
	*ns = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*ns = ParseList(s)
		return nil
	case '[':
		var raw []Number
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make(Numbers, 0, len(raw))
		for _, n := range raw {
			if n.Set() {
				out = append(out, n.Value())
			}
		}
		*ns = out
		return nil
	default:
		var n Number
		if err := n.UnmarshalJSON(b); err != nil {
			return err
		}
		if n.Set() {
			*ns = Numbers{n.Value()}
		}
		return nil
	}
}

// ParseList splits s on commas, semicolons and whitespace and keeps every
// token that parses as a number.
func ParseList(s string) Numbers {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
	out := make(Numbers, 0, len(fields))
	for _, f := range fields {
		if v, ok := ParseLenient(f); ok {
			out = append(out, v)
		}
	}
	return out
}
