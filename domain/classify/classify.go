// Package classify maps a numeric result to a label through ordered
// threshold bands, and holds small static lookup tables.
package classify

import (
	"fmt"
	"sort"
)

// Band is an upper-bounded interval. A value falls in the band when it is
// below Upper, or equal to it when Inclusive is set.
type Band struct {
	Upper     float64
	Inclusive bool
	Label     string
}

// Admits reports whether v falls under the band's upper bound.
func (b Band) Admits(v float64) bool {
	if b.Inclusive {
		return v <= b.Upper
	}
	return v < b.Upper
}

// Bands is an ascending list of bands followed by a catch-all label.
type Bands struct {
	bands    []Band
	fallback string
}

// Below starts a band set whose first band holds values < upper.
func Below(upper float64, label string) *Bands {
	return (&Bands{}).Below(upper, label)
}

// Below appends a band holding values < upper.
func (bs *Bands) Below(upper float64, label string) *Bands {
	bs.bands = append(bs.bands, Band{Upper: upper, Label: label})
	return bs
}

// UpTo appends a band holding values <= upper.
func (bs *Bands) UpTo(upper float64, label string) *Bands {
	bs.bands = append(bs.bands, Band{Upper: upper, Inclusive: true, Label: label})
	return bs
}

// Otherwise sets the label for values above every band.
func (bs *Bands) Otherwise(label string) *Bands {
	bs.fallback = label
	return bs
}

// Classify returns the label of the first band admitting v.
func (bs *Bands) Classify(v float64) string {
	for _, b := range bs.bands {
		if b.Admits(v) {
			return b.Label
		}
	}
	return bs.fallback
}

// Labels returns every label in band order, fallback last.
func (bs *Bands) Labels() []string {
	out := make([]string, 0, len(bs.bands)+1)
	for _, b := range bs.bands {
		out = append(out, b.Label)
	}
	return append(out, bs.fallback)
}

// Floors classifies by lower bounds: the label of the highest floor that
// v reaches (v >= floor). Values below every floor get the fallback.
type Floors struct {
	floors   []floor
	fallback string
}

type floor struct {
	min   float64
	label string
}

// AtLeast starts a descending floor set.
func AtLeast(min float64, label string) *Floors {
	return (&Floors{}).AtLeast(min, label)
}

// AtLeast appends a floor. Floors must be added in descending order.
func (fs *Floors) AtLeast(min float64, label string) *Floors {
	fs.floors = append(fs.floors, floor{min: min, label: label})
	return fs
}

// Otherwise sets the label for values below every floor.
func (fs *Floors) Otherwise(label string) *Floors {
	fs.fallback = label
	return fs
}

// Classify returns the label of the highest floor v reaches.
func (fs *Floors) Classify(v float64) string {
	for _, f := range fs.floors {
		if v >= f.min {
			return f.label
		}
	}
	return fs.fallback
}

// Table is a static finite mapping from a discrete key to a constant.
type Table[K comparable, V any] struct {
	name string
	m    map[K]V
}

// NewTable returns a named lookup table over m.
func NewTable[K comparable, V any](name string, m map[K]V) Table[K, V] {
	return Table[K, V]{name: name, m: m}
}

// Get returns the value for k.
func (t Table[K, V]) Get(k K) (V, bool) {
	v, ok := t.m[k]
	return v, ok
}

// Must returns the value for k or an error naming the table.
func (t Table[K, V]) Must(k K) (V, error) {
	v, ok := t.m[k]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v not in %s", ErrNoEntry, k, t.name)
	}
	return v, nil
}

// Keys returns the table keys ordered by their string form.
func (t Table[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
