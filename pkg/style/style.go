// Package style stores CSS-like declarations for an element.
//
// Declarations are kept as an ordered mapping. Overwriting a property keeps
// its original slot; new properties are appended. The serialized form
// "prop1: val1; prop2: val2" is produced only at the boundary, when an
// element is handed to the renderer.
package style

import (
	"iter"
	"slices"
	"strings"

	"github.com/electripy/electripy/pkg/errors"
)

// Decl is a single property/value pair.
type Decl struct {
	Property string
	Value    string
}

// Declarations is an ordered property -> value mapping.
// The zero value is empty and ready to use.
type Declarations struct {
	keys   []string
	values map[string]string
}

// New returns declarations holding decls in order.
func New(decls ...Decl) *Declarations {
	d := &Declarations{}
	d.Add(decls...)
	return d
}

// Parse reads the serialized form. Segments are split on ";", blank segments
// are skipped and each remaining segment is split on its first ":". A segment
// without a colon or with an empty property fails the whole parse.
func Parse(s string) (*Declarations, error) {
	d := &Declarations{}
	for _, segment := range strings.Split(s, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		prop, value, ok := strings.Cut(segment, ":")
		prop = strings.TrimSpace(prop)
		if !ok || prop == "" {
			return nil, errors.Errorf("style.Parse", errors.KindMalformedStyle, "",
				"%w: %q", errors.ErrMalformedStyleEntry, strings.TrimSpace(segment))
		}
		d.Set(prop, strings.TrimSpace(value))
	}
	return d, nil
}

// Set assigns value to prop. An existing property keeps its position.
func (d *Declarations) Set(prop, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[prop]; !ok {
		d.keys = append(d.keys, prop)
	}
	d.values[prop] = value
}

// Add sets every declaration in order.
func (d *Declarations) Add(decls ...Decl) {
	for _, decl := range decls {
		d.Set(decl.Property, decl.Value)
	}
}

// Merge overlays other onto d, last writer wins per property.
func (d *Declarations) Merge(other *Declarations) {
	if other == nil {
		return
	}
	for prop, value := range other.All() {
		d.Set(prop, value)
	}
}

// Get returns the value for prop.
func (d *Declarations) Get(prop string) (string, bool) {
	v, ok := d.values[prop]
	return v, ok
}

// Delete removes prop, if present.
func (d *Declarations) Delete(prop string) {
	if _, ok := d.values[prop]; !ok {
		return
	}
	delete(d.values, prop)
	if i := slices.Index(d.keys, prop); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
}

// Len returns the number of properties.
func (d *Declarations) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// All iterates the declarations in serialization order.
func (d *Declarations) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Decls returns the declarations as a slice, in order.
func (d *Declarations) Decls() []Decl {
	out := make([]Decl, 0, d.Len())
	for k, v := range d.All() {
		out = append(out, Decl{Property: k, Value: v})
	}
	return out
}

// Clone returns an independent copy.
func (d *Declarations) Clone() *Declarations {
	return New(d.Decls()...)
}

// Equal reports whether both hold the same declarations in the same order.
func (d *Declarations) Equal(other *Declarations) bool {
	if d.Len() != other.Len() {
		return false
	}
	return slices.Equal(d.Decls(), other.Decls())
}

// String returns the serialized form, e.g. "position: absolute; left: 0px".
func (d *Declarations) String() string {
	var sb strings.Builder
	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(d.values[k])
	}
	return sb.String()
}
