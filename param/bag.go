// Package param models a legacy call's parameter mapping. A Bag holds only
// the parameters the caller explicitly supplied; absence from the Bag is the
// "not supplied" marker, which is distinct from a parameter supplied with its
// default value.
package param

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Bag is an immutable, insertion-ordered mapping from parameter name to value.
// All mutating methods return a new Bag and leave the receiver untouched, so
// a caller's original mapping can never be modified by translation.
type Bag struct {
	keys   []string
	values map[string]any
}

// New returns an empty Bag.
func New() Bag {
	return Bag{}
}

// FromMap returns a Bag containing the entries of m, ordered by name. Use
// With chains when insertion order matters.
func FromMap(m map[string]any) Bag {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := New()
	for _, k := range keys {
		b = b.With(k, m[k])
	}

	return b
}

// With returns a copy of the Bag with name set to value. Setting an existing
// name overwrites its value but keeps its original position.
func (b Bag) With(name string, value any) Bag {
	nb := b.clone()
	if _, ok := nb.values[name]; !ok {
		nb.keys = append(nb.keys, name)
	}
	nb.values[name] = value

	return nb
}

// Without returns a copy of the Bag with name removed. Removing an absent
// name is a no-op.
func (b Bag) Without(name string) Bag {
	if !b.Has(name) {
		return b
	}

	nb := Bag{
		keys:   make([]string, 0, len(b.keys)-1),
		values: make(map[string]any, len(b.values)-1),
	}
	for _, k := range b.keys {
		if k == name {
			continue
		}
		nb.keys = append(nb.keys, k)
		nb.values[k] = b.values[k]
	}

	return nb
}

// Has reports whether name was explicitly supplied.
func (b Bag) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Get returns the value for name and whether it was supplied.
func (b Bag) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Bool returns the value for name as a bool. The second return is false when
// the parameter is absent or not a bool.
func (b Bag) Bool(name string) (bool, bool) {
	v, ok := b.values[name]
	if !ok {
		return false, false
	}
	bv, ok := v.(bool)

	return bv, ok
}

// String returns the value for name as a string. The second return is false
// when the parameter is absent or not a string.
func (b Bag) String(name string) (string, bool) {
	v, ok := b.values[name]
	if !ok {
		return "", false
	}
	sv, ok := v.(string)

	return sv, ok
}

// Strings returns the value for name as a []string. A scalar string value is
// returned as a single-element slice. The second return is false when the
// parameter is absent or neither form.
func (b Bag) Strings(name string) ([]string, bool) {
	v, ok := b.values[name]
	if !ok {
		return nil, false
	}
	switch sv := v.(type) {
	case []string:
		return sv, true
	case string:
		return []string{sv}, true
	default:
		return nil, false
	}
}

// Int returns the value for name as an int. The second return is false when
// the parameter is absent or not an int.
func (b Bag) Int(name string) (int, bool) {
	v, ok := b.values[name]
	if !ok {
		return 0, false
	}
	iv, ok := v.(int)

	return iv, ok
}

// Names returns the supplied parameter names in insertion order.
func (b Bag) Names() []string {
	names := make([]string, len(b.keys))
	copy(names, b.keys)

	return names
}

// Len returns the number of supplied parameters.
func (b Bag) Len() int {
	return len(b.keys)
}

// Equal reports whether two Bags hold the same names and values, ignoring
// order. Values are compared with reflect.DeepEqual.
func (b Bag) Equal(other Bag) bool {
	if len(b.values) != len(other.values) {
		return false
	}
	for k, v := range b.values {
		ov, ok := other.values[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}

	return true
}

// ToMap returns the Bag's entries as a plain map. The map is a copy; mutating
// it does not affect the Bag. Useful for serializing reports.
func (b Bag) ToMap() map[string]any {
	m := make(map[string]any, len(b.values))
	for k, v := range b.values {
		m[k] = v
	}

	return m
}

// Render renders the Bag for log output, e.g. "{Path: a.txt, Recurse: true}".
func (b Bag) Render() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, b.values[k])
	}
	sb.WriteByte('}')

	return sb.String()
}

func (b Bag) clone() Bag {
	nb := Bag{
		keys:   make([]string, len(b.keys)),
		values: make(map[string]any, len(b.values)+1),
	}
	copy(nb.keys, b.keys)
	for k, v := range b.values {
		nb.values[k] = v
	}

	return nb
}
