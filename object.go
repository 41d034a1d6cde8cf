package jsontree

import (
	"fmt"
	"strings"

	"github.com/mcvoid/jsontree/internal/omap"
)

// Object is an insertion-ordered map from string keys to owned
// values, backed by internal/omap's open-addressed probe table. It
// exposes parson's typed-accessor and dotted-path surface (§4.4 and
// SPEC_FULL.md §6) on top of that generic container.
type Object struct {
	m    *omap.Map[*Value]
	self *Value
}

func newObject(self *Value) *Object {
	return &Object{m: omap.New[*Value](), self: self}
}

// Value returns the Value that wraps this object.
func (o *Object) Value() *Value { return o.self }

// Len returns the number of key/value pairs.
func (o *Object) Len() int { return o.m.Len() }

// Get looks up name, returning its value and true, or (nil, false).
func (o *Object) Get(name string) (*Value, bool) {
	return o.m.Get(name)
}

// Has reports whether name is present.
func (o *Object) Has(name string) bool {
	return o.m.Has(name)
}

// HasType reports whether name is present and holds a value of the
// given type.
func (o *Object) HasType(name string, t Type) bool {
	v, ok := o.m.Get(name)
	return ok && v.Type() == t
}

// NameAt and ValueAt give index-based access to the dense,
// insertion-ordered side of the container, mirroring parson's
// json_object_get_name / json_object_get_value_at.
func (o *Object) NameAt(i int) (string, bool) {
	name, _, ok := o.m.At(i)
	return name, ok
}

func (o *Object) ValueAt(i int) (*Value, bool) {
	_, v, ok := o.m.At(i)
	return v, ok
}

// Set installs value under name, replacing (and detaching) any
// existing value under that name. It fails if value already has a
// parent.
func (o *Object) Set(name string, value *Value) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrContract)
	}
	if value.Parent() != nil {
		return fmt.Errorf("%w: value already has a parent", ErrContract)
	}
	value.parent = o.self
	old, replaced := o.m.Set(name, value)
	if replaced {
		old.detach()
	}
	return nil
}

// Add installs value under name using add semantics: it fails with a
// duplicate-key error if name is already present, leaving the object
// unchanged and value untouched.
func (o *Object) Add(name string, value *Value) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrContract)
	}
	if value.Parent() != nil {
		return fmt.Errorf("%w: value already has a parent", ErrContract)
	}
	if err := o.m.Add(name, value); err != nil {
		return fmt.Errorf("%w: %v", ErrContract, err)
	}
	value.parent = o.self
	return nil
}

// Remove deletes name via backward-shift deletion, detaching its
// value. It fails if name is absent.
func (o *Object) Remove(name string) error {
	val, ok := o.m.Remove(name)
	if !ok {
		return fmt.Errorf("%w: key %q not found", ErrContract, name)
	}
	val.detach()
	return nil
}

// Clear detaches every value and empties the object.
func (o *Object) Clear() {
	o.m.Each(func(_ string, v *Value) bool {
		v.detach()
		return true
	})
	o.m.Clear()
}

// Each calls fn for every key/value pair in insertion order, stopping
// early if fn returns false. Remove moves the last pair into the
// removed pair's position, so after a removal that pair is visited
// out of insertion order.
func (o *Object) Each(fn func(name string, v *Value) bool) {
	o.m.Each(fn)
}

// CheckInvariants re-exports the probe-table invariant check for
// tests outside this package.
func (o *Object) CheckInvariants() error {
	return o.m.CheckInvariants()
}

// --- sentinel-on-failure typed accessors (parson's convention) ---

// GetNumber returns the number stored under name, or 0 if absent or
// of the wrong type.
func (o *Object) GetNumber(name string) float64 {
	v, ok := o.Get(name)
	if !ok {
		return 0
	}
	n, err := v.AsNumber()
	if err != nil {
		return 0
	}
	return n
}

// GetString returns the string stored under name, or "" if absent or
// of the wrong type.
func (o *Object) GetString(name string) string {
	v, ok := o.Get(name)
	if !ok {
		return ""
	}
	s, err := v.AsString()
	if err != nil {
		return ""
	}
	return s
}

// GetBoolean returns 1/0 for the boolean stored under name, or -1 if
// absent or of the wrong type.
func (o *Object) GetBoolean(name string) int {
	v, ok := o.Get(name)
	if !ok {
		return -1
	}
	b, err := v.AsBool()
	if err != nil {
		return -1
	}
	if b {
		return 1
	}
	return 0
}

// GetObject returns the object stored under name, or nil if absent or
// of the wrong type.
func (o *Object) GetObject(name string) *Object {
	v, ok := o.Get(name)
	if !ok {
		return nil
	}
	obj, err := v.AsObject()
	if err != nil {
		return nil
	}
	return obj
}

// GetArray returns the array stored under name, or nil if absent or
// of the wrong type.
func (o *Object) GetArray(name string) *Array {
	v, ok := o.Get(name)
	if !ok {
		return nil
	}
	arr, err := v.AsArray()
	if err != nil {
		return nil
	}
	return arr
}

// --- dotted access family (§4.4's dotget, plus parson's typed dotget_*) ---

// DotGet splits name at the first '.', resolves the left half as a
// key into a nested object, and recurses on the right half; a
// missing key or non-object intermediate yields (nil, false).
func (o *Object) DotGet(name string) (*Value, bool) {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return o.Get(name)
	}
	head, rest := name[:dot], name[dot+1:]
	v, ok := o.Get(head)
	if !ok {
		return nil, false
	}
	child, err := v.AsObject()
	if err != nil {
		return nil, false
	}
	return child.DotGet(rest)
}

// DotHas reports whether a dotted path resolves to a value.
func (o *Object) DotHas(name string) bool {
	_, ok := o.DotGet(name)
	return ok
}

// DotHasType reports whether a dotted path resolves to a value of
// the given type.
func (o *Object) DotHasType(name string, t Type) bool {
	v, ok := o.DotGet(name)
	return ok && v.Type() == t
}

// DotGetNumber resolves a dotted path, returning 0 if absent or of
// the wrong type.
func (o *Object) DotGetNumber(name string) float64 {
	v, ok := o.DotGet(name)
	if !ok {
		return 0
	}
	n, err := v.AsNumber()
	if err != nil {
		return 0
	}
	return n
}

// DotGetString resolves a dotted path, returning "" if absent or of
// the wrong type.
func (o *Object) DotGetString(name string) string {
	v, ok := o.DotGet(name)
	if !ok {
		return ""
	}
	s, err := v.AsString()
	if err != nil {
		return ""
	}
	return s
}

// DotGetBoolean resolves a dotted path, returning -1 if absent or of
// the wrong type.
func (o *Object) DotGetBoolean(name string) int {
	v, ok := o.DotGet(name)
	if !ok {
		return -1
	}
	b, err := v.AsBool()
	if err != nil {
		return -1
	}
	if b {
		return 1
	}
	return 0
}

// DotGetObject resolves a dotted path, returning nil if absent or of
// the wrong type.
func (o *Object) DotGetObject(name string) *Object {
	v, ok := o.DotGet(name)
	if !ok {
		return nil
	}
	obj, err := v.AsObject()
	if err != nil {
		return nil
	}
	return obj
}

// DotGetArray resolves a dotted path, returning nil if absent or of
// the wrong type.
func (o *Object) DotGetArray(name string) *Array {
	v, ok := o.DotGet(name)
	if !ok {
		return nil
	}
	arr, err := v.AsArray()
	if err != nil {
		return nil
	}
	return arr
}
