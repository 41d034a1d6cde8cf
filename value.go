package jsontree

import (
	"fmt"
	"math"
)

// Type is the tag of a Value's active payload, matching the type
// codes a caller embedding jsontree needs to switch on.
type Type int

// Type codes, fixed by the external interface: callers may persist
// these values (e.g. in a schema cache), so they must never be
// renumbered.
const (
	TypeError   Type = -1
	TypeNull    Type = 1
	TypeString  Type = 2
	TypeNumber  Type = 3
	TypeObject  Type = 4
	TypeArray   Type = 5
	TypeBoolean Type = 6
)

func (t Type) String() string {
	switch t {
	case TypeError:
		return "error"
	case TypeNull:
		return "null"
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeBoolean:
		return "boolean"
	}
	return "<unknown>"
}

// Value is a tagged union holding exactly one of {null, boolean,
// number, string, array, object}. Every Value carries a non-owning
// back reference to the array or object Value that currently holds
// it; the parent is nil for a tree root or a detached value.
//
// A Value must not be inserted into more than one container: Array's
// and Object's mutating methods reject a child whose parent is
// already set.
type Value struct {
	typ     Type
	num     float64
	str     string
	boolean bool
	arr     *Array
	obj     *Object
	parent  *Value
}

// NewNull returns a freshly constructed, unattached null value.
func NewNull() *Value {
	return &Value{typ: TypeNull}
}

// NewBool returns a freshly constructed, unattached boolean value.
func NewBool(b bool) *Value {
	return &Value{typ: TypeBoolean, boolean: b}
}

// NewNumber returns a freshly constructed, unattached number value.
// It fails if n is NaN or infinite, since IEEE-754 non-finite values
// have no JSON representation.
func NewNumber(n float64) (*Value, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNumeric, n)
	}
	return &Value{typ: TypeNumber, num: n}, nil
}

// NewString returns a freshly constructed, unattached string value.
// s may contain embedded NUL bytes; it need not be a C string.
func NewString(s string) *Value {
	return &Value{typ: TypeString, str: s}
}

// NewArray returns a freshly constructed, unattached, empty array
// value.
func NewArray() *Value {
	v := &Value{typ: TypeArray}
	v.arr = newArray(v)
	return v
}

// NewObject returns a freshly constructed, unattached, empty object
// value.
func NewObject() *Value {
	v := &Value{typ: TypeObject}
	v.obj = newObject(v)
	return v
}

// errorValue is the sentinel returned by the fluent Index/Key
// accessors when the receiver can't satisfy the request. Its type is
// TypeError, per the documented (if unspecified) behavior that
// equals(errorValue, errorValue) is true — see DESIGN.md.
var errorValue = &Value{typ: TypeError}

// Type reports the value's active payload kind.
func (v *Value) Type() Type {
	if v == nil {
		return TypeError
	}
	return v.typ
}

// Parent returns the array or object Value that currently owns v, or
// nil if v is a tree root or has been detached (removed, replaced, or
// never inserted anywhere).
func (v *Value) Parent() *Value {
	if v == nil {
		return nil
	}
	return v.parent
}

// AsNull reports whether v holds a null value.
func (v *Value) AsNull() error {
	if v.Type() != TypeNull {
		return fmt.Errorf("%w: value is %v, not null", ErrType, v.Type())
	}
	return nil
}

// AsBool extracts a boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.Type() != TypeBoolean {
		return false, fmt.Errorf("%w: value is %v, not boolean", ErrType, v.Type())
	}
	return v.boolean, nil
}

// AsNumber extracts a float64 payload.
func (v *Value) AsNumber() (float64, error) {
	if v.Type() != TypeNumber {
		return 0, fmt.Errorf("%w: value is %v, not number", ErrType, v.Type())
	}
	return v.num, nil
}

// AsInteger is a convenience for callers who know a parsed number is
// whole and fits in an int64; it does not introduce a distinct
// integer type (see SPEC_FULL.md §6).
func (v *Value) AsInteger() (int64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || n < math.MinInt64 || n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is not a representable int64", ErrType, n)
	}
	return int64(n), nil
}

// AsString extracts a string payload.
func (v *Value) AsString() (string, error) {
	if v.Type() != TypeString {
		return "", fmt.Errorf("%w: value is %v, not string", ErrType, v.Type())
	}
	return v.str, nil
}

// AsArray extracts the Array container.
func (v *Value) AsArray() (*Array, error) {
	if v.Type() != TypeArray {
		return nil, fmt.Errorf("%w: value is %v, not array", ErrType, v.Type())
	}
	return v.arr, nil
}

// AsObject extracts the Object container.
func (v *Value) AsObject() (*Object, error) {
	if v.Type() != TypeObject {
		return nil, fmt.Errorf("%w: value is %v, not object", ErrType, v.Type())
	}
	return v.obj, nil
}

// AsObjectMap is the teacher's map-flattening convenience: a
// non-owning snapshot of an object's contents. It does not preserve
// insertion order; use Object's iteration methods for that.
func (v *Value) AsObjectMap() (map[string]*Value, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	m := make(map[string]*Value, obj.Len())
	obj.m.Each(func(k string, val *Value) bool {
		m[k] = val
		return true
	})
	return m, nil
}

// Index is a fluent accessor: on any non-array receiver, or an
// out-of-range index, it returns the shared error sentinel rather
// than failing loudly. Chain with Key for read-only drill-down.
func (v *Value) Index(i int) *Value {
	arr, err := v.AsArray()
	if err != nil {
		return errorValue
	}
	val, ok := arr.Get(i)
	if !ok {
		return errorValue
	}
	return val
}

// Key is a fluent accessor: on any non-object receiver, or a missing
// key, it returns the shared error sentinel rather than failing
// loudly.
func (v *Value) Key(k string) *Value {
	obj, err := v.AsObject()
	if err != nil {
		return errorValue
	}
	val, ok := obj.Get(k)
	if !ok {
		return errorValue
	}
	return val
}

// detach clears v's parent pointer. Called by the container that is
// removing, replacing, or overwriting v.
func (v *Value) detach() {
	if v != nil {
		v.parent = nil
	}
}
