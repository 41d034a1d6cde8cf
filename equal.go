package jsontree

import "math"

// numberTolerance is the absolute difference below which two numbers
// are considered equal, per §4.7.
const numberTolerance = 1e-6

// Equal reports whether a and b are deeply equal per §4.7: arrays
// compare positionally, objects compare by key regardless of
// insertion order, strings compare byte for byte, numbers compare
// within numberTolerance, and null values are always equal to each
// other. Two TypeError values are also equal to each other — a
// quirk preserved from parson's json_value_equals rather than a
// deliberate design choice (see SPEC_FULL.md §7).
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case TypeError, TypeNull:
		return true
	case TypeBoolean:
		av, _ := a.AsBool()
		bv, _ := b.AsBool()
		return av == bv
	case TypeNumber:
		av, _ := a.AsNumber()
		bv, _ := b.AsNumber()
		return math.Abs(av-bv) < numberTolerance
	case TypeString:
		av, _ := a.AsString()
		bv, _ := b.AsString()
		return av == bv
	case TypeArray:
		return arraysEqual(a, b)
	case TypeObject:
		return objectsEqual(a, b)
	default:
		return false
	}
}

func arraysEqual(a, b *Value) bool {
	aArr, _ := a.AsArray()
	bArr, _ := b.AsArray()
	if aArr.Len() != bArr.Len() {
		return false
	}
	equal := true
	aArr.Each(func(i int, av *Value) bool {
		bv, ok := bArr.Get(i)
		if !ok || !Equal(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func objectsEqual(a, b *Value) bool {
	aObj, _ := a.AsObject()
	bObj, _ := b.AsObject()
	if aObj.Len() != bObj.Len() {
		return false
	}
	equal := true
	aObj.Each(func(name string, av *Value) bool {
		bv, ok := bObj.Get(name)
		if !ok || !Equal(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
