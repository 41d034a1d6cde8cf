// Package canon serializes a jsontree.Value into RFC 8785 (JSON
// Canonicalization Scheme) form: UTF-16-code-unit-ordered object
// keys, no insignificant whitespace, and ES6 Number::toString number
// formatting.
//
// Structural serialization here (object/array punctuation, string
// escaping, tree walk) is jsontree's own, following
// _examples/lattice-substrate-json-canon/jcs/serialize.go's split
// between "build valid JSON" and "canonicalize it"; the actual
// canonicalization pass (key reordering by UTF-16 code unit, ES6
// Number::toString formatting, escaping normalization) is delegated
// whole-document to the upstream json-canonicalization module's
// jsoncanonicalizer.Transform, exactly as
// _examples/lattice-substrate-json-canon/conformance/cyberphone_differential_test.go
// calls it, rather than reimplementing ES6's shortest-round-trip
// float format, which this repo has no reason to re-solve.
package canon

import (
	"fmt"
	"strconv"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/mcvoid/jsontree"
)

// Marshal serializes v to plain JSON (insertion-ordered, following
// jsontree's own escaper) and then canonicalizes the result via the
// upstream json-canonicalization transform. It fails if v (or any
// descendant) holds a TypeError value, since those have no JSON
// representation to canonicalize.
func Marshal(v *jsontree.Value) ([]byte, error) {
	var buf []byte
	buf, err := appendValue(buf, v)
	if err != nil {
		return nil, err
	}
	out, err := cyberphone.Transform(buf)
	if err != nil {
		return nil, fmt.Errorf("canon: %w", err)
	}
	return out, nil
}

func appendValue(buf []byte, v *jsontree.Value) ([]byte, error) {
	switch v.Type() {
	case jsontree.TypeNull:
		return append(buf, "null"...), nil
	case jsontree.TypeBoolean:
		b, _ := v.AsBool()
		if b {
			return append(buf, "true"...), nil
		}
		return append(buf, "false"...), nil
	case jsontree.TypeNumber:
		// Any valid JSON number representation is sufficient here;
		// Transform reformats numbers to ES6 Number::toString form
		// during canonicalization.
		n, _ := v.AsNumber()
		return strconv.AppendFloat(buf, n, 'g', -1, 64), nil
	case jsontree.TypeString:
		s, _ := v.AsString()
		return append(buf, jsontree.EscapeStringSlashes(s, false)...), nil
	case jsontree.TypeArray:
		return appendArray(buf, v)
	case jsontree.TypeObject:
		return appendObject(buf, v)
	default:
		return nil, fmt.Errorf("canon: cannot serialize %s", v.Type())
	}
}

func appendArray(buf []byte, v *jsontree.Value) ([]byte, error) {
	arr, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	buf = append(buf, '[')
	first := true
	var elemErr error
	arr.Each(func(_ int, elem *jsontree.Value) bool {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf, elemErr = appendValue(buf, elem)
		return elemErr == nil
	})
	if elemErr != nil {
		return nil, elemErr
	}
	buf = append(buf, ']')
	return buf, nil
}

// appendObject writes an object's members in the tree's own insertion
// order; the upstream Transform pass reorders them by UTF-16 code
// unit per RFC 8785 §3.2.3, so member order here is irrelevant to the
// final canonical output.
func appendObject(buf []byte, v *jsontree.Value) ([]byte, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	buf = append(buf, '{')
	first := true
	var memberErr error
	obj.Each(func(name string, val *jsontree.Value) bool {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = append(buf, jsontree.EscapeStringSlashes(name, false)...)
		buf = append(buf, ':')
		buf, memberErr = appendValue(buf, val)
		return memberErr == nil
	})
	if memberErr != nil {
		return nil, memberErr
	}
	buf = append(buf, '}')
	return buf, nil
}
