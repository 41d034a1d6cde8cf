package jsontree

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseNestingBoundary(t *testing.T) {
	open := strings.Repeat("[", 2048)
	closeBr := strings.Repeat("]", 2048)
	_, err := ParseString(open + closeBr)
	require.NoError(t, err)

	open = strings.Repeat("[", 2049)
	closeBr = strings.Repeat("]", 2049)
	_, err = ParseString(open + closeBr)
	require.ErrorIs(t, err, ErrDepth)
}

func TestParseSurrogatePair(t *testing.T) {
	backslash := byte(0x5c)
	v, err := ParseBytes([]byte{'"', backslash, 'u', 'D', '8', '3', '4', backslash, 'u', 'D', 'D', '1', 'E', '"'})
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, []byte{0xF0, 0x9D, 0x84, 0x9E}, []byte(s))
}

func TestParseLoneLeadSurrogateFails(t *testing.T) {
	_, err := ParseString(`"\uD800"`)
	require.Error(t, err)
}

func TestParseControlByteInStringFails(t *testing.T) {
	_, err := ParseBytes([]byte{'"', 0x01, '"'})
	require.Error(t, err)
}

func TestParseNumberGrammar(t *testing.T) {
	for _, test := range []struct {
		input   string
		wantErr bool
	}{
		{"01", true},
		{"0.1", false},
		{"0xA", true},
		{"1e400", true},
		{"-0.5", false},
		{"0", false},
	} {
		t.Run(test.input, func(t *testing.T) {
			_, err := ParseString(test.input)
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseDuplicateKeyFails(t *testing.T) {
	_, err := ParseString(`{"a":1,"a":2}`)
	require.Error(t, err)
}

func TestParseEmbeddedNULKeyFails(t *testing.T) {
	backslash := byte(0x5c)
	input := append([]byte{'{', '"'}, append([]byte{backslash, 'u', '0', '0', '0', '0'}, []byte(`":1}`)...)...)
	_, err := ParseBytes(input)
	require.Error(t, err)
}

func TestParseTrailingCommaTolerance(t *testing.T) {
	v, err := ParseString(`{"a":1,}`)
	require.NoError(t, err)
	obj, _ := v.AsObject()
	require.Equal(t, 1, obj.Len())

	_, err = ParseString(`{,}`)
	require.Error(t, err)

	v, err = ParseString(`[1,2,]`)
	require.NoError(t, err)
	arr, _ := v.AsArray()
	require.Equal(t, 2, arr.Len())
}

func TestEndToEndSingleKeyObject(t *testing.T) {
	v, err := ParseString(`{"k":"v"}`)
	require.NoError(t, err)
	obj, _ := v.AsObject()
	require.Equal(t, 1, obj.Len())
	inner, ok := obj.Get("k")
	require.True(t, ok)
	s, _ := inner.AsString()
	require.Equal(t, "v", s)
	require.Same(t, v, inner.Parent())
}

func TestEndToEndNumberArray(t *testing.T) {
	v, err := ParseString(`[1,2,3]`)
	require.NoError(t, err)
	arr, _ := v.AsArray()
	require.Equal(t, 3, arr.Len())
	require.Equal(t, 1.0, arr.GetNumber(0))
	require.Equal(t, 2.0, arr.GetNumber(1))
	require.Equal(t, 3.0, arr.GetNumber(2))
}

func TestEndToEndBareBoolean(t *testing.T) {
	v, err := ParseString(`true`)
	require.NoError(t, err)
	require.Equal(t, TypeBoolean, v.Type())
	require.Equal(t, 0.0, getNumberOrZero(v))
}

func getNumberOrZero(v *Value) float64 {
	n, err := v.AsNumber()
	if err != nil {
		return 0
	}
	return n
}

func TestEndToEndSetRemoveInvariants(t *testing.T) {
	objVal := NewObject()
	obj, _ := objVal.AsObject()
	one, _ := NewNumber(1)
	require.NoError(t, obj.Set("a", one))
	require.NoError(t, obj.Set("b", NewNull()))
	require.NoError(t, obj.Remove("a"))

	require.Equal(t, 1, obj.Len())
	v, ok := obj.Get("a")
	require.False(t, ok)
	require.Nil(t, v)
	b, ok := obj.Get("b")
	require.True(t, ok)
	require.Equal(t, TypeNull, b.Type())
	require.NoError(t, obj.CheckInvariants())
}

func TestParseBOMIsTrimmed(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a":1}`)...)
	v, err := ParseBytes(input)
	require.NoError(t, err)
	require.Equal(t, TypeObject, v.Type())
}

// snapshot projects a Value into plain Go values (nil/bool/float64/
// string/[]any/map[string]any) so go-cmp can diff trees without
// touching jsontree's unexported fields or following parent
// back-references.
func snapshot(v *Value) any {
	switch v.Type() {
	case TypeNull:
		return nil
	case TypeBoolean:
		b, _ := v.AsBool()
		return b
	case TypeNumber:
		n, _ := v.AsNumber()
		return n
	case TypeString:
		s, _ := v.AsString()
		return s
	case TypeArray:
		arr, _ := v.AsArray()
		out := make([]any, 0, arr.Len())
		arr.Each(func(_ int, elem *Value) bool {
			out = append(out, snapshot(elem))
			return true
		})
		return out
	case TypeObject:
		obj, _ := v.AsObject()
		out := make(map[string]any, obj.Len())
		obj.Each(func(name string, val *Value) bool {
			out[name] = snapshot(val)
			return true
		})
		return out
	default:
		return "<error>"
	}
}

// reserialize writes v back to JSON text using jsontree's own string
// escaper and insertion order, independent of the canon package, so
// the round-trip law in §8 ("parsing the serialization of T yields a
// tree equal to T") can be exercised from within this package.
func reserialize(v *Value) string {
	switch v.Type() {
	case TypeNull:
		return "null"
	case TypeBoolean:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case TypeNumber:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'g', -1, 64)
	case TypeString:
		s, _ := v.AsString()
		return EscapeString(s)
	case TypeArray:
		arr, _ := v.AsArray()
		var sb strings.Builder
		sb.WriteByte('[')
		first := true
		arr.Each(func(_ int, elem *Value) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(reserialize(elem))
			return true
		})
		sb.WriteByte(']')
		return sb.String()
	case TypeObject:
		obj, _ := v.AsObject()
		var sb strings.Builder
		sb.WriteByte('{')
		first := true
		obj.Each(func(name string, val *Value) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(EscapeString(name))
			sb.WriteByte(':')
			sb.WriteString(reserialize(val))
			return true
		})
		sb.WriteByte('}')
		return sb.String()
	default:
		return "null"
	}
}

func TestRoundTripParseSerializeParseIsStructurallyEqual(t *testing.T) {
	for _, doc := range []string{
		`{"k":"v"}`,
		`[1,2,3]`,
		`true`,
		`null`,
		`{"a":1,"b":[2,3,{"c":"d"}],"e":null,"f":false}`,
		`"café 𝄞"`,
		`[[[[1]]]]`,
	} {
		t.Run(doc, func(t *testing.T) {
			original, err := ParseString(doc)
			require.NoError(t, err)

			reparsed, err := ParseString(reserialize(original))
			require.NoError(t, err)

			require.True(t, Equal(original, reparsed))
			if diff := cmp.Diff(snapshot(original), snapshot(reparsed)); diff != "" {
				t.Errorf("round trip changed structure (-original +reparsed):\n%s", diff)
			}
		})
	}
}
