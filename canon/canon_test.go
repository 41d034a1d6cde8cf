package canon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/jsontree"
	"github.com/mcvoid/jsontree/canon"
)

func marshalString(t *testing.T, doc string) string {
	t.Helper()
	v, err := jsontree.ParseString(doc)
	require.NoError(t, err)
	out, err := canon.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestMarshalRemovesInsignificantWhitespace(t *testing.T) {
	require.Equal(t, `{"a":1}`, marshalString(t, `{ "a" : 1 }`))
}

func TestMarshalSortsObjectKeysByUTF16CodeUnit(t *testing.T) {
	require.Equal(t, `{"a":1,"z":3}`, marshalString(t, `{"z":3,"a":1}`))
}

func TestMarshalPreservesArrayOrder(t *testing.T) {
	require.Equal(t, `[3,1,2]`, marshalString(t, `[3,1,2]`))
}

func TestMarshalEscapesControlCharactersOnly(t *testing.T) {
	require.Equal(t, `"\b\t\n\f\r"`, marshalString(t, `"\b\t\n\f\r"`))
}

func TestMarshalDoesNotEscapeSolidus(t *testing.T) {
	require.Equal(t, `"a/b"`, marshalString(t, `"a\/b"`))
}

func TestMarshalIsDeterministicAcrossInsertionOrder(t *testing.T) {
	a := marshalString(t, `{"b":2,"a":1,"c":3}`)
	b := marshalString(t, `{"c":3,"a":1,"b":2}`)
	require.Equal(t, a, b)
}

func TestMarshalNestedStructure(t *testing.T) {
	got := marshalString(t, `{"b":[1,2,{"y":1,"x":2}],"a":null}`)
	require.Equal(t, `{"a":null,"b":[1,2,{"x":2,"y":1}]}`, got)
}

func TestMarshalRejectsErrorTypedValue(t *testing.T) {
	doc, err := jsontree.ParseString(`{}`)
	require.NoError(t, err)
	errVal := doc.Key("missing")
	require.Equal(t, jsontree.TypeError, errVal.Type())
	_, err = canon.Marshal(errVal)
	require.Error(t, err)
}
