package jsontree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayAppendAndGet(t *testing.T) {
	arrVal := NewArray()
	arr, err := arrVal.AsArray()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := NewNumber(float64(i))
		require.NoError(t, err)
		require.NoError(t, arr.Append(v))
	}
	require.Equal(t, 3, arr.Len())

	v, ok := arr.Get(1)
	require.True(t, ok)
	n, _ := v.AsNumber()
	require.Equal(t, 1.0, n)

	_, ok = arr.Get(5)
	require.False(t, ok)
}

func TestArrayAppendRejectsParented(t *testing.T) {
	arrVal := NewArray()
	arr, _ := arrVal.AsArray()
	child := NewNull()
	require.NoError(t, arr.Append(child))
	require.Error(t, arr.Append(child))
}

func TestArrayRemoveDetachesAndShifts(t *testing.T) {
	doc, err := ParseString(`[1,2,3]`)
	require.NoError(t, err)
	arr, _ := doc.AsArray()

	removed, _ := arr.Get(0)
	second, _ := arr.Get(1)
	require.NoError(t, arr.Remove(0))
	require.Equal(t, 2, arr.Len())
	require.Nil(t, removed.Parent())

	first, ok := arr.Get(0)
	require.True(t, ok)
	require.Same(t, second, first)
}

func TestArrayReplace(t *testing.T) {
	doc, err := ParseString(`[1,2,3]`)
	require.NoError(t, err)
	arr, _ := doc.AsArray()
	old, _ := arr.Get(0)

	replacement, _ := NewNumber(99)
	require.NoError(t, arr.Replace(0, replacement))
	require.Nil(t, old.Parent())

	v, _ := arr.Get(0)
	n, _ := v.AsNumber()
	require.Equal(t, 99.0, n)
}

func TestArrayClearDetachesAll(t *testing.T) {
	doc, err := ParseString(`[1,2,3]`)
	require.NoError(t, err)
	arr, _ := doc.AsArray()
	children := make([]*Value, 0, 3)
	arr.Each(func(_ int, v *Value) bool {
		children = append(children, v)
		return true
	})

	arr.Clear()
	require.Equal(t, 0, arr.Len())
	for _, c := range children {
		require.Nil(t, c.Parent())
	}
}

func TestArraySentinelAccessors(t *testing.T) {
	doc, err := ParseString(`[1,"s",true,{},[]]`)
	require.NoError(t, err)
	arr, _ := doc.AsArray()

	require.Equal(t, 1.0, arr.GetNumber(0))
	require.Equal(t, 0.0, arr.GetNumber(1))
	require.Equal(t, "s", arr.GetString(1))
	require.Equal(t, "", arr.GetString(0))
	require.Equal(t, 1, arr.GetBoolean(2))
	require.Equal(t, -1, arr.GetBoolean(0))
	require.NotNil(t, arr.GetObject(3))
	require.Nil(t, arr.GetObject(0))
	require.NotNil(t, arr.GetArray(4))
	require.Nil(t, arr.GetArray(0))
}
