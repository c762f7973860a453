package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayMapPutGet(t *testing.T) {
	t.Parallel()
	m := NewArrayMap(testIntTraits(), Traits[string]{}, 2)
	require.True(t, m.Put(1, "one"))
	require.True(t, m.Put(2, "two"))
	require.True(t, m.Put(3, "three"))
	require.Equal(t, 3, m.Len())
	require.Equal(t, 4, m.Cap())

	require.False(t, m.Put(2, "deux"))
	require.Equal(t, 3, m.Len())
	v, found := m.Get(2)
	require.True(t, found)
	assert.Equal(t, "deux", v)
	_, found = m.Get(9)
	assert.False(t, found)
}

func TestArrayMapInsertionOrder(t *testing.T) {
	t.Parallel()
	m := NewArrayMap(testIntTraits(), Traits[string]{}, 1)
	m.Put(3, "c")
	m.Put(1, "a")
	m.Put(2, "b")
	var keys []int
	err := m.Iter(func(k int, _ string) error {
		keys = append(keys, k)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, keys)
	assert.Equal(t, []int{3, 1, 2}, m.Keys())
	assert.Equal(t, []string{"c", "a", "b"}, m.Values())
}

func TestArrayMapRemoveSwapsLast(t *testing.T) {
	t.Parallel()
	m := NewArrayMap(testIntTraits(), Traits[string]{}, 4)
	m.Put(1, "a")
	m.Put(2, "b")
	m.Put(3, "c")
	require.True(t, m.Remove(1))
	require.False(t, m.Remove(1))
	require.Equal(t, 2, m.Len())
	assert.Equal(t, []int{3, 2}, m.Keys())
	v, found := m.Get(3)
	require.True(t, found)
	assert.Equal(t, "c", v)
}

func TestArrayMapGetRef(t *testing.T) {
	t.Parallel()
	m := NewArrayMap(testIntTraits(), Traits[int]{}, 2)
	m.Put(5, 50)
	ref, found := m.GetRef(5)
	require.True(t, found)
	*ref = 55
	v, _ := m.Get(5)
	assert.Equal(t, 55, v)
}

func TestArrayMapCloneIndependence(t *testing.T) {
	t.Parallel()
	m := NewArrayMap(testIntTraits(), BytesTraits(), 2)
	m.Put(1, []byte("one"))
	c, err := m.Clone()
	require.NoError(t, err)
	ref, found := c.GetRef(1)
	require.True(t, found)
	(*ref)[0] = 'X'
	v, _ := m.Get(1)
	assert.Equal(t, []byte("one"), v)
	c.Release()
}

func TestArrayMapSwap(t *testing.T) {
	t.Parallel()
	a := NewArrayMap(testIntTraits(), Traits[string]{}, 2)
	a.Put(1, "one")
	b := NewArrayMap(testIntTraits(), Traits[string]{}, 2)
	b.Put(2, "two")
	b.Put(3, "three")
	a.Swap(&b)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
	v, found := a.Get(3)
	require.True(t, found)
	assert.Equal(t, "three", v)
}
