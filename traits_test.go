package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundamentalTraits(t *testing.T) {
	t.Parallel()
	tr := IntTraits()
	assert.True(t, tr.Equal(3, 3))
	assert.False(t, tr.Equal(3, 4))
	assert.True(t, tr.IsEmpty(0))
	assert.False(t, tr.IsEmpty(1))
	assert.Equal(t, tr.Hash(5), tr.Hash(5))
	assert.NotEqual(t, tr.Hash(5), tr.Hash(6))
	assert.Equal(t, uint64(8), tr.SizeOf(5))
}

func TestStringTraits(t *testing.T) {
	t.Parallel()
	tr := StringTraits()
	assert.True(t, tr.IsEmpty(""))
	assert.False(t, tr.IsEmpty("x"))
	assert.Equal(t, tr.Hash("foo"), tr.Hash("foo"))
	assert.Equal(t, uint64(8+3), tr.SizeOf("foo"))
}

func TestBytesTraits(t *testing.T) {
	t.Parallel()
	tr := BytesTraits()
	assert.True(t, tr.IsEmpty(nil))
	assert.False(t, tr.IsEmpty([]byte{}))
	orig := []byte("abc")
	c, err := tr.Clone(orig)
	require.NoError(t, err)
	c[0] = 'X'
	assert.Equal(t, []byte("abc"), orig)
	tr.Release(&c)
	assert.Nil(t, c)
}

func TestNilLifecycleOpsAreTrivial(t *testing.T) {
	t.Parallel()
	var tr Traits[int]
	v, err := tr.clone(7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	tr.release(&v)
	assert.Equal(t, uint64(0), tr.sizeOf(7))
	assert.Equal(t, 0, tr.empty())
}
