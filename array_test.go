package slab

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

func intLess(a, b int) bool  { return a < b }
func intEqual(a, b int) bool { return a == b }

func TestArrayAppendGrowth(t *testing.T) {
	t.Parallel()
	a := NewArray[byte](16)
	for i := 0; i < 20; i++ {
		a.Append(byte('a' + i%26))
	}
	require.Equal(t, 20, a.Len())
	require.Equal(t, 32, a.Cap())
	for i := 0; i < 50; i++ {
		a.Append(byte('a' + i%26))
	}
	require.Equal(t, 70, a.Len())
	require.Equal(t, 128, a.Cap())
	assert.Equal(t, byte('a'), a.First())
}

func TestArrayGrowthProperty(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("final capacity is the smallest power-of-two multiple of the initial capacity that fits",
		prop.ForAll(
			func(initial, n int) bool {
				a := NewArray[int](initial)
				for i := 0; i < n; i++ {
					a.Append(i)
				}
				expected := initial
				if expected < 1 {
					expected = 1
				}
				for expected < n {
					expected *= 2
				}
				return a.Len() == n && a.Cap() == expected
			},
			gen.IntRange(1, 64),
			gen.IntRange(0, 500),
		))
	properties.TestingRun(t)
}

func TestArrayPopRemove(t *testing.T) {
	t.Parallel()
	a := NewArray[int](4)
	a.AppendSlice([]int{10, 20, 30, 40})
	require.Equal(t, 40, a.Pop())
	require.Equal(t, 3, a.Len())
	a.Remove(0)
	assert.Equal(t, []int{30, 20}, a.Slice())
	assert.Equal(t, 1, a.IndexOf(20, intEqual))
	assert.True(t, a.Contains(30, intEqual))
	assert.False(t, a.Contains(40, intEqual))
}

func TestSortConcrete(t *testing.T) {
	t.Parallel()
	v := []int{4, -6, 4, 2, 0, -6, 1, 4, 2}
	Sort(v, intLess)
	require.Equal(t, []int{-6, -6, 0, 1, 2, 2, 4, 4, 4}, v)
	v = Unique(v, intEqual)
	require.Equal(t, []int{-6, 0, 1, 2, 4}, v)
}

func TestSortProperty(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("Sort agrees with the standard library",
		prop.ForAll(
			func(v []int) bool {
				mine := append([]int{}, v...)
				theirs := append([]int{}, v...)
				Sort(mine, intLess)
				sort.Ints(theirs)
				if len(mine) != len(theirs) {
					return false
				}
				for i := range mine {
					if mine[i] != theirs[i] {
						return false
					}
				}
				return true
			},
			gen.SliceOf(gen.IntRange(-1000, 1000)),
		))
	properties.TestingRun(t)
}

func TestSortPairsLockstep(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(42))
	keys := make([]int, 200)
	values := make([]int, 200)
	for i := range keys {
		keys[i] = i
		values[i] = i * 10
	}
	ShufflePairs(keys, values, rnd)
	SortPairs(keys, values, intLess)
	for i := range keys {
		require.Equal(t, i, keys[i])
		require.Equal(t, i*10, values[i])
	}
}

func TestReverse(t *testing.T) {
	t.Parallel()
	v := []int{1, 2, 3, 4, 5}
	Reverse(v)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, v)
	w := []int{1, 2}
	Reverse(w)
	assert.Equal(t, []int{2, 1}, w)
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(7))
	v := make([]int, 100)
	for i := range v {
		v[i] = i
	}
	Shuffle(v, rnd)
	sorted := append([]int{}, v...)
	sort.Ints(sorted)
	for i := range sorted {
		require.Equal(t, i, sorted[i])
	}
}

func TestArrayCloneIndependence(t *testing.T) {
	t.Parallel()
	a := NewArray[[]byte](2)
	a.Append([]byte("one"))
	a.Append([]byte("two"))
	c, err := a.Clone(BytesTraits())
	require.NoError(t, err)
	(*c.Ref(0))[0] = 'X'
	assert.Equal(t, []byte("one"), a.At(0))
	assert.Equal(t, []byte("Xne"), c.At(0))
	c.Release(BytesTraits())
}

func TestArraySwap(t *testing.T) {
	t.Parallel()
	a := NewArray[int](2)
	a.Append(1)
	b := NewArray[int](4)
	b.AppendSlice([]int{2, 3})
	a.Swap(&b)
	assert.Equal(t, []int{2, 3}, a.Slice())
	assert.Equal(t, []int{1}, b.Slice())
}
