package slab

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int { return a - b }

func TestSortedUnionConcrete(t *testing.T) {
	t.Parallel()
	u := SortedUnion(nil, []int{1, 2, 4, 4, 6}, []int{2, 3, 4}, intCmp)
	u = Unique(u, intEqual)
	require.Equal(t, []int{1, 2, 3, 4, 6}, u)
}

func TestSearchFirstGE(t *testing.T) {
	t.Parallel()
	s := []int{2, 4, 6, 8}
	assert.Equal(t, 0, SearchFirstGE(s, 1, intCmp))
	assert.Equal(t, 1, SearchFirstGE(s, 3, intCmp))
	assert.Equal(t, 1, SearchFirstGE(s, 4, intCmp))
	assert.Equal(t, 3, SearchFirstGE(s, 8, intCmp))
	assert.Equal(t, 4, SearchFirstGE(s, 9, intCmp))
	assert.Equal(t, 0, SearchFirstGE(nil, 1, intCmp))
}

// sortedUnique turns an arbitrary slice into a valid input: ascending and
// duplicate-free.
func sortedUnique(v []int) []int {
	if len(v) == 0 {
		return v
	}
	sort.Ints(v)
	return Unique(v, intEqual)
}

func isAscendingUnique(v []int) bool {
	for i := 1; i < len(v); i++ {
		if v[i-1] >= v[i] {
			return false
		}
	}
	return true
}

func toSet(v []int) map[int]bool {
	s := make(map[int]bool, len(v))
	for _, x := range v {
		s[x] = true
	}
	return s
}

func TestSortedSetLaws(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	inputs := gen.SliceOf(gen.IntRange(-40, 40))

	properties.Property("union is ascending, duplicate-free, and the mathematical union",
		prop.ForAll(
			func(a, b []int) bool {
				a, b = sortedUnique(a), sortedUnique(b)
				u := SortedUnion(nil, a, b, intCmp)
				if !isAscendingUnique(u) {
					return false
				}
				want := toSet(a)
				for _, x := range b {
					want[x] = true
				}
				got := toSet(u)
				if len(got) != len(want) {
					return false
				}
				for x := range want {
					if !got[x] {
						return false
					}
				}
				return true
			},
			inputs, inputs,
		))
	properties.Property("intersect is contained in both inputs and matches the sparse variant",
		prop.ForAll(
			func(a, b []int) bool {
				a, b = sortedUnique(a), sortedUnique(b)
				i := SortedIntersect(nil, a, b, intCmp)
				if !isAscendingUnique(i) {
					return false
				}
				as, bs := toSet(a), toSet(b)
				for _, x := range i {
					if !as[x] || !bs[x] {
						return false
					}
				}
				sparse := SortedIntersectSparse(nil, a, b, intCmp)
				if len(sparse) != len(i) {
					return false
				}
				for k := range i {
					if sparse[k] != i[k] {
						return false
					}
				}
				return true
			},
			inputs, inputs,
		))
	properties.Property("subtract and intersect partition the first input",
		prop.ForAll(
			func(a, b []int) bool {
				a, b = sortedUnique(a), sortedUnique(b)
				sub := SortedSubtract(nil, a, b, intCmp)
				inter := SortedIntersect(nil, a, b, intCmp)
				recombined := SortedUnion(nil, sub, inter, intCmp)
				if len(recombined) != len(a) {
					return false
				}
				for i := range a {
					if recombined[i] != a[i] {
						return false
					}
				}
				return true
			},
			inputs, inputs,
		))
	properties.Property("subset holds exactly when subtraction is empty",
		prop.ForAll(
			func(a, b []int) bool {
				a, b = sortedUnique(a), sortedUnique(b)
				return IsSortedSubset(a, b, intCmp) == (len(SortedSubtract(nil, a, b, intCmp)) == 0)
			},
			inputs, inputs,
		))
	properties.Property("disjointness holds exactly when intersection is empty",
		prop.ForAll(
			func(a, b []int) bool {
				a, b = sortedUnique(a), sortedUnique(b)
				return SortedDisjoint(a, b, intCmp) == (len(SortedIntersect(nil, a, b, intCmp)) == 0)
			},
			inputs, inputs,
		))
	properties.Property("SearchFirstGE agrees with the standard library",
		prop.ForAll(
			func(a []int, needle int) bool {
				a = sortedUnique(a)
				return SearchFirstGE(a, needle, intCmp) == sort.SearchInts(a, needle)
			},
			inputs, gen.IntRange(-50, 50),
		))
	properties.TestingRun(t)
}

func TestSortedSubtract(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{1, 5}, SortedSubtract(nil, []int{1, 3, 5}, []int{2, 3, 4}, intCmp))
	assert.True(t, IsSortedSubset([]int{3}, []int{1, 3, 5}, intCmp))
	assert.False(t, IsSortedSubset([]int{2}, []int{1, 3, 5}, intCmp))
	assert.True(t, SortedDisjoint([]int{1, 5}, []int{2, 4}, intCmp))
	assert.False(t, SortedDisjoint([]int{1, 4}, []int{2, 4}, intCmp))
}
