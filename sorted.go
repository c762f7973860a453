package slab

// Merge-style algorithms over ascending, duplicate-free slices. All take a
// three-way comparison returning a negative, zero or positive int, the same
// convention as the key ordering used by snapshot serialization. Inputs
// that are unsorted or contain duplicates give unspecified results.

// SearchFirstGE returns the smallest index in [0, len(s)) whose element
// compares >= v, or len(s) if every element is smaller. s must be
// ascending.
func SearchFirstGE[T any](s []T, v T, cmp func(a, b T) int) int {
	min, max := 0, len(s)
	for min < max {
		mid := (min + max) / 2
		if cmp(s[mid], v) < 0 {
			min = mid + 1
		} else {
			max = mid
		}
	}
	return min
}

// SortedUnion appends the set union of a and b to dst and returns the
// extended slice. Equal heads are emitted once.
func SortedUnion[T any](dst, a, b []T, cmp func(a, b T) int) []T {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			dst = append(dst, a[i])
			i++
		case c > 0:
			dst = append(dst, b[j])
			j++
		default:
			dst = append(dst, a[i])
			i++
			j++
		}
	}
	dst = append(dst, a[i:]...)
	dst = append(dst, b[j:]...)
	return dst
}

// SortedIntersect appends the set intersection of a and b to dst and
// returns the extended slice.
func SortedIntersect[T any](dst, a, b []T, cmp func(a, b T) int) []T {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			dst = append(dst, a[i])
			i++
			j++
		}
	}
	return dst
}

// SortedIntersectSparse is SortedIntersect with binary-search jumps: the
// trailing cursor leaps directly to the first element >= the other head.
// Asymptotically faster when one input is much sparser than the other.
func SortedIntersectSparse[T any](dst, a, b []T, cmp func(a, b T) int) []T {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			i += SearchFirstGE(a[i:], b[j], cmp)
		case c > 0:
			j += SearchFirstGE(b[j:], a[i], cmp)
		default:
			dst = append(dst, a[i])
			i++
			j++
		}
	}
	return dst
}

// SortedSubtract appends the elements of a with no match in b to dst and
// returns the extended slice.
func SortedSubtract[T any](dst, a, b []T, cmp func(a, b T) int) []T {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			dst = append(dst, a[i])
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return append(dst, a[i:]...)
}

// IsSortedSubset reports whether every element of a appears in b.
func IsSortedSubset[T any](a, b []T, cmp func(a, b T) int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			return false
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return i == len(a)
}

// SortedDisjoint reports whether a and b have no element in common.
func SortedDisjoint[T any](a, b []T, cmp func(a, b T) int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		c := cmp(a[i], b[j])
		switch {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			return false
		}
	}
	return true
}
