package slab

import (
	"fmt"
	"math/rand"
)

// Array is a contiguous growable sequence with explicit length and
// capacity. Elements at [0, Len()) are live; the remaining slots are
// uninitialized. The buffer is exclusively owned: duplicating an Array
// requires Clone, and releasing the live elements' owned resources is the
// caller's responsibility (directly or via Release with traits).
type Array[T any] struct {
	data   []T // len(data) is the capacity
	length int
}

// NewArray returns an empty sequence with the given initial capacity.
// Capacities below 1 are raised to 1.
func NewArray[T any](initialCapacity int) Array[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return Array[T]{data: make([]T, initialCapacity)}
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int { return a.length }

// Cap returns the allocated slot count.
func (a *Array[T]) Cap() int { return len(a.data) }

// Slice returns the live elements as a slice sharing the Array's buffer.
// The view is invalidated by any operation that grows the sequence.
func (a *Array[T]) Slice() []T { return a.data[:a.length] }

// At returns the element at index i.
func (a *Array[T]) At(i int) T { return a.data[i] }

// Ref returns a pointer to the element at index i, valid until the
// sequence grows.
func (a *Array[T]) Ref(i int) *T { return &a.data[i] }

// First returns the first live element.
func (a *Array[T]) First() T { return a.data[0] }

// Last returns the last live element.
func (a *Array[T]) Last() T { return a.data[a.length-1] }

// Clear forgets all live elements without releasing them.
func (a *Array[T]) Clear() { a.length = 0 }

// EnsureCapacity grows the buffer, doubling until it can hold at least n
// elements. Existing elements are relocated by value copy.
func (a *Array[T]) EnsureCapacity(n int) {
	if n <= len(a.data) {
		return
	}
	capacity := len(a.data)
	if capacity == 0 {
		capacity = 1
	}
	for n > capacity {
		capacity *= 2
	}
	data := make([]T, capacity)
	copy(data, a.data[:a.length])
	a.data = data
}

// Append adds an element at the end, growing if necessary.
func (a *Array[T]) Append(v T) {
	a.EnsureCapacity(a.length + 1)
	a.data[a.length] = v
	a.length++
}

// AppendSlice adds the given elements at the end in order.
func (a *Array[T]) AppendSlice(vs []T) {
	a.EnsureCapacity(a.length + len(vs))
	copy(a.data[a.length:], vs)
	a.length += len(vs)
}

// Pop removes and returns the last element.
func (a *Array[T]) Pop() T {
	a.length--
	return a.data[a.length]
}

// Remove deletes the element at index i by moving the last element into
// its place. O(1); element order is not preserved.
func (a *Array[T]) Remove(i int) {
	a.data[i] = a.data[a.length-1]
	a.length--
}

// IndexOf returns the index of the first element equal to v, or Len() if
// there is none.
func (a *Array[T]) IndexOf(v T, equal func(a, b T) bool) int {
	for i := 0; i < a.length; i++ {
		if equal(a.data[i], v) {
			return i
		}
	}
	return a.length
}

// Contains reports whether some live element equals v.
func (a *Array[T]) Contains(v T, equal func(a, b T) bool) bool {
	return a.IndexOf(v, equal) < a.length
}

// Unique removes consecutive duplicates in a single forward pass. The
// sequence must already be sorted for the result to be duplicate-free.
func (a *Array[T]) Unique(equal func(a, b T) bool) {
	a.length = len(Unique(a.Slice(), equal))
}

// Clone produces an independent deep copy with the same length and
// capacity. If an element clone fails, the elements copied so far are
// released and the error is returned.
func (a *Array[T]) Clone(t Traits[T]) (Array[T], error) {
	c := Array[T]{data: make([]T, len(a.data))}
	for i := 0; i < a.length; i++ {
		v, err := t.clone(a.data[i])
		if err != nil {
			for j := 0; j < i; j++ {
				t.release(&c.data[j])
			}
			return Array[T]{}, fmt.Errorf("clone element %d: %w", i, err)
		}
		c.data[i] = v
	}
	c.length = a.length
	return c, nil
}

// Release frees every live element's owned resources and drops the buffer.
// The Array must not be used afterward.
func (a *Array[T]) Release(t Traits[T]) {
	for i := 0; i < a.length; i++ {
		t.release(&a.data[i])
	}
	a.data = nil
	a.length = 0
}

// SizeOf reports the sequence's total owned footprint: live elements by
// their traits, slack slots by the footprint of a zero element.
func (a *Array[T]) SizeOf(t Traits[T]) uint64 {
	var zero T
	sum := uint64(16)
	for i := 0; i < a.length; i++ {
		sum += t.sizeOf(a.data[i])
	}
	return sum + uint64(len(a.data)-a.length)*t.sizeOf(zero)
}

// Swap exchanges the buffers of two sequences.
func (a *Array[T]) Swap(b *Array[T]) {
	a.data, b.data = b.data, a.data
	a.length, b.length = b.length, a.length
}

// Unique removes consecutive duplicates from s in place and returns the
// compacted prefix. s must be sorted for the result to be duplicate-free.
func Unique[T any](s []T, equal func(a, b T) bool) []T {
	if len(s) == 0 {
		return s
	}
	result := 0
	for i := 1; i < len(s); i++ {
		if !equal(s[result], s[i]) {
			result++
			s[result] = s[i]
		}
	}
	return s[:result+1]
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i := 0; i < len(s)/2; i++ {
		other := len(s) - i - 1
		s[i], s[other] = s[other], s[i]
	}
}

// Shuffle permutes s uniformly at random (Fisher-Yates).
func Shuffle[T any](s []T, rnd *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		next := rnd.Intn(i + 1)
		if next != i {
			s[next], s[i] = s[i], s[next]
		}
	}
}

// ShufflePairs permutes keys and values in lockstep.
func ShufflePairs[K, V any](keys []K, values []V, rnd *rand.Rand) {
	for i := len(keys) - 1; i > 0; i-- {
		next := rnd.Intn(i + 1)
		if next != i {
			keys[next], keys[i] = keys[i], keys[next]
			values[next], values[i] = values[i], values[next]
		}
	}
}

// InsertionSort sorts s in place; efficient for short runs.
func InsertionSort[T any](s []T, less func(a, b T) bool) {
	for i := 1; i < len(s); i++ {
		item := s[i]
		hole := i
		for hole > 0 && less(item, s[hole-1]) {
			s[hole] = s[hole-1]
			hole--
		}
		s[hole] = item
	}
}

// InsertionSortPairs sorts keys in place, moving values in lockstep.
func InsertionSortPairs[K, V any](keys []K, values []V, less func(a, b K) bool) {
	for i := 1; i < len(keys); i++ {
		item := keys[i]
		value := values[i]
		hole := i
		for hole > 0 && less(item, keys[hole-1]) {
			keys[hole] = keys[hole-1]
			values[hole] = values[hole-1]
			hole--
		}
		keys[hole] = item
		values[hole] = value
	}
}

// Hoare partition around the middle element. Returns the new left and
// right cursor positions; the ranges [start, r] and [l, end] remain to be
// sorted.
func partition[T any](s []T, start, end int, less func(a, b T) bool) (l, r int) {
	p := s[(start+end)/2]
	l, r = start, end
	for {
		for less(s[l], p) {
			l++
		}
		for less(p, s[r]) {
			r--
		}
		if l == r {
			l++
			if r > 0 {
				r--
			}
			return l, r
		} else if l > r {
			return l, r
		}
		s[l], s[r] = s[r], s[l]
		l++
		r--
	}
}

func partitionPairs[K, V any](keys []K, values []V, start, end int, less func(a, b K) bool) (l, r int) {
	p := keys[(start+end)/2]
	l, r = start, end
	for {
		for less(keys[l], p) {
			l++
		}
		for less(p, keys[r]) {
			r--
		}
		if l == r {
			l++
			if r > 0 {
				r--
			}
			return l, r
		} else if l > r {
			return l, r
		}
		values[l], values[r] = values[r], values[l]
		keys[l], keys[r] = keys[r], keys[l]
		l++
		r--
	}
}

func sortRange[T any](s []T, start, end int, less func(a, b T) bool) {
	if start >= end {
		return
	} else if start+16 >= end {
		InsertionSort(s[start:end+1], less)
		return
	}
	l, r := partition(s, start, end, less)
	sortRange(s, start, r, less)
	sortRange(s, l, end, less)
}

func sortPairsRange[K, V any](keys []K, values []V, start, end int, less func(a, b K) bool) {
	if start >= end {
		return
	} else if start+16 >= end {
		InsertionSortPairs(keys[start:end+1], values[start:end+1], less)
		return
	}
	l, r := partitionPairs(keys, values, start, end, less)
	sortPairsRange(keys, values, start, r, less)
	sortPairsRange(keys, values, l, end, less)
}

// Sort sorts s in place with a hybrid quicksort: runs of at most 16
// elements use insertion sort, larger ranges Hoare partitioning around the
// middle element, recursing on both sides.
func Sort[T any](s []T, less func(a, b T) bool) {
	if len(s) == 0 {
		return
	}
	sortRange(s, 0, len(s)-1, less)
}

// SortPairs sorts keys with the same hybrid quicksort, moving values in
// lockstep.
func SortPairs[K, V any](keys []K, values []V, less func(a, b K) bool) {
	if len(keys) == 0 {
		return
	}
	sortPairsRange(keys, values, 0, len(keys)-1, less)
}
