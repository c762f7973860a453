package slab

import (
	"fmt"
	"os"
)

// resizeThreshold is the load factor at which the table doubles: a table
// resizes eagerly while size >= capacity/2, so size < capacity always
// holds and a probe is guaranteed to find an empty slot.
const resizeThreshold = 2

// indexBetween reports whether probe lies in the open-ended cyclic
// interval (start, end], in the integers modulo the table capacity. It
// decides whether a key may be shifted backward during deletion: a key
// whose probe start falls strictly between the current gap and the key's
// slot must not move in front of its own probe sequence.
func indexBetween(probe, start, end int) bool {
	if end >= start {
		return probe > start && probe <= end
	}
	return probe <= end || probe > start
}

// Set is a linear-probed open-addressing hash table. A slot is either
// occupied or holds the key type's empty sentinel; there is no deleted
// state, and removal shifts subsequent entries backward to keep every
// probe sequence intact.
//
// The traits' Equal, Hash, IsEmpty and Empty operations are required.
// Looking up or inserting the sentinel value is a contract violation;
// with Debug set, violations are reported on stderr.
type Set[T any] struct {
	traits Traits[T]
	keys   []T
	size   int

	// Debug enables contract-violation warnings on stderr.
	Debug bool
}

// NewSet returns an empty set with the given initial capacity (raised to
// at least 1).
func NewSet[T any](traits Traits[T], initialCapacity int) Set[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	s := Set[T]{traits: traits, keys: make([]T, initialCapacity)}
	s.setAllEmpty(s.keys)
	return s
}

// NewSetOf returns a set holding the given elements, sized so that no
// resize happens while inserting them.
func NewSetOf[T any](traits Traits[T], elements ...T) Set[T] {
	s := NewSet(traits, len(elements)*resizeThreshold+1)
	for _, v := range elements {
		s.Add(v)
	}
	return s
}

func (s *Set[T]) setAllEmpty(keys []T) {
	if s.traits.Empty == nil {
		return
	}
	empty := s.traits.Empty()
	for i := range keys {
		keys[i] = empty
	}
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return s.size }

// Cap returns the slot count of the table.
func (s *Set[T]) Cap() int { return len(s.keys) }

func (s *Set[T]) warnEmpty(op string, v T) {
	if s.Debug && s.traits.IsEmpty(v) {
		fmt.Fprintf(os.Stderr, "slab: Set.%s called with the empty sentinel\n", op)
	}
}

func (s *Set[T]) probeStart(v T) int {
	return int(s.traits.Hash(v) % uint64(len(s.keys)))
}

// nextEmpty returns the first vacant slot on v's probe sequence. Only
// valid while size < capacity.
func (s *Set[T]) nextEmpty(keys []T, v T) int {
	index := int(s.traits.Hash(v) % uint64(len(keys)))
	for !s.traits.IsEmpty(keys[index]) {
		index = (index + 1) % len(keys)
	}
	return index
}

// Resize rehashes the table into a fresh slot array of the given
// capacity. Keys are relocated by value copy; their probe positions are
// recomputed against the new capacity.
func (s *Set[T]) Resize(newCapacity int) {
	keys := make([]T, newCapacity)
	s.setAllEmpty(keys)
	for i := range s.keys {
		if !s.traits.IsEmpty(s.keys[i]) {
			keys[s.nextEmpty(keys, s.keys[i])] = s.keys[i]
		}
	}
	s.keys = keys
}

// checkSize doubles the table until newSize elements fit under the 1/2
// load threshold.
func (s *Set[T]) checkSize(newSize int) {
	for newSize >= len(s.keys)/resizeThreshold {
		s.Resize(len(s.keys) * 2)
	}
}

// Add inserts v, resizing first if the insertion would reach the load
// threshold. Returns true if v was inserted, false if it was already
// present.
func (s *Set[T]) Add(v T) bool {
	s.warnEmpty("Add", v)
	s.checkSize(s.size)
	index, found := s.indexToInsert(v)
	if found {
		return false
	}
	s.keys[index] = v
	s.size++
	return true
}

// AddSlice inserts every element of vs.
func (s *Set[T]) AddSlice(vs []T) {
	s.checkSize(s.size + len(vs))
	for _, v := range vs {
		index, found := s.indexToInsert(v)
		if !found {
			s.keys[index] = v
			s.size++
		}
	}
}

// AddAll inserts every element of other.
func (s *Set[T]) AddAll(other *Set[T]) {
	s.checkSize(s.size + other.size)
	for i := range other.keys {
		if !s.traits.IsEmpty(other.keys[i]) {
			index, found := s.indexToInsert(other.keys[i])
			if !found {
				s.keys[index] = other.keys[i]
				s.size++
			}
		}
	}
}

// indexToInsert probes from v's hash position to the first slot that
// either holds v or is vacant.
func (s *Set[T]) indexToInsert(v T) (index int, found bool) {
	index = s.probeStart(v)
	for {
		if s.traits.IsEmpty(s.keys[index]) {
			return index, false
		} else if s.traits.Equal(s.keys[index], v) {
			return index, true
		}
		index = (index + 1) % len(s.keys)
	}
}

// IndexOf returns the slot of v, if present.
func (s *Set[T]) IndexOf(v T) (int, bool) {
	s.warnEmpty("IndexOf", v)
	index := s.probeStart(v)
	for {
		if s.traits.IsEmpty(s.keys[index]) {
			return index, false
		} else if s.traits.Equal(s.keys[index], v) {
			return index, true
		}
		index = (index + 1) % len(s.keys)
	}
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, found := s.IndexOf(v)
	return found
}

// Remove deletes v from the set, reporting whether it was present.
func (s *Set[T]) Remove(v T) bool {
	s.warnEmpty("Remove", v)
	index, found := s.IndexOf(v)
	if !found {
		return false
	}
	s.RemoveAt(index)
	return true
}

// RemoveAt deletes the key at the given occupied slot by backward
// shifting: the slot becomes a gap, and each subsequent key up to the
// next vacancy moves into the gap unless its own probe start lies in the
// cyclic interval between the gap and the key's slot.
func (s *Set[T]) RemoveAt(index int) {
	last := index
	search := (index + 1) % len(s.keys)
	for !s.traits.IsEmpty(s.keys[search]) {
		searchHash := s.probeStart(s.keys[search])
		if !indexBetween(searchHash, last, search) {
			s.keys[last] = s.keys[search]
			last = search
		}
		search = (search + 1) % len(s.keys)
	}
	s.keys[last] = s.traits.empty()
	s.size--
}

// Clear vacates every slot without releasing the keys.
func (s *Set[T]) Clear() {
	s.setAllEmpty(s.keys)
	s.size = 0
}

// Iter invokes f for every element in bucket-scan order, stopping at the
// first error.
func (s *Set[T]) Iter(f func(T) error) error {
	for i := range s.keys {
		if !s.traits.IsEmpty(s.keys[i]) {
			if err := f(s.keys[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsSubsetOf reports whether every element of s is in other.
func (s *Set[T]) IsSubsetOf(other *Set[T]) bool {
	for i := range s.keys {
		if !s.traits.IsEmpty(s.keys[i]) && !other.Contains(s.keys[i]) {
			return false
		}
	}
	return true
}

// Equals reports whether both sets hold the same elements.
func (s *Set[T]) Equals(other *Set[T]) bool {
	if s.size != other.size {
		return false
	}
	return s.IsSubsetOf(other)
}

// Clone produces an independent deep copy with the same capacity and slot
// layout. If a key clone fails, the keys copied so far are released and
// the error is returned.
func (s *Set[T]) Clone() (Set[T], error) {
	c := Set[T]{traits: s.traits, keys: make([]T, len(s.keys)), size: s.size}
	c.setAllEmpty(c.keys)
	for i := range s.keys {
		if s.traits.IsEmpty(s.keys[i]) {
			continue
		}
		v, err := s.traits.clone(s.keys[i])
		if err != nil {
			c.Release()
			return Set[T]{}, fmt.Errorf("clone key at slot %d: %w", i, err)
		}
		c.keys[i] = v
	}
	return c, nil
}

// Release frees every key's owned resources and drops the table. The set
// must not be used afterward.
func (s *Set[T]) Release() {
	for i := range s.keys {
		if !s.traits.IsEmpty(s.keys[i]) {
			s.traits.release(&s.keys[i])
		}
	}
	s.keys = nil
	s.size = 0
}

// SizeOf reports the table's total owned footprint; vacant slots are
// accounted at the footprint of the sentinel.
func (s *Set[T]) SizeOf() uint64 {
	sum := uint64(16)
	for i := range s.keys {
		if s.traits.IsEmpty(s.keys[i]) {
			sum += s.traits.sizeOf(s.traits.empty())
		} else {
			sum += s.traits.sizeOf(s.keys[i])
		}
	}
	return sum
}

// Swap exchanges the backing tables of two sets.
func (s *Set[T]) Swap(other *Set[T]) {
	s.keys, other.keys = other.keys, s.keys
	s.size, other.size = other.size, s.size
}

// dump writes the slot layout for debugging.
func (s *Set[T]) dump() {
	fmt.Printf("{")
	for i := range s.keys {
		if s.traits.IsEmpty(s.keys[i]) {
			continue
		}
		fmt.Printf(" %d:%v", i, s.keys[i])
	}
	fmt.Printf(" } size=%d capacity=%d\n", s.size, len(s.keys))
}
