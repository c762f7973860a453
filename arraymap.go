package slab

import "fmt"

// ArrayMap is a linear-scan association array: parallel key and value
// buffers with no hashing. Lookup is O(n), so it beats Map only when the
// expected size is small; the caller makes that call. Insertion order is
// preserved except across RemoveAt, which swaps the last entry into the
// vacated slot.
type ArrayMap[K, V any] struct {
	kt     Traits[K]
	vt     Traits[V]
	keys   []K // len(keys) is the capacity
	values []V
	length int
}

// NewArrayMap returns an empty map with the given initial capacity
// (raised to at least 1). Only the key traits' Equal operation is
// required for lookups.
func NewArrayMap[K, V any](keyTraits Traits[K], valueTraits Traits[V], initialCapacity int) ArrayMap[K, V] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return ArrayMap[K, V]{
		kt:     keyTraits,
		vt:     valueTraits,
		keys:   make([]K, initialCapacity),
		values: make([]V, initialCapacity),
	}
}

// Len returns the number of entries.
func (m *ArrayMap[K, V]) Len() int { return m.length }

// Cap returns the allocated slot count.
func (m *ArrayMap[K, V]) Cap() int { return len(m.keys) }

// Keys returns the live keys as a slice sharing the map's buffer.
func (m *ArrayMap[K, V]) Keys() []K { return m.keys[:m.length] }

// Values returns the live values as a slice sharing the map's buffer.
func (m *ArrayMap[K, V]) Values() []V { return m.values[:m.length] }

// EnsureCapacity grows both buffers, doubling until they can hold at
// least n entries.
func (m *ArrayMap[K, V]) EnsureCapacity(n int) {
	if n <= len(m.keys) {
		return
	}
	capacity := len(m.keys)
	if capacity == 0 {
		capacity = 1
	}
	for n > capacity {
		capacity *= 2
	}
	keys := make([]K, capacity)
	copy(keys, m.keys[:m.length])
	values := make([]V, capacity)
	copy(values, m.values[:m.length])
	m.keys = keys
	m.values = values
}

// IndexOf returns the position of key, scanning from the front.
func (m *ArrayMap[K, V]) IndexOf(key K) (int, bool) {
	for i := 0; i < m.length; i++ {
		if m.kt.Equal(m.keys[i], key) {
			return i, true
		}
	}
	return m.length, false
}

// Contains reports whether key is present.
func (m *ArrayMap[K, V]) Contains(key K) bool {
	_, found := m.IndexOf(key)
	return found
}

// Put associates value with key: an existing entry is updated in place,
// otherwise the entry is appended. Returns true if a new entry was
// appended.
func (m *ArrayMap[K, V]) Put(key K, value V) bool {
	index, found := m.IndexOf(key)
	if found {
		m.values[index] = value
		return false
	}
	m.EnsureCapacity(m.length + 1)
	m.keys[m.length] = key
	m.values[m.length] = value
	m.length++
	return true
}

// Get returns the value associated with key.
func (m *ArrayMap[K, V]) Get(key K) (V, bool) {
	index, found := m.IndexOf(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.values[index], true
}

// GetRef returns a pointer to the value slot for key, valid until the
// map grows.
func (m *ArrayMap[K, V]) GetRef(key K) (*V, bool) {
	index, found := m.IndexOf(key)
	if !found {
		return nil, false
	}
	return &m.values[index], true
}

// Remove deletes the entry for key, reporting whether it was present.
func (m *ArrayMap[K, V]) Remove(key K) bool {
	index, found := m.IndexOf(key)
	if !found {
		return false
	}
	m.RemoveAt(index)
	return true
}

// RemoveAt deletes the entry at index by moving the last entry into its
// place. O(1); insertion order is not preserved.
func (m *ArrayMap[K, V]) RemoveAt(index int) {
	m.length--
	if index == m.length {
		return
	}
	m.keys[index] = m.keys[m.length]
	m.values[index] = m.values[m.length]
}

// Clear forgets all entries without releasing them.
func (m *ArrayMap[K, V]) Clear() { m.length = 0 }

// Iter invokes f for every entry in insertion order, stopping at the
// first error.
func (m *ArrayMap[K, V]) Iter(f func(K, V) error) error {
	for i := 0; i < m.length; i++ {
		if err := f(m.keys[i], m.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Clone produces an independent deep copy. If a key or value clone fails,
// everything copied so far is released and the error is returned.
func (m *ArrayMap[K, V]) Clone() (ArrayMap[K, V], error) {
	c := ArrayMap[K, V]{
		kt:     m.kt,
		vt:     m.vt,
		keys:   make([]K, len(m.keys)),
		values: make([]V, len(m.values)),
	}
	for i := 0; i < m.length; i++ {
		k, err := m.kt.clone(m.keys[i])
		if err != nil {
			c.Release()
			return ArrayMap[K, V]{}, fmt.Errorf("clone key %d: %w", i, err)
		}
		c.keys[i] = k
		c.length = i
		v, err := m.vt.clone(m.values[i])
		if err != nil {
			m.kt.release(&c.keys[i])
			c.Release()
			return ArrayMap[K, V]{}, fmt.Errorf("clone value %d: %w", i, err)
		}
		c.values[i] = v
		c.length = i + 1
	}
	return c, nil
}

// Release frees every entry's owned resources and drops the buffers. The
// map must not be used afterward.
func (m *ArrayMap[K, V]) Release() {
	for i := 0; i < m.length; i++ {
		m.kt.release(&m.keys[i])
		m.vt.release(&m.values[i])
	}
	m.keys = nil
	m.values = nil
	m.length = 0
}

// SizeOf reports the map's total owned footprint; slack slots are
// accounted at the footprint of zero elements.
func (m *ArrayMap[K, V]) SizeOf() uint64 {
	var zeroK K
	var zeroV V
	sum := uint64(16)
	for i := 0; i < m.length; i++ {
		sum += m.kt.sizeOf(m.keys[i]) + m.vt.sizeOf(m.values[i])
	}
	slack := uint64(len(m.keys) - m.length)
	return sum + slack*(m.kt.sizeOf(zeroK)+m.vt.sizeOf(zeroV))
}

// Swap exchanges the backing buffers of two maps.
func (m *ArrayMap[K, V]) Swap(other *ArrayMap[K, V]) {
	m.keys, other.keys = other.keys, m.keys
	m.values, other.values = other.values, m.values
	m.length, other.length = other.length, m.length
}
