package slab

import "fmt"

// Map is a Set of keys paired with a parallel value array of identical
// capacity: values[i] is meaningful iff the key slot i is occupied.
// Every operation that relocates a key, including resize and
// backward-shift deletion, moves the paired value in lockstep.
type Map[K, V any] struct {
	table  Set[K]
	values []V
	vt     Traits[V]
}

// NewMap returns an empty map with the given initial capacity (raised to
// at least 1). The key traits' Equal, Hash, IsEmpty and Empty operations
// are required; the value traits may be the zero Traits for trivially
// copyable values.
func NewMap[K, V any](keyTraits Traits[K], valueTraits Traits[V], initialCapacity int) Map[K, V] {
	table := NewSet(keyTraits, initialCapacity)
	return Map[K, V]{
		table:  table,
		values: make([]V, table.Cap()),
		vt:     valueTraits,
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.table.size }

// Cap returns the slot count of the table.
func (m *Map[K, V]) Cap() int { return len(m.table.keys) }

// Resize rehashes keys and values into fresh parallel arrays of the given
// capacity.
func (m *Map[K, V]) Resize(newCapacity int) {
	keys := make([]K, newCapacity)
	m.table.setAllEmpty(keys)
	values := make([]V, newCapacity)
	for i := range m.table.keys {
		if !m.table.traits.IsEmpty(m.table.keys[i]) {
			bucket := m.table.nextEmpty(keys, m.table.keys[i])
			keys[bucket] = m.table.keys[i]
			values[bucket] = m.values[i]
		}
	}
	m.table.keys = keys
	m.values = values
}

func (m *Map[K, V]) checkSize(newSize int) {
	for newSize >= len(m.table.keys)/resizeThreshold {
		m.Resize(len(m.table.keys) * 2)
	}
}

// Put associates value with key, inserting or updating. An updated slot's
// previous value is overwritten without being released; callers owning
// resources in values should Get and release first. Returns true if a new
// entry was inserted.
func (m *Map[K, V]) Put(key K, value V) bool {
	m.table.warnEmpty("Put", key)
	m.checkSize(m.table.size)
	index, found := m.table.indexToInsert(key)
	m.table.keys[index] = key
	m.values[index] = value
	if !found {
		m.table.size++
	}
	return !found
}

// PutAll inserts every entry of other.
func (m *Map[K, V]) PutAll(other *Map[K, V]) {
	m.checkSize(m.table.size + other.table.size)
	for i := range other.table.keys {
		if !m.table.traits.IsEmpty(other.table.keys[i]) {
			index, found := m.table.indexToInsert(other.table.keys[i])
			m.table.keys[index] = other.table.keys[i]
			m.values[index] = other.values[i]
			if !found {
				m.table.size++
			}
		}
	}
}

// Get returns the value associated with key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	index, found := m.table.IndexOf(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.values[index], true
}

// GetRef returns a pointer to the value slot for key, valid until the
// next insertion or deletion.
func (m *Map[K, V]) GetRef(key K) (*V, bool) {
	index, found := m.table.IndexOf(key)
	if !found {
		return nil, false
	}
	return &m.values[index], true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.table.Contains(key)
}

// IndexOf returns the slot of key, if present.
func (m *Map[K, V]) IndexOf(key K) (int, bool) {
	return m.table.IndexOf(key)
}

// Remove deletes the entry for key, reporting whether it was present. The
// removed key and value are dropped without being released.
func (m *Map[K, V]) Remove(key K) bool {
	index, found := m.table.IndexOf(key)
	if !found {
		return false
	}
	m.RemoveAt(index)
	return true
}

// RemoveAt deletes the entry at the given occupied slot with the same
// backward shift as Set.RemoveAt, moving values in lockstep with their
// keys.
func (m *Map[K, V]) RemoveAt(index int) {
	s := &m.table
	last := index
	search := (index + 1) % len(s.keys)
	for !s.traits.IsEmpty(s.keys[search]) {
		searchHash := s.probeStart(s.keys[search])
		if !indexBetween(searchHash, last, search) {
			s.keys[last] = s.keys[search]
			m.values[last] = m.values[search]
			last = search
		}
		search = (search + 1) % len(s.keys)
	}
	s.keys[last] = s.traits.empty()
	var zero V
	m.values[last] = zero
	s.size--
}

// Clear vacates every slot without releasing keys or values.
func (m *Map[K, V]) Clear() {
	m.table.Clear()
	clear(m.values)
}

// Iter invokes f for every entry in bucket-scan order, stopping at the
// first error.
func (m *Map[K, V]) Iter(f func(K, V) error) error {
	for i := range m.table.keys {
		if !m.table.traits.IsEmpty(m.table.keys[i]) {
			if err := f(m.table.keys[i], m.values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone produces an independent deep copy with the same capacity and slot
// layout. If a key or value clone fails, everything copied so far is
// released and the error is returned.
func (m *Map[K, V]) Clone() (Map[K, V], error) {
	c := Map[K, V]{
		table:  Set[K]{traits: m.table.traits, keys: make([]K, len(m.table.keys)), size: m.table.size},
		values: make([]V, len(m.values)),
		vt:     m.vt,
	}
	c.table.setAllEmpty(c.table.keys)
	for i := range m.table.keys {
		if m.table.traits.IsEmpty(m.table.keys[i]) {
			continue
		}
		k, err := m.table.traits.clone(m.table.keys[i])
		if err != nil {
			c.Release()
			return Map[K, V]{}, fmt.Errorf("clone key at slot %d: %w", i, err)
		}
		c.table.keys[i] = k
		v, err := m.vt.clone(m.values[i])
		if err != nil {
			m.table.traits.release(&c.table.keys[i])
			c.table.keys[i] = m.table.traits.empty()
			c.Release()
			return Map[K, V]{}, fmt.Errorf("clone value at slot %d: %w", i, err)
		}
		c.values[i] = v
	}
	return c, nil
}

// Release frees every key's and value's owned resources and drops the
// arrays. The map must not be used afterward.
func (m *Map[K, V]) Release() {
	for i := range m.table.keys {
		if !m.table.traits.IsEmpty(m.table.keys[i]) {
			m.table.traits.release(&m.table.keys[i])
			m.vt.release(&m.values[i])
		}
	}
	m.table.keys = nil
	m.table.size = 0
	m.values = nil
}

// SizeOf reports the map's total owned footprint; vacant slots are
// accounted at the footprint of the sentinel key and a zero value.
func (m *Map[K, V]) SizeOf() uint64 {
	var zero V
	sum := uint64(16)
	for i := range m.table.keys {
		if m.table.traits.IsEmpty(m.table.keys[i]) {
			sum += m.table.traits.sizeOf(m.table.traits.empty()) + m.vt.sizeOf(zero)
		} else {
			sum += m.table.traits.sizeOf(m.table.keys[i]) + m.vt.sizeOf(m.values[i])
		}
	}
	return sum
}

// Swap exchanges the backing arrays of two maps.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.table.Swap(&other.table)
	m.values, other.values = other.values, m.values
}
