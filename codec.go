package slab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// byteOrder is the wire byte order. Encodings are raw native-endian bytes
// with no normalization, so they are only portable across
// identically-configured builds.
var byteOrder = binary.NativeEndian

// WriteUint64 writes the raw native-endian bytes of v.
func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	byteOrder.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadUint64 reads the raw native-endian bytes of a uint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(b[:]), nil
}

// WriteUint32 writes the raw native-endian bytes of v.
func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadUint32 reads the raw native-endian bytes of a uint32.
func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(b[:]), nil
}

// WriteFloat64 writes the raw native-endian IEEE-754 bytes of v.
func WriteFloat64(w io.Writer, v float64) error {
	return WriteUint64(w, math.Float64bits(v))
}

// ReadFloat64 reads the raw native-endian IEEE-754 bytes of a float64.
func ReadFloat64(r io.Reader) (float64, error) {
	bits, err := ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func writeLength(w io.Writer, n int) error {
	return WriteUint64(w, uint64(n))
}

func readLength(r io.Reader) (int, error) {
	n, err := ReadUint64(r)
	if err != nil {
		return 0, fmt.Errorf("read length: %w", err)
	}
	if n > math.MaxInt {
		return 0, errors.New("bad length")
	}
	return int(n), nil
}

// Scribe bundles the wire and text encodings of one element type. Read
// and Write must be inverses over the same build; Print renders the
// element for humans and is never read back.
type Scribe[T any] struct {
	Read  func(io.Reader) (T, error)
	Write func(io.Writer, T) error
	Print func(io.Writer, T) error
}

// FundamentalScribe returns a Scribe for an integer type, encoded as the
// raw native-endian bytes of its 64-bit widening.
func FundamentalScribe[T Fundamental]() Scribe[T] {
	return Scribe[T]{
		Read: func(r io.Reader) (T, error) {
			v, err := ReadUint64(r)
			return T(v), err
		},
		Write: func(w io.Writer, v T) error {
			return WriteUint64(w, uint64(v))
		},
		Print: func(w io.Writer, v T) error {
			_, err := fmt.Fprintf(w, "%d", v)
			return err
		},
	}
}

// IntScribe is FundamentalScribe for int.
func IntScribe() Scribe[int] { return FundamentalScribe[int]() }

// Uint64Scribe is FundamentalScribe for uint64.
func Uint64Scribe() Scribe[uint64] { return FundamentalScribe[uint64]() }

// Float64Scribe returns a Scribe for float64.
func Float64Scribe() Scribe[float64] {
	return Scribe[float64]{
		Read:  ReadFloat64,
		Write: WriteFloat64,
		Print: func(w io.Writer, v float64) error {
			_, err := fmt.Fprintf(w, "%g", v)
			return err
		},
	}
}

// StringScribe returns a Scribe for strings, length-prefixed on the wire.
func StringScribe() Scribe[string] {
	return Scribe[string]{
		Read: func(r io.Reader) (string, error) {
			b, err := readLengthPrefixed(r)
			return string(b), err
		},
		Write: func(w io.Writer, v string) error {
			if err := writeLength(w, len(v)); err != nil {
				return err
			}
			_, err := io.WriteString(w, v)
			return err
		},
		Print: func(w io.Writer, v string) error {
			_, err := fmt.Fprintf(w, "%q", v)
			return err
		},
	}
}

// BytesScribe returns a Scribe for byte slices, length-prefixed on the
// wire. A nil slice round-trips as an empty one.
func BytesScribe() Scribe[[]byte] {
	return Scribe[[]byte]{
		Read: readLengthPrefixed,
		Write: func(w io.Writer, v []byte) error {
			if err := writeLength(w, len(v)); err != nil {
				return err
			}
			_, err := w.Write(v)
			return err
		},
		Print: func(w io.Writer, v []byte) error {
			_, err := fmt.Fprintf(w, "%x", v)
			return err
		},
	}
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// WriteArray encodes a as its length followed by the elements in order.
func WriteArray[T any](w io.Writer, a *Array[T], sc Scribe[T]) error {
	if err := writeLength(w, a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		if err := sc.Write(w, a.At(i)); err != nil {
			return fmt.Errorf("write element %d: %w", i, err)
		}
	}
	return nil
}

// ReadArray decodes an Array written by WriteArray. On a malformed
// element the elements decoded so far are released and the error is
// returned.
func ReadArray[T any](r io.Reader, sc Scribe[T], t Traits[T]) (Array[T], error) {
	n, err := readLength(r)
	if err != nil {
		return Array[T]{}, err
	}
	a := NewArray[T](n)
	for i := 0; i < n; i++ {
		v, err := sc.Read(r)
		if err != nil {
			a.Release(t)
			return Array[T]{}, fmt.Errorf("read element %d: %w", i, err)
		}
		a.Append(v)
	}
	return a, nil
}

// WriteSet encodes s as its live count followed by the live keys in
// bucket-scan order. Slot order is not part of the format: a reload
// re-probes every key against a fresh table.
func WriteSet[T any](w io.Writer, s *Set[T], sc Scribe[T]) error {
	if err := writeLength(w, s.Len()); err != nil {
		return err
	}
	i := 0
	return s.Iter(func(v T) error {
		if err := sc.Write(w, v); err != nil {
			return fmt.Errorf("write key %d: %w", i, err)
		}
		i++
		return nil
	})
}

// ReadSet decodes a Set written by WriteSet into a fresh table of
// capacity twice the live count.
func ReadSet[T any](r io.Reader, sc Scribe[T], t Traits[T]) (Set[T], error) {
	n, err := readLength(r)
	if err != nil {
		return Set[T]{}, err
	}
	s := NewSet(t, 2*max(n, 1))
	for i := 0; i < n; i++ {
		v, err := sc.Read(r)
		if err != nil {
			s.Release()
			return Set[T]{}, fmt.Errorf("read key %d: %w", i, err)
		}
		s.Add(v)
	}
	return s, nil
}

// WriteMap encodes m as its live count followed by key,value pairs in
// bucket-scan order.
func WriteMap[K, V any](w io.Writer, m *Map[K, V], ks Scribe[K], vs Scribe[V]) error {
	if err := writeLength(w, m.Len()); err != nil {
		return err
	}
	i := 0
	return m.Iter(func(k K, v V) error {
		if err := ks.Write(w, k); err != nil {
			return fmt.Errorf("write key %d: %w", i, err)
		}
		if err := vs.Write(w, v); err != nil {
			return fmt.Errorf("write value %d: %w", i, err)
		}
		i++
		return nil
	})
}

// ReadMap decodes a Map written by WriteMap into a fresh table of
// capacity twice the live count.
func ReadMap[K, V any](r io.Reader, ks Scribe[K], vs Scribe[V], kt Traits[K], vt Traits[V]) (Map[K, V], error) {
	n, err := readLength(r)
	if err != nil {
		return Map[K, V]{}, err
	}
	m := NewMap(kt, vt, 2*max(n, 1))
	for i := 0; i < n; i++ {
		k, err := ks.Read(r)
		if err != nil {
			m.Release()
			return Map[K, V]{}, fmt.Errorf("read key %d: %w", i, err)
		}
		v, err := vs.Read(r)
		if err != nil {
			kt.release(&k)
			m.Release()
			return Map[K, V]{}, fmt.Errorf("read value %d: %w", i, err)
		}
		m.Put(k, v)
	}
	return m, nil
}

// WriteArrayMap encodes m as its length followed by key,value pairs in
// insertion order, which a reload preserves.
func WriteArrayMap[K, V any](w io.Writer, m *ArrayMap[K, V], ks Scribe[K], vs Scribe[V]) error {
	if err := writeLength(w, m.Len()); err != nil {
		return err
	}
	i := 0
	return m.Iter(func(k K, v V) error {
		if err := ks.Write(w, k); err != nil {
			return fmt.Errorf("write key %d: %w", i, err)
		}
		if err := vs.Write(w, v); err != nil {
			return fmt.Errorf("write value %d: %w", i, err)
		}
		i++
		return nil
	})
}

// ReadArrayMap decodes an ArrayMap written by WriteArrayMap.
func ReadArrayMap[K, V any](r io.Reader, ks Scribe[K], vs Scribe[V], kt Traits[K], vt Traits[V]) (ArrayMap[K, V], error) {
	n, err := readLength(r)
	if err != nil {
		return ArrayMap[K, V]{}, err
	}
	m := NewArrayMap(kt, vt, max(n, 1))
	for i := 0; i < n; i++ {
		k, err := ks.Read(r)
		if err != nil {
			m.Release()
			return ArrayMap[K, V]{}, fmt.Errorf("read key %d: %w", i, err)
		}
		v, err := vs.Read(r)
		if err != nil {
			kt.release(&k)
			m.Release()
			return ArrayMap[K, V]{}, fmt.Errorf("read value %d: %w", i, err)
		}
		m.Put(k, v)
	}
	return m, nil
}

// PrintArray renders a as a bracketed, comma-separated sequence.
func PrintArray[T any](w io.Writer, a *Array[T], sc Scribe[T]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := sc.Print(w, a.At(i)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// PrintSet renders s as a bracketed, comma-separated sequence in
// bucket-scan order.
func PrintSet[T any](w io.Writer, s *Set[T], sc Scribe[T]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	err := s.Iter(func(v T) error {
		if !first {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		first = false
		return sc.Print(w, v)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]")
	return err
}

// PrintMap renders m as bracketed, comma-separated "key: value" pairs in
// bucket-scan order.
func PrintMap[K, V any](w io.Writer, m *Map[K, V], ks Scribe[K], vs Scribe[V]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	err := m.Iter(func(k K, v V) error {
		if !first {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		first = false
		if err := ks.Print(w, k); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ": "); err != nil {
			return err
		}
		return vs.Print(w, v)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]")
	return err
}

// PrintArrayMap renders m as bracketed, comma-separated "key: value"
// pairs in insertion order.
func PrintArrayMap[K, V any](w io.Writer, m *ArrayMap[K, V], ks Scribe[K], vs Scribe[V]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	err := m.Iter(func(k K, v V) error {
		if !first {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		first = false
		if err := ks.Print(w, k); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ": "); err != nil {
			return err
		}
		return vs.Print(w, v)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]")
	return err
}
