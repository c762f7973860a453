package slab

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Traits bundles the lifecycle operations a type must provide to occupy a
// container slot. Fundamental types get ready-made traits from the
// constructors below; types that own resources (heap buffers, descriptors)
// supply their own.
//
// Equal, Hash, IsEmpty and Empty are required for Set and Map keys. The
// value returned by Empty is the sentinel that marks a vacant slot; it must
// never be a value the application legitimately stores, and the containers
// do not check this.
//
// Clone, Release and SizeOf may be nil, in which case the value is treated
// as trivially copyable with no owned resources. Moves and swaps are plain
// Go assignments: every element type is assumed relocatable by value copy,
// which is what lets the containers grow by reallocating their buffers.
type Traits[T any] struct {
	// Equal reports whether a and b are the same element.
	Equal func(a, b T) bool

	// Hash maps an element to a fixed-width unsigned hash.
	Hash func(T) uint64

	// IsEmpty reports whether the element is the empty sentinel.
	IsEmpty func(T) bool

	// Empty returns the empty sentinel.
	Empty func() T

	// Clone produces an independent deep copy. It fails only when
	// duplicating an owned resource fails, and must leave nothing
	// half-owned when it does.
	Clone func(T) (T, error)

	// Release frees the resources owned by the element. Releasing the
	// same element twice is a caller error.
	Release func(*T)

	// SizeOf reports the element's total owned footprint in bytes,
	// recursing into owned substructures.
	SizeOf func(T) uint64
}

func (t Traits[T]) clone(v T) (T, error) {
	if t.Clone == nil {
		return v, nil
	}
	return t.Clone(v)
}

func (t Traits[T]) release(v *T) {
	if t.Release != nil {
		t.Release(v)
	}
}

func (t Traits[T]) sizeOf(v T) uint64 {
	if t.SizeOf == nil {
		return 0
	}
	return t.SizeOf(v)
}

func (t Traits[T]) empty() T {
	if t.Empty == nil {
		var zero T
		return zero
	}
	return t.Empty()
}

// Fundamental matches the built-in integer types, whose zero value serves
// as the empty sentinel and whose lifecycle operations are all trivial.
type Fundamental interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func hashUint64(v uint64) uint64 {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], v)
	return xxhash.Sum64(b[:])
}

// FundamentalTraits returns traits for an integer type: bitwise equality,
// zero as the empty sentinel, and xxhash over the value's bytes. Callers
// storing zero as a legitimate key must supply a different sentinel.
func FundamentalTraits[T Fundamental]() Traits[T] {
	return Traits[T]{
		Equal:   func(a, b T) bool { return a == b },
		Hash:    func(v T) uint64 { return hashUint64(uint64(v)) },
		IsEmpty: func(v T) bool { return v == 0 },
		Empty:   func() T { return 0 },
		SizeOf:  func(v T) uint64 { return uint64(reflect.TypeOf(v).Size()) },
	}
}

// IntTraits is FundamentalTraits for int.
func IntTraits() Traits[int] { return FundamentalTraits[int]() }

// UintTraits is FundamentalTraits for uint.
func UintTraits() Traits[uint] { return FundamentalTraits[uint]() }

// Uint64Traits is FundamentalTraits for uint64.
func Uint64Traits() Traits[uint64] { return FundamentalTraits[uint64]() }

// Float64Traits returns traits for float64, hashing the IEEE-754 bits.
// Zero is the empty sentinel.
func Float64Traits() Traits[float64] {
	return Traits[float64]{
		Equal:   func(a, b float64) bool { return a == b },
		Hash:    func(v float64) uint64 { return hashUint64(math.Float64bits(v)) },
		IsEmpty: func(v float64) bool { return v == 0 },
		Empty:   func() float64 { return 0 },
		SizeOf:  func(float64) uint64 { return 8 },
	}
}

// StringTraits returns traits for string keys. The empty string is the
// sentinel, so it cannot be stored in a Set or Map.
func StringTraits() Traits[string] {
	return Traits[string]{
		Equal:   func(a, b string) bool { return a == b },
		Hash:    xxhash.Sum64String,
		IsEmpty: func(v string) bool { return v == "" },
		Empty:   func() string { return "" },
		SizeOf:  func(v string) uint64 { return 8 + uint64(len(v)) },
	}
}

// BytesTraits returns traits for []byte elements. A nil slice is the
// sentinel; an allocated empty slice is a legitimate element.
func BytesTraits() Traits[[]byte] {
	return Traits[[]byte]{
		Equal:   bytes.Equal,
		Hash:    xxhash.Sum64,
		IsEmpty: func(v []byte) bool { return v == nil },
		Empty:   func() []byte { return nil },
		Clone: func(v []byte) ([]byte, error) {
			if v == nil {
				return nil, nil
			}
			return append([]byte{}, v...), nil
		},
		Release: func(v *[]byte) { *v = nil },
		SizeOf:  func(v []byte) uint64 { return 24 + uint64(len(v)) },
	}
}
