package slab

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Persist is the interface for loading and storing encoded snapshots by
// name. Snapshots are content-addressed: the name is derived from the
// encoded bytes, so an entry never changes once written.
type Persist interface {
	// Store makes the given bytes available at the given name.
	Store(ctx context.Context, name string, value []byte) error
	// Load retrieves the bytes previously stored at the given name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// SaveSnapshot stores encoded under its content address, the
// base64 raw-URL form of its BLAKE2b-256 digest, and returns the name. A
// cache hit on the name skips the store entirely.
func SaveSnapshot(ctx context.Context, persist Persist, cache SnapshotCache, encoded []byte) (string, error) {
	hashBytes := blake2b.Sum256(encoded)
	name := base64.RawURLEncoding.EncodeToString(hashBytes[:])
	if cache != nil {
		if cache.Contains(name) {
			return name, nil
		}
	}
	err := persist.Store(ctx, name, encoded)
	if err != nil {
		return "", fmt.Errorf("persist store: %w", err)
	}
	if cache != nil {
		cache.Add(name, encoded)
	}
	return name, nil
}

// LoadSnapshot retrieves the encoded snapshot with the given name,
// consulting the cache first.
func LoadSnapshot(ctx context.Context, persist Persist, cache SnapshotCache, name string) ([]byte, error) {
	if cache != nil {
		if encoded, ok := cache.Get(name); ok {
			return encoded.([]byte), nil
		}
	}
	encoded, err := persist.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("persist load %s: %w", name, err)
	}
	if cache != nil {
		cache.Add(name, encoded)
	}
	return encoded, nil
}

// SaveArray encodes a and stores it as a snapshot, returning its name.
func SaveArray[T any](ctx context.Context, persist Persist, cache SnapshotCache, a *Array[T], sc Scribe[T]) (string, error) {
	stream := NewMemoryStream(64)
	if err := WriteArray(stream, a, sc); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return SaveSnapshot(ctx, persist, cache, stream.Bytes())
}

// LoadArray retrieves and decodes the Array snapshot with the given name.
func LoadArray[T any](ctx context.Context, persist Persist, cache SnapshotCache, name string, sc Scribe[T], t Traits[T]) (Array[T], error) {
	encoded, err := LoadSnapshot(ctx, persist, cache, name)
	if err != nil {
		return Array[T]{}, err
	}
	a, err := ReadArray(bytes.NewReader(encoded), sc, t)
	if err != nil {
		return Array[T]{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return a, nil
}

// SaveSet encodes s and stores it as a snapshot, returning its name. Two
// sets with the same elements but different slot layouts produce
// different snapshots; the name addresses the encoding, not the set.
func SaveSet[T any](ctx context.Context, persist Persist, cache SnapshotCache, s *Set[T], sc Scribe[T]) (string, error) {
	stream := NewMemoryStream(64)
	if err := WriteSet(stream, s, sc); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return SaveSnapshot(ctx, persist, cache, stream.Bytes())
}

// LoadSet retrieves and decodes the Set snapshot with the given name.
func LoadSet[T any](ctx context.Context, persist Persist, cache SnapshotCache, name string, sc Scribe[T], t Traits[T]) (Set[T], error) {
	encoded, err := LoadSnapshot(ctx, persist, cache, name)
	if err != nil {
		return Set[T]{}, err
	}
	s, err := ReadSet(bytes.NewReader(encoded), sc, t)
	if err != nil {
		return Set[T]{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return s, nil
}

// SaveMap encodes m and stores it as a snapshot, returning its name.
func SaveMap[K, V any](ctx context.Context, persist Persist, cache SnapshotCache, m *Map[K, V], ks Scribe[K], vs Scribe[V]) (string, error) {
	stream := NewMemoryStream(64)
	if err := WriteMap(stream, m, ks, vs); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return SaveSnapshot(ctx, persist, cache, stream.Bytes())
}

// LoadMap retrieves and decodes the Map snapshot with the given name.
func LoadMap[K, V any](ctx context.Context, persist Persist, cache SnapshotCache, name string, ks Scribe[K], vs Scribe[V], kt Traits[K], vt Traits[V]) (Map[K, V], error) {
	encoded, err := LoadSnapshot(ctx, persist, cache, name)
	if err != nil {
		return Map[K, V]{}, err
	}
	m, err := ReadMap(bytes.NewReader(encoded), ks, vs, kt, vt)
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return m, nil
}
