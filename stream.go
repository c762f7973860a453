package slab

import "io"

// MemoryStream is a growable in-memory byte sink and source with the same
// doubling growth policy as Array. Writes extend the buffer at the
// position cursor; reads consume from the same cursor. Typical use is
// write everything, Rewind, then read it back.
type MemoryStream struct {
	data     []byte // len(data) is the capacity
	length   int    // high-water mark of written bytes
	position int
}

// NewMemoryStream returns an empty stream with the given initial capacity
// (raised to at least 1).
func NewMemoryStream(initialCapacity int) *MemoryStream {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &MemoryStream{data: make([]byte, initialCapacity)}
}

// Bytes returns the written bytes as a slice sharing the stream's buffer.
func (s *MemoryStream) Bytes() []byte { return s.data[:s.length] }

// Len returns the number of written bytes.
func (s *MemoryStream) Len() int { return s.length }

// Rewind moves the cursor back to the start for reading.
func (s *MemoryStream) Rewind() { s.position = 0 }

// Read copies bytes from the cursor into p, returning io.EOF once the
// written region is exhausted.
func (s *MemoryStream) Read(p []byte) (int, error) {
	if s.position >= s.length {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.position:s.length])
	s.position += n
	return n, nil
}

func (s *MemoryStream) ensureCapacity(n int) {
	if n <= len(s.data) {
		return
	}
	capacity := len(s.data)
	if capacity == 0 {
		capacity = 1
	}
	for n > capacity {
		capacity *= 2
	}
	data := make([]byte, capacity)
	copy(data, s.data[:s.length])
	s.data = data
}

// Write appends p at the cursor, growing the buffer as needed.
func (s *MemoryStream) Write(p []byte) (int, error) {
	s.ensureCapacity(s.position + len(p))
	n := copy(s.data[s.position:], p)
	s.position += n
	if s.position > s.length {
		s.length = s.position
	}
	return n, nil
}

// WriteByte appends a single byte at the cursor.
func (s *MemoryStream) WriteByte(c byte) error {
	s.ensureCapacity(s.position + 1)
	s.data[s.position] = c
	s.position++
	if s.position > s.length {
		s.length = s.position
	}
	return nil
}
