package slab

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStreamRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewMemoryStream(4)
	n, err := s.Write([]byte("hello, "))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.NoError(t, s.WriteByte('w'))
	_, err = s.Write([]byte("orld"))
	require.NoError(t, err)
	require.Equal(t, 12, s.Len())

	s.Rewind()
	out, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(out))
}

func TestMemoryStreamReadPastEnd(t *testing.T) {
	t.Parallel()
	s := NewMemoryStream(4)
	_, err := s.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	s.Rewind()
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	_, err = s.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestMemoryStreamGrowth(t *testing.T) {
	t.Parallel()
	s := NewMemoryStream(1)
	payload := make([]byte, 100)
	_, err := s.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, 128, len(s.data))
}

func TestMemoryStreamOverwrite(t *testing.T) {
	t.Parallel()
	s := NewMemoryStream(8)
	_, err := s.Write([]byte("abcdef"))
	require.NoError(t, err)
	s.Rewind()
	_, err = s.Write([]byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, "XYcdef", string(s.Bytes()))
	assert.Equal(t, 6, s.Len())
}
