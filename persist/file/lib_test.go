package file

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestFiles(t *testing.T) {
	dir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)

	p := NewPersistForPath(dir)

	err = p.Store(ctx, "foo", []byte("hello"))
	require.NoError(t, err)
	loaded, err := p.Load(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), loaded)

	if !t.Failed() {
		os.RemoveAll(dir)
	} else {
		fmt.Println("temp directory:", dir)
	}
}

func TestStoreSkipsExisting(t *testing.T) {
	dir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	p := NewPersistForPath(dir)

	require.NoError(t, p.Store(ctx, "foo", []byte("original")))
	require.NoError(t, p.Store(ctx, "foo", []byte("clobber")))
	loaded, err := p.Load(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), loaded)
}

func TestLoadMissing(t *testing.T) {
	dir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	p := NewPersistForPath(dir)
	_, err = p.Load(ctx, "nope")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
