package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numberrush/numberrush/internal/storage/kv"
)

func TestGetMissingKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "numberrush:users")
	assert.ErrorIs(t, err, kv.ErrBlobNotFound)
}

func TestSetGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "numberrush:users", []byte(`[{"id":1}]`)))

	data, err := store.Get(ctx, "numberrush:users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestSetOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "numberrush:users", []byte("first")))
	require.NoError(t, store.Set(ctx, "numberrush:users", []byte("second")))

	data, err := store.Get(ctx, "numberrush:users")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestKeysMapToPortableFileNames(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "numberrush:users", []byte("{}")))

	_, err = os.Stat(filepath.Join(dir, "numberrush_users.json"))
	assert.NoError(t, err)
}

func TestNewCreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
