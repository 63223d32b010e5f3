package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numberrush/numberrush/internal/storage"
	"github.com/numberrush/numberrush/internal/storage/sqlite"
)

func TestDefaultsToSQLite(t *testing.T) {
	app, err := New(context.Background(), Config{
		SQLiteConfig: sqlite.Config{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, storage.BackendSQLite, app.Storage.Backend())
	assert.NotNil(t, app.Records)
}

func TestExplicitKVBackend(t *testing.T) {
	app, err := New(context.Background(), Config{
		StorageType: StorageTypeKV,
		BlobStore:   BlobStoreMemory,
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, storage.BackendKV, app.Storage.Backend())
}

func TestSQLiteFailureFallsBackToKV(t *testing.T) {
	app, err := New(context.Background(), Config{
		// A directory path cannot be opened as a database file
		SQLiteConfig: sqlite.Config{Path: t.TempDir()},
		BlobStore:    BlobStoreMemory,
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, storage.BackendKV, app.Storage.Backend())
}

func TestFileBlobStoreByDefault(t *testing.T) {
	app, err := New(context.Background(), Config{
		StorageType: StorageTypeKV,
		DataDir:     t.TempDir(),
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, storage.BackendKV, app.Storage.Backend())
}

func TestInvalidStorageType(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: "cloud"})
	assert.Error(t, err)
}

func TestRedisBlobStoreRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), Config{
		StorageType: StorageTypeKV,
		BlobStore:   BlobStoreRedis,
	})
	assert.Error(t, err)
}
