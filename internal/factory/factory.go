// Package factory wires the application together. Backend selection lives
// here and only here: the rest of the code sees storage.Store and never
// branches on the backend kind.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/numberrush/numberrush/internal/dependencies/clock"
	"github.com/numberrush/numberrush/internal/hash"
	"github.com/numberrush/numberrush/internal/services/records"
	"github.com/numberrush/numberrush/internal/storage"
	"github.com/numberrush/numberrush/internal/storage/kv"
	"github.com/numberrush/numberrush/internal/storage/kv/file"
	redisblob "github.com/numberrush/numberrush/internal/storage/kv/redis"
	"github.com/numberrush/numberrush/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeSQLite = "sqlite"
	StorageTypeKV     = "kv"
)

// Fallback blob store constants
const (
	BlobStoreFile   = "file"
	BlobStoreRedis  = "redis"
	BlobStoreMemory = "memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Hasher hash.Hasher

	// Services
	Records *records.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("sqlite" or "kv").
	// If empty, defaults to "sqlite". A sqlite backend that fails to open
	// falls back to the configured kv path instead of failing startup.
	StorageType string
	// SQLiteConfig holds settings for the relational backend
	SQLiteConfig sqlite.Config
	// BlobStore selects the kv persistence layer ("file", "redis" or
	// "memory"). If empty, defaults to "file".
	BlobStore string
	// DataDir is the directory for file-backed blobs
	DataDir string
	// RedisConfig holds Redis settings (required if BlobStore is "redis")
	RedisConfig *redisblob.Config
	// Hasher is the password digest provider (optional)
	// If nil, the SHA-256 hasher is used
	Hasher hash.Hasher
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired. Opening the
// store is idempotent with respect to persisted state: schema creation and
// fallback loads can run any number of times against the same data.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = hash.NewSHA256()
	}

	clk := clock.New()

	return &App{
		Storage: store,
		Clock:   clk,
		Hasher:  hasher,
		Records: records.New(store, hasher, clk, logger),
	}, nil
}

// openStore picks the backend. This is the single place where the sqlite
// vs. fallback decision is made.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Store, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	switch storageType {
	case StorageTypeSQLite:
		sqliteCfg := cfg.SQLiteConfig
		if sqliteCfg.Path == "" {
			sqliteCfg = sqlite.DefaultConfig()
		}
		store, err := sqlite.New(sqliteCfg)
		if err == nil {
			logger.Info("storage backend active", slog.String("backend", storage.BackendSQLite))
			return store, nil
		}
		// Recovered internally: the caller keeps a working store and the
		// switch is only visible in the diagnostic log.
		logger.Warn("relational engine unavailable, switching to key-value fallback",
			slog.String("error", err.Error()),
		)
		return openKV(ctx, cfg, logger)
	case StorageTypeKV:
		return openKV(ctx, cfg, logger)
	default:
		return nil, errors.New("invalid StorageType: must be 'sqlite' or 'kv'")
	}
}

func openKV(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Store, error) {
	blobs, err := openBlobStore(cfg)
	if err != nil {
		return nil, err
	}

	store, err := kv.New(ctx, blobs, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("storage backend active",
		slog.String("backend", storage.BackendKV),
		slog.String("blob_store", blobStoreKind(cfg)),
	)
	return store, nil
}

func openBlobStore(cfg Config) (kv.BlobStore, error) {
	switch blobStoreKind(cfg) {
	case BlobStoreFile:
		dir := cfg.DataDir
		if dir == "" {
			dir = "data"
		}
		return file.New(dir)
	case BlobStoreRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when BlobStore is redis")
		}
		return redisblob.New(*cfg.RedisConfig)
	case BlobStoreMemory:
		return kv.NewMemoryBlobStore(), nil
	default:
		return nil, errors.New("invalid BlobStore: must be 'file', 'redis' or 'memory'")
	}
}

func blobStoreKind(cfg Config) string {
	if cfg.BlobStore == "" {
		return BlobStoreFile
	}
	return cfg.BlobStore
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
