package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"

	"github.com/numberrush/numberrush/internal/api"
	"github.com/numberrush/numberrush/internal/factory"
	"github.com/numberrush/numberrush/internal/storage/kv/redis"
	"github.com/numberrush/numberrush/internal/storage/sqlite"
)

// config is loaded from the environment via go-envconfig
type config struct {
	Port     int    `env:"NR_PORT, default=8080"`
	LogLevel string `env:"NR_LOG_LEVEL, default=info"`

	Storage    string `env:"NR_STORAGE, default=sqlite"`
	SQLitePath string `env:"NR_SQLITE_PATH, default=number_rush.db"`
	BlobStore  string `env:"NR_BLOB_STORE, default=file"`
	DataDir    string `env:"NR_DATA_DIR, default=data"`
	RedisURL   string `env:"NR_REDIS_URL"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		StorageType:  cfg.Storage,
		SQLiteConfig: sqlite.Config{Path: cfg.SQLitePath},
		BlobStore:    cfg.BlobStore,
		DataDir:      cfg.DataDir,
		Logger:       logger,
	}

	if cfg.BlobStore == factory.BlobStoreRedis {
		if cfg.RedisURL == "" {
			logger.Error("NR_REDIS_URL required when NR_BLOB_STORE=redis")
			os.Exit(1)
		}
		redisCfg := redis.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("error closing storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Records: app.Records,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("backend", app.Storage.Backend()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
