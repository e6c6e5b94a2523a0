package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/terra-clan/interview-assistant/internal/config"
	"github.com/terra-clan/interview-assistant/internal/store"
)

// openPersister builds the persistence backend selected by STORE_BACKEND
func openPersister(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Persister, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		logger.Warn("using in-memory store, state is lost on exit")
		return store.NewMemoryPersister(), nil

	case config.StoreFile:
		p, err := store.NewFilePersister(cfg.Store.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open state file: %w", err)
		}
		logger.Info("using file store", "path", cfg.Store.File)
		return p, nil

	case config.StoreRedis:
		p, err := store.NewRedisPersister(ctx, store.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Store.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("using redis store", "address", cfg.Redis.Address, "namespace", cfg.Store.Namespace)
		return p, nil

	case config.StorePostgres:
		logger.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		p, err := store.NewPostgresPersister(ctx, store.PostgresConfig{
			DSN:           cfg.Database.DSN,
			MigrationsDir: cfg.Database.MigrationsDir,
			MaxOpenConns:  int32(cfg.Database.MaxOpenConns),
			MaxIdleConns:  int32(cfg.Database.MaxIdleConns),
			MaxLifetime:   time.Hour,
		}, cfg.Store.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		logger.Info("database connected successfully", "namespace", cfg.Store.Namespace)
		return p, nil

	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}
