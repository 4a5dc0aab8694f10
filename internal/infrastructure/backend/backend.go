// Package backend opens the slot store selected by STORAGE_DRIVER.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/internal/config"
	pgInfra "github.com/fastygo/careconnect/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/careconnect/internal/infrastructure/redis"
	"github.com/fastygo/careconnect/internal/infrastructure/slots"
	"github.com/fastygo/careconnect/repository"
	pgRepo "github.com/fastygo/careconnect/repository/postgres"
	redisRepo "github.com/fastygo/careconnect/repository/redis"
	"github.com/fastygo/careconnect/repository/sqlite"
)

// Store is the union every slot backend implements.
type Store interface {
	repository.SlotStore
	repository.SlotClearer
	repository.HealthChecker
}

// Backend is an opened slot store plus the function that releases it.
type Backend struct {
	Driver string
	Store
	close func() error
}

// Close releases the underlying connection or file.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the backend named by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver := cfg.Storage.Driver
	log := logger.With(zap.String("driver", driver))

	switch driver {
	case config.DriverBolt:
		store, err := slots.Open(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, fmt.Errorf("open bolt slots: %w", err)
		}
		log.Info("slot store opened", zap.String("path", cfg.Bolt.Path))
		return &Backend{Driver: driver, Store: store, close: store.Close}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite slots: %w", err)
		}
		log.Info("slot store opened", zap.String("path", cfg.SQLite.Path))
		return &Backend{Driver: driver, Store: store, close: store.Close}, nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store := redisRepo.NewSlotRepository(client, cfg.Redis.Prefix)
		return &Backend{Driver: driver, Store: store, close: client.Close}, nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := pgRepo.NewSlotRepository(pool)
		return &Backend{Driver: driver, Store: store, close: func() error {
			pgInfra.Close(pool, log)
			return nil
		}}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
