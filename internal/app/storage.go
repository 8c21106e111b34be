package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/config"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository"
	"github.com/Freeeeeet/gym_booking_bot/internal/repository/postgres"
	"github.com/Freeeeeet/gym_booking_bot/internal/storage"
)

// OpenStore открывает хранилище по STORAGE_DRIVER. Для postgres
// применяет миграции.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return repository.NewKVStore(storage.NewMemory()), nil

	case config.DriverFile:
		kv, err := storage.NewFile(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.Info("Using file storage", zap.String("path", kv.Path()))
		return repository.NewKVStore(kv), nil

	case config.DriverRedis:
		kv, err := storage.NewRedis(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		logger.Info("Using redis storage", zap.String("addr", cfg.RedisAddr))
		return repository.NewKVStore(kv), nil

	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Connected to database")

	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return postgres.NewStore(pool), nil
}
