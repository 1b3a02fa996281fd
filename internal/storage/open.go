package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"restaurant-menu/internal/config"
	"restaurant-menu/internal/database"
	"restaurant-menu/internal/logger"
)

// Open builds the document store selected by storage.driver. The returned
// cleanup releases any connection the store holds.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (DocumentStore, func(), error) {
	requestID := "startup"
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile:
		s, err := NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.DriverPostgres:
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)
		return NewPostgresStore(db), db.Close, nil

	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("sqlite_opened", "Opened SQLite database", requestID, map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return s, func() { _ = s.Close() }, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("redis_connected", "Connected to Redis", requestID, map[string]interface{}{
			"addr": cfg.Redis.Addr,
		})
		return NewRedisStore(rdb), func() { _ = rdb.Close() }, nil

	case config.DriverS3:
		s, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}
