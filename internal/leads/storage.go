package leads

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"riseleads_backend/internal/adapters/storage"
	"riseleads_backend/internal/leads/repository"
	"riseleads_backend/migrations"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/db"
	"riseleads_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// StorageConfig combines the settings every snapshot backend may need.
type StorageConfig interface {
	config.StorageConfig
	config.DatabaseConfig
	config.RedisConfig
	config.MinIOConfig
}

// Storage is an opened snapshot backend.
type Storage struct {
	Repository repository.Repository
	// Health pings the backend; nil for backends with nothing to ping.
	Health interface {
		Ping(ctx context.Context) error
	}
	closers []func()
}

// Close releases the backend's connections.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage connects the backend selected by STORAGE_DRIVER.
func OpenStorage(ctx context.Context, cfg StorageConfig, log *logger.Logger) (*Storage, error) {
	key := cfg.GetStorageKey()
	st := &Storage{}

	switch cfg.GetStorageDriver() {
	case config.StorageMemory:
		st.Repository = repository.NewMemory()

	case config.StorageFile:
		repo, err := repository.NewFile(cfg.GetDataDir(), key)
		if err != nil {
			return nil, err
		}
		st.Repository = repo
		log.Info("lead snapshot file", "path", repo.Path())

	case config.StorageSQLite:
		repo, err := repository.NewSQLite(ctx, cfg.GetDataDir(), key)
		if err != nil {
			return nil, err
		}
		st.Repository, st.Health = repo, repo
		st.closers = append(st.closers, func() { _ = repo.Close() })

	case config.StoragePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		migrationsFS, err := fs.Sub(migrations.Postgres, "postgres")
		if err == nil {
			err = db.RunMigrations(ctx, pool, migrationsFS)
		}
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		st.Repository, st.Health = repository.NewPostgres(pool, key), pool
		st.closers = append(st.closers, pool.Close)

	case config.StorageRedis:
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st.Repository, st.Health = repository.NewRedis(client, key), redisPinger{client}
		st.closers = append(st.closers, func() { _ = client.Close() })

	case config.StorageMinIO:
		objects, err := storage.NewMinIOService(cfg)
		if err != nil {
			return nil, err
		}
		bucket := cfg.GetMinioBucketSnapshots()
		if err := objects.EnsureBucketExists(ctx, bucket); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", bucket, err)
		}
		st.Repository = repository.NewObject(objects, bucket, key)

	default:
		return nil, errors.New("unknown storage driver " + cfg.GetStorageDriver())
	}

	log.Info("lead storage opened", "driver", cfg.GetStorageDriver(), "key", key)
	return st, nil
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
