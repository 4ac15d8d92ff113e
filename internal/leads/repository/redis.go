package repository

import (
	"context"
	"errors"
	"fmt"

	"riseleads_backend/internal/leads/domain"

	"github.com/redis/go-redis/v9"
)

// Redis stores the snapshot as a single string value under the storage key.
type Redis struct {
	client redis.UniversalClient
	key    string
}

func NewRedis(client redis.UniversalClient, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Driver() string { return "redis" }

func (r *Redis) Load(ctx context.Context) ([]domain.Lead, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode(data)
}

// Quarantine renames the key to <key>.corrupt-<suffix>.
func (r *Redis) Quarantine(ctx context.Context, suffix string) (string, error) {
	target := r.key + ".corrupt-" + suffix
	if err := r.client.Rename(ctx, r.key, target).Err(); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return target, nil
}

func (r *Redis) Save(ctx context.Context, leads []domain.Lead) error {
	data, err := Encode(leads, nowFunc())
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
