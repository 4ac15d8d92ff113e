package repository

import (
	"context"
	"errors"
	"fmt"

	"riseleads_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores the snapshot as one JSONB row per storage key.
type Postgres struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgres(pool *pgxpool.Pool, key string) *Postgres {
	return &Postgres{pool: pool, key: key}
}

func (r *Postgres) Driver() string { return "postgres" }

func (r *Postgres) Load(ctx context.Context) ([]domain.Lead, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `
		SELECT payload
		FROM lead_snapshots
		WHERE storage_key = $1
	`, r.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode(payload)
}

func (r *Postgres) Save(ctx context.Context, leads []domain.Lead) error {
	now := nowFunc()
	payload, err := Encode(leads, now)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO lead_snapshots (storage_key, version, payload, lead_count, saved_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (storage_key) DO UPDATE SET
			version = EXCLUDED.version,
			payload = EXCLUDED.payload,
			lead_count = EXCLUDED.lead_count,
			saved_at = EXCLUDED.saved_at
	`, r.key, SnapshotVersion, payload, len(leads), now.UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Quarantine moves the snapshot row to storage key <key>.corrupt-<suffix>.
func (r *Postgres) Quarantine(ctx context.Context, suffix string) (string, error) {
	target := r.key + ".corrupt-" + suffix
	if _, err := r.pool.Exec(ctx, `
		UPDATE lead_snapshots
		SET storage_key = $1
		WHERE storage_key = $2
	`, target, r.key); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return target, nil
}
