package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/migrations"
	"riseleads_backend/platform/db"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLite stores the snapshot in an embedded database file, one row per key.
type SQLite struct {
	db   *sql.DB
	key  string
	path string
}

// NewSQLite opens (or creates) <dir>/leads.db and applies its migrations.
func NewSQLite(ctx context.Context, dir, key string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	dbPath := filepath.Join(dir, "leads.db")

	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	migrationsFS, err := fs.Sub(migrations.SQLite, "sqlite")
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := db.Migrate(ctx, goose.DialectSQLite3, sqlDB, migrationsFS); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &SQLite{db: sqlDB, key: key, path: dbPath}, nil
}

func (r *SQLite) Driver() string { return "sqlite" }

// Close closes the database.
func (r *SQLite) Close() error {
	return r.db.Close()
}

func (r *SQLite) Load(ctx context.Context) ([]domain.Lead, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM lead_snapshots WHERE storage_key = ?`, r.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode([]byte(payload))
}

func (r *SQLite) Save(ctx context.Context, leads []domain.Lead) error {
	now := nowFunc()
	payload, err := Encode(leads, now)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO lead_snapshots (storage_key, version, payload, lead_count, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			lead_count = excluded.lead_count,
			saved_at = excluded.saved_at
	`, r.key, SnapshotVersion, string(payload), len(leads), now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Quarantine moves the snapshot row to storage key <key>.corrupt-<suffix>.
func (r *SQLite) Quarantine(ctx context.Context, suffix string) (string, error) {
	target := r.key + ".corrupt-" + suffix
	if _, err := r.db.ExecContext(ctx,
		`UPDATE lead_snapshots SET storage_key = ? WHERE storage_key = ?`, target, r.key,
	); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return target, nil
}

// Ping checks the database is reachable.
func (r *SQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
