package repository

import (
	"context"
	"errors"

	"riseleads_backend/internal/leads/domain"
)

// DefaultStorageKey is the key the lead collection has always been stored under.
const DefaultStorageKey = "rise_leads_os_v4"

// ErrCorrupt is returned by Load when a snapshot exists but cannot be decoded.
var ErrCorrupt = errors.New("lead snapshot is corrupt")

// Repository persists the whole lead collection as one snapshot.
// Load returns an empty collection when nothing has been saved yet.
type Repository interface {
	Load(ctx context.Context) ([]domain.Lead, error)
	Save(ctx context.Context, leads []domain.Lead) error
}

// Quarantiner is implemented by backends that can move an unreadable snapshot
// aside, so the next Save does not overwrite it. The returned location names
// where the copy now lives.
type Quarantiner interface {
	Quarantine(ctx context.Context, suffix string) (string, error)
}

// Driver is implemented by every backend for logging and metrics labels.
type Driver interface {
	Driver() string
}
