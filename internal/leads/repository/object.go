package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"riseleads_backend/internal/leads/domain"
)

// ErrObjectNotFound is returned by an ObjectStore when the object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the slice of an S3-compatible client the object backend needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Object stores the snapshot as <key>.json in a bucket.
type Object struct {
	store  ObjectStore
	bucket string
	key    string
}

func NewObject(store ObjectStore, bucket, key string) *Object {
	return &Object{store: store, bucket: bucket, key: key + ".json"}
}

func (r *Object) Driver() string { return "minio" }

func (r *Object) Load(ctx context.Context) ([]domain.Lead, error) {
	data, err := r.store.GetObject(ctx, r.bucket, r.key)
	if errors.Is(err, ErrObjectNotFound) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode(data)
}

// Quarantine copies the snapshot to <key>.corrupt-<suffix>.json. The original
// object stays in place until the next Save replaces it.
func (r *Object) Quarantine(ctx context.Context, suffix string) (string, error) {
	data, err := r.store.GetObject(ctx, r.bucket, r.key)
	if err != nil {
		return "", fmt.Errorf("read snapshot for quarantine: %w", err)
	}
	target := strings.TrimSuffix(r.key, ".json") + ".corrupt-" + suffix + ".json"
	if err := r.store.PutObject(ctx, r.bucket, target, "application/json", data); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return r.bucket + "/" + target, nil
}

func (r *Object) Save(ctx context.Context, leads []domain.Lead) error {
	data, err := Encode(leads, nowFunc())
	if err != nil {
		return err
	}
	if err := r.store.PutObject(ctx, r.bucket, r.key, "application/json", data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
