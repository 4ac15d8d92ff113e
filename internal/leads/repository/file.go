package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"riseleads_backend/internal/leads/domain"
)

var nowFunc = time.Now

// File stores the snapshot as <dir>/<key>.json. Writes go to a temp file that is
// renamed over the target, so a crash never leaves a half-written snapshot.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(dir, key string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &File{path: filepath.Join(dir, key+".json")}, nil
}

func (f *File) Driver() string { return "file" }

// Path returns the snapshot file location.
func (f *File) Path() string { return f.path }

func (f *File) Load(_ context.Context) ([]domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Quarantine renames the snapshot to <key>.corrupt-<suffix>.json.
func (f *File) Quarantine(_ context.Context, suffix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := strings.TrimSuffix(f.path, ".json") + ".corrupt-" + suffix + ".json"
	if err := os.Rename(f.path, target); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	return target, nil
}

func (f *File) Save(_ context.Context, leads []domain.Lead) error {
	data, err := Encode(leads, nowFunc())
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
