package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"riseleads_backend/internal/leads/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeObjectStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return data, nil
}

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{ID: "2", Name: "Beta", Status: domain.StatusClosed, AuditLog: []domain.AuditEntry{}},
		{ID: "1", Name: "Acme", Website: "acme.com", Status: domain.StatusNew, AuditLog: []domain.AuditEntry{}},
	}
}

// exerciseRepository checks the contract every backend shares.
func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	empty, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("initial load: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty collection, got %d leads", len(empty))
	}

	if err := repo.Save(ctx, sampleLeads()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].Website != "acme.com" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if err := repo.Save(ctx, got[:1]); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected full snapshot replacement, got %d leads", len(got))
	}
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemory())
}

func TestFileRepository(t *testing.T) {
	repo, err := NewFile(t.TempDir(), DefaultStorageKey)
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	exerciseRepository(t, repo)

	if filepath.Base(repo.Path()) != DefaultStorageKey+".json" {
		t.Fatalf("unexpected path %s", repo.Path())
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(repo.Path()), "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestFileRepositoryReportsCorruption(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFile(dir, "leads")
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	if err := os.WriteFile(repo.Path(), []byte("{{{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := NewSQLite(context.Background(), t.TempDir(), DefaultStorageKey)
	if err != nil {
		t.Fatalf("new sqlite repo: %v", err)
	}
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseRepository(t, NewRedis(client, DefaultStorageKey))

	if !mr.Exists(DefaultStorageKey) {
		t.Fatal("expected snapshot under the storage key")
	}
}

func TestObjectRepository(t *testing.T) {
	store := &fakeObjectStore{}
	exerciseRepository(t, NewObject(store, "lead-snapshots", DefaultStorageKey))

	if _, ok := store.objects["lead-snapshots/"+DefaultStorageKey+".json"]; !ok {
		t.Fatalf("expected object at <key>.json, have %v", store.objects)
	}
}

func TestFileRepositoryQuarantineKeepsUnreadableSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFile(dir, "leads")
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	if err := os.WriteFile(repo.Path(), []byte("{{{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	loc, err := repo.Quarantine(context.Background(), "20250101T000000Z")
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if want := filepath.Join(dir, "leads.corrupt-20250101T000000Z.json"); loc != want {
		t.Fatalf("location = %s, want %s", loc, want)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "{{{" {
		t.Fatalf("backup = %q, %v", data, err)
	}

	if err := repo.Save(context.Background(), sampleLeads()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if data, _ := os.ReadFile(loc); string(data) != "{{{" {
		t.Fatalf("backup overwritten: %q", data)
	}
}

func TestRedisRepositoryQuarantineRenamesKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	if err := mr.Set("leads", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewRedis(client, "leads")
	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}

	loc, err := repo.Quarantine(context.Background(), "x")
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if got, err := mr.Get(loc); err != nil || got != "not json" {
		t.Fatalf("backup = %q, %v", got, err)
	}
	if mr.Exists("leads") {
		t.Fatal("expected original key to be moved")
	}
}

func TestObjectRepositoryQuarantineCopiesObject(t *testing.T) {
	store := &fakeObjectStore{}
	_ = store.PutObject(context.Background(), "bucket", "leads.json", "application/json", []byte("garbage"))
	repo := NewObject(store, "bucket", "leads")

	loc, err := repo.Quarantine(context.Background(), "x")
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if loc != "bucket/leads.corrupt-x.json" {
		t.Fatalf("location = %s", loc)
	}
	if data, err := store.GetObject(context.Background(), "bucket", "leads.corrupt-x.json"); err != nil || string(data) != "garbage" {
		t.Fatalf("backup = %q, %v", data, err)
	}
}

func TestSQLiteRepositoryQuarantineMovesRow(t *testing.T) {
	repo, err := NewSQLite(context.Background(), t.TempDir(), "leads")
	if err != nil {
		t.Fatalf("new sqlite repo: %v", err)
	}
	defer repo.Close()
	if err := repo.Save(context.Background(), sampleLeads()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loc, err := repo.Quarantine(context.Background(), "x")
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty collection after quarantine, got %d, %v", len(got), err)
	}
	var count int
	if err := repo.db.QueryRow(`SELECT lead_count FROM lead_snapshots WHERE storage_key = ?`, loc).Scan(&count); err != nil || count != 2 {
		t.Fatalf("backup row count = %d, %v", count, err)
	}
}
