package leads

import (
	"context"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	return &config.Config{
		StorageDriver: driver,
		StorageKey:    "rise_leads_os_v4",
		DataDir:       t.TempDir(),
	}
}

func TestOpenStorageDrivers(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		driver string
		setup  func(cfg *config.Config)
	}{
		{name: "memory", driver: config.StorageMemory},
		{name: "file", driver: config.StorageFile},
		{name: "sqlite", driver: config.StorageSQLite},
		{name: "redis", driver: config.StorageRedis, setup: func(cfg *config.Config) {
			cfg.RedisURL = "redis://" + mr.Addr()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.driver)
			if tt.setup != nil {
				tt.setup(cfg)
			}
			ctx := context.Background()

			st, err := OpenStorage(ctx, cfg, logger.Discard())
			if err != nil {
				t.Fatalf("open %s: %v", tt.driver, err)
			}
			defer st.Close()

			if err := st.Repository.Save(ctx, []domain.Lead{{ID: "1", Name: "Acme", Status: domain.StatusNew}}); err != nil {
				t.Fatal(err)
			}
			leads, err := st.Repository.Load(ctx)
			if err != nil || len(leads) != 1 || leads[0].Name != "Acme" {
				t.Fatalf("round trip failed: %+v %v", leads, err)
			}
			if st.Health != nil {
				if err := st.Health.Ping(ctx); err != nil {
					t.Fatalf("ping: %v", err)
				}
			}
		})
	}
}

func TestOpenStorageUnknownDriver(t *testing.T) {
	if _, err := OpenStorage(context.Background(), testConfig(t, "etcd"), logger.Discard()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
