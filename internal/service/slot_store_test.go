package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"mathmountain/internal/config"
	"mathmountain/internal/repository"
)

func TestOpenSlotStoreSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.Config{
		DatabaseType:   "sqlite",
		DatabasePath:   filepath.Join(t.TempDir(), "open.db"),
		MigrationsPath: "../../migrations",
		HistoryBackend: "sql",
	}
	store, closer, err := OpenSlotStore(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenSlotStore() error = %v", err)
	}
	defer closer.Close()

	if _, ok := store.(*repository.SlotRepository); !ok {
		t.Errorf("OpenSlotStore() = %T, want *repository.SlotRepository", store)
	}

	history := NewHistoryService(store, testSlot, 50, zerolog.Nop())
	if err := history.Append(context.Background(), testSession(t, 1)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	sessions, err := NewHistoryService(store, testSlot, 50, zerolog.Nop()).Load(context.Background())
	if err != nil || len(sessions) != 1 {
		t.Errorf("Load() = %d sessions, %v; want 1", len(sessions), err)
	}
}

func TestOpenSlotStoreUnknownBackend(t *testing.T) {
	cfg := &config.Config{HistoryBackend: "etcd"}
	if _, _, err := OpenSlotStore(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("OpenSlotStore() error = nil, want unsupported backend")
	}
}

// compile-time checks that both backends satisfy the store contract
var (
	_ SlotStore = (*repository.SlotRepository)(nil)
	_ SlotStore = (*repository.RedisSlotRepository)(nil)
)
