package database

import (
	"context"
	"path/filepath"
	"testing"

	"mathmountain/internal/config"
)

const testMigrationsPath = "../../migrations"

func TestRunMigrationsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "migrations.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	applied, err := db.RunMigrations(testMigrationsPath)
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if len(applied) == 0 {
		t.Fatal("expected at least one migration to run")
	}

	// A second run is a no-op
	applied, err = db.RunMigrations(testMigrationsPath)
	if err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second run applied %v, want none", applied)
	}

	ctx := context.Background()
	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "history_slots").Scan(&name)
	if err != nil {
		t.Fatalf("history_slots table not found: %v", err)
	}
}

func TestUpsertSlotIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "upsert.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if _, err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	ctx := context.Background()
	for _, payload := range []string{"[]", `[{"id":1}]`} {
		if _, err := db.ExecContext(ctx, db.Dialect.UpsertSlotQuery(), "slot", payload); err != nil {
			t.Fatalf("upsert %q: %v", payload, err)
		}
	}

	var got string
	if err := db.QueryRowContext(ctx, "SELECT payload FROM history_slots WHERE slot_key = ?", "slot").Scan(&got); err != nil {
		t.Fatalf("select payload: %v", err)
	}
	if got != `[{"id":1}]` {
		t.Errorf("payload = %v, want latest write", got)
	}
}

func TestInitializeWithUnknownType(t *testing.T) {
	_, err := InitializeWithConfig(&config.Config{DatabaseType: "oracle"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
