package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_TYPE", "HISTORY_SLOT", "HISTORY_CAP", "RANDOM_SEED", "HISTORY_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %v, want sqlite", cfg.DatabaseType)
	}
	if cfg.HistorySlot != "mathMountainHistory" {
		t.Errorf("HistorySlot = %v, want mathMountainHistory", cfg.HistorySlot)
	}
	if cfg.HistoryCap != 50 {
		t.Errorf("HistoryCap = %v, want 50", cfg.HistoryCap)
	}
	if cfg.HistoryBackend != "sql" {
		t.Errorf("HistoryBackend = %v, want sql", cfg.HistoryBackend)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("RandomSeed = %v, want 0", cfg.RandomSeed)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "number", value: "25", want: 25},
		{name: "garbage", value: "lots", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MM_TEST_INT", tt.value)
			if got := getEnvInt("MM_TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}
