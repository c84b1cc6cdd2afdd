package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// HistoryBackend selects where the session history slot lives: "sql" or "redis"
	HistoryBackend string
	RedisURL       string
	HistorySlot    string
	HistoryCap     int

	// RandomSeed seeds the shared generator; 0 seeds from the clock
	RandomSeed int64

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./mathmountain.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		HistoryBackend: getEnv("HISTORY_BACKEND", "sql"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		HistorySlot:    getEnv("HISTORY_SLOT", "mathMountainHistory"),
		HistoryCap:     getEnvInt("HISTORY_CAP", 50),
		RandomSeed:     int64(getEnvInt("RANDOM_SEED", 0)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
