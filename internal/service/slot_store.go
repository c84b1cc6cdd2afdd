package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"mathmountain/internal/config"
	"mathmountain/internal/database"
	"mathmountain/internal/repository"
)

// redisKeyPrefix namespaces history slots in a shared Redis database
const redisKeyPrefix = "mathmountain:"

// OpenSlotStore connects the history backend selected by cfg.HistoryBackend.
// The returned closer releases the underlying connection.
func OpenSlotStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (SlotStore, io.Closer, error) {
	switch strings.ToLower(cfg.HistoryBackend) {
	case "redis":
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisSlotRepository(rdb, redisKeyPrefix), rdb, nil

	case "sql", "":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("type", cfg.DatabaseType).Msg("Database connection established")

		applied, err := db.RunMigrations(cfg.MigrationsPath)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("Applied migration")
		}
		return repository.NewSlotRepository(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported history backend: %s", cfg.HistoryBackend)
	}
}
