package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mathmountain/internal/config"
	"mathmountain/internal/generator"
	"mathmountain/internal/logger"
	"mathmountain/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("history_backend", cfg.HistoryBackend).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Math Mountain")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	slots, closer, err := service.OpenSlotStore(connectCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer closer.Close()

	history := service.NewHistoryService(slots, cfg.HistorySlot, cfg.HistoryCap, log)
	if _, err := history.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load history")
	}

	src := generator.New(cfg.RandomSeed)
	exercises := service.NewExerciseService(src, history, log)

	r := newREPL(exercises, history, os.Stdin, os.Stdout)
	if err := r.run(ctx); err != nil {
		log.Error().Err(err).Msg("Session ended with error")
	}

	log.Info().Msg("Goodbye")
}
