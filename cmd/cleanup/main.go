// Command cleanup removes expired phrase cache entries. It is intended to
// be invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/phrasecache"
	"github.com/mkravets/polyglot-backend/internal/app"
	"github.com/mkravets/polyglot-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	purged, err := phrasecache.New(pool).PurgeExpired(ctx)
	if err != nil {
		logger.Error("phrase cache purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("phrase cache purge completed", slog.Int64("purged", purged))
}
