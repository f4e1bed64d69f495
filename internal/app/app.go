// Package app assembles the application: configuration, logging, database,
// services, and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkravets/polyglot-backend/internal/adapter/memcache"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/language"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/phrasecache"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/translationstore"
	"github.com/mkravets/polyglot-backend/internal/adapter/provider/googletranslate"
	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/service/translation"
	"github.com/mkravets/polyglot-backend/internal/transport/middleware"
	"github.com/mkravets/polyglot-backend/internal/transport/rest"
)

// Run is the application entry point. It wires configuration, logging, the
// database pool, services, and the HTTP server, then blocks until ctx is
// cancelled and shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	var cache *memcache.TextCache
	if cfg.Cache.Enabled {
		cache = memcache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	svc := translation.NewService(
		logger,
		translationstore.New(pool),
		phrasecache.New(pool),
		language.New(pool),
		cache,
		googletranslate.New(cfg.Translate, logger),
		cfg.Cache,
		cfg.Translate,
	)

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	router := rest.NewRouter(*cfg, rest.RouterDeps{
		Translations: rest.NewTranslationHandler(svc, logger),
		Admin:        rest.NewAdminHandler(svc, cfg.Backfill, logger),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
		RateLimiter:  rl,
	}, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
