// Command backfill machine-translates content that has a source-language
// record but no record yet for the target language. It is intended to be
// invoked by an external cron job or by hand after importing content.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mkravets/polyglot-backend/internal/adapter/memcache"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/language"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/phrasecache"
	"github.com/mkravets/polyglot-backend/internal/adapter/postgres/translationstore"
	"github.com/mkravets/polyglot-backend/internal/adapter/provider/googletranslate"
	"github.com/mkravets/polyglot-backend/internal/app"
	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/service/translation"
)

func main() {
	contentType := flag.String("content-type", "", "content type to backfill (required)")
	targetLang := flag.String("target-lang", "", "target language code (required)")
	limit := flag.Int("limit", 0, "max rows per run (default from config)")
	flag.Parse()

	if *contentType == "" || *targetLang == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	runLimit := *limit
	if runLimit <= 0 {
		runLimit = cfg.Backfill.CLILimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := translation.NewService(
		logger,
		translationstore.New(pool),
		phrasecache.New(pool),
		language.New(pool),
		memcache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL),
		googletranslate.New(cfg.Translate, logger),
		cfg.Cache,
		cfg.Translate,
	)

	report, err := svc.Backfill(ctx, translation.BackfillInput{
		ContentType: *contentType,
		TargetLang:  *targetLang,
		Limit:       runLimit,
	})
	if err != nil {
		logger.Error("backfill failed",
			slog.String("content_type", *contentType),
			slog.String("target_lang", *targetLang),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("backfill completed",
		slog.String("content_type", *contentType),
		slog.String("target_lang", report.TargetLang),
		slog.Int("processed", report.Processed),
		slog.Int("translated", report.Translated),
	)
}
