// Package translation implements the translation subsystem: cached lookup
// with fallback, the single write path with cache invalidation, phrase-level
// machine translation, idempotent backfills, and the language registry.
package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type translationStore interface {
	Get(ctx context.Context, key domain.ContentKey) (*domain.Translation, error)
	GetBatch(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error)
	Upsert(ctx context.Context, rec domain.Translation) error
	FindMissing(ctx context.Context, contentType, sourceLang, targetLang string, limit int) ([]domain.BackfillGap, error)
	List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, int, error)
	Stats(ctx context.Context, langCode *string) ([]domain.LanguageStats, error)
}

type phraseStore interface {
	Hit(ctx context.Context, sourceHash, sourceLang, targetLang string) (string, bool, error)
	Store(ctx context.Context, phrase domain.Phrase, ttl time.Duration) error
}

type languageStore interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Language, error)
	SetActive(ctx context.Context, langCode string, active bool) error
}

type textCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

type translator interface {
	Configured() bool
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the translation business logic.
type Service struct {
	log       *slog.Logger
	store     translationStore
	phrases   phraseStore
	languages languageStore
	cache     textCache
	provider  translator

	cacheEnabled bool
	sourceLang   string
	phraseTTL    time.Duration

	// serializes backfill runs per (content_type, target_lang);
	// concurrent triggers share one run's result
	backfills singleflight.Group
}

// NewService creates a new translation Service.
func NewService(
	logger *slog.Logger,
	store translationStore,
	phrases phraseStore,
	languages languageStore,
	cache textCache,
	provider translator,
	cacheCfg config.CacheConfig,
	translateCfg config.TranslateConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "translation"),
		store:        store,
		phrases:      phrases,
		languages:    languages,
		cache:        cache,
		provider:     provider,
		cacheEnabled: cacheCfg.Enabled && cache != nil,
		sourceLang:   translateCfg.SourceLang,
		phraseTTL:    translateCfg.PhraseTTL,
	}
}

// ---------------------------------------------------------------------------
// Cache keys
// ---------------------------------------------------------------------------

const cachePrefix = "translation:"

// contentIDToken renders the optional content id as a stable key token.
// "-" marks the absent-id singleton and cannot collide with a real id.
func contentIDToken(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

// cacheKeyOne is the text-cache key for a single lookup tuple.
func cacheKeyOne(key domain.ContentKey) string {
	raw := fmt.Sprintf("%s_%s_%s_%s", key.ContentType, contentIDToken(key.ContentID), key.FieldName, key.LangCode)
	sum := sha256.Sum256([]byte(raw))
	return cachePrefix + hex.EncodeToString(sum[:])
}

// cacheKeyBatch is the text-cache key for a whole batch unit.
func cacheKeyBatch(contentType string, contentID *int64, langCode string) string {
	return fmt.Sprintf("%sbatch_%s_%s_%s", cachePrefix, contentType, contentIDToken(contentID), langCode)
}

func cacheKeyLanguages(activeOnly bool) string {
	if activeOnly {
		return cachePrefix + "languages_active"
	}
	return cachePrefix + "languages_all"
}
