// Package phrasecache implements the content-addressed cache of raw
// machine-translated phrases on PostgreSQL. Identity is (source text hash,
// source lang, target lang); entries expire after a retention window and
// become eligible for re-translation.
package phrasecache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/domain"
)

// Repo provides phrase cache persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new phrase cache repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

// Hit folds the lookup and the hit-counter bump into one statement: only a
// live (non-expired) entry matches, and matching is what increments it.
const hitSQL = `
UPDATE translation_cache
SET cache_hits = cache_hits + 1
WHERE source_text_hash = $1
  AND source_lang = $2
  AND target_lang = $3
  AND (expires_at IS NULL OR expires_at > now())
RETURNING translated_text, cache_hits`

const storeSQL = `
INSERT INTO translation_cache
    (source_text_hash, source_lang, target_lang, source_text, translated_text, cache_hits, expires_at)
VALUES ($1, $2, $3, $4, $5, 0, now() + $6)
ON CONFLICT (source_text_hash, source_lang, target_lang)
DO UPDATE SET
    translated_text = EXCLUDED.translated_text,
    source_text     = EXCLUDED.source_text,
    expires_at      = EXCLUDED.expires_at`

const purgeSQL = `
DELETE FROM translation_cache
WHERE expires_at IS NOT NULL AND expires_at <= now()`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Hit returns the cached translation for a phrase and increments its hit
// counter. The second return is false when no live entry exists.
func (r *Repo) Hit(ctx context.Context, sourceHash, sourceLang, targetLang string) (string, bool, error) {
	var (
		translated string
		hits       int
	)
	err := r.db.QueryRow(ctx, hitSQL, sourceHash, sourceLang, targetLang).Scan(&translated, &hits)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, postgres.MapError(err, "phrase cache hit")
	}

	return translated, true, nil
}

// Store saves a freshly machine-translated phrase with the given retention
// window. Re-storing an existing phrase refreshes its text and expiry but
// keeps the accumulated hit counter.
func (r *Repo) Store(ctx context.Context, phrase domain.Phrase, ttl time.Duration) error {
	_, err := r.db.Exec(ctx, storeSQL,
		phrase.SourceHash,
		phrase.SourceLang,
		phrase.TargetLang,
		domain.TruncatedSource(phrase.SourceText),
		phrase.TranslatedText,
		ttl,
	)
	if err != nil {
		return postgres.MapError(err, "phrase cache store")
	}

	return nil
}

// PurgeExpired deletes entries past their expiry and reports how many went.
func (r *Repo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, purgeSQL)
	if err != nil {
		return 0, postgres.MapError(err, "phrase cache purge")
	}

	return tag.RowsAffected(), nil
}
