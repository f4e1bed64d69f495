package translation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Read path
// ---------------------------------------------------------------------------

// GetOne resolves a single translation: text cache, then store, then the
// caller-supplied fallback. The fallback is returned unchanged and never
// cached (it varies per caller). This path does no network I/O and treats a
// store failure as a miss, so the worst case is the visitor seeing the
// fallback text.
func (s *Service) GetOne(ctx context.Context, key domain.ContentKey, fallback string) string {
	cacheKey := cacheKeyOne(key)

	if s.cacheEnabled {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached
		}
	}

	rec, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(ctx, "translation lookup failed",
				slog.String("content_type", key.ContentType),
				slog.String("field_name", key.FieldName),
				slog.String("lang_code", key.LangCode),
				slog.String("error", err.Error()),
			)
		}
		return fallback
	}

	if rec.TranslatedText == "" {
		return fallback
	}

	if s.cacheEnabled {
		s.cache.Set(cacheKey, rec.TranslatedText)
	}

	return rec.TranslatedText
}

// GetBatch resolves every translated field of one content object in a
// single store round trip. The whole unit is cached as one value. A content
// object with no translations yields an empty map, not an error.
func (s *Service) GetBatch(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error) {
	cacheKey := cacheKeyBatch(contentType, contentID, langCode)

	if s.cacheEnabled {
		if cached, ok := s.cache.Get(cacheKey); ok {
			var fields map[string]domain.FieldTranslation
			if err := json.Unmarshal([]byte(cached), &fields); err == nil {
				return fields, nil
			}
			// Undecodable entry: drop it and fall through to the store.
			s.cache.Delete(cacheKey)
		}
	}

	fields, err := s.store.GetBatch(ctx, contentType, contentID, langCode)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled && len(fields) > 0 {
		if encoded, err := json.Marshal(fields); err == nil {
			s.cache.Set(cacheKey, string(encoded))
		}
	}

	return fields, nil
}

// ---------------------------------------------------------------------------
// Write path
// ---------------------------------------------------------------------------

// Save upserts one translation record and invalidates the affected cache
// entries. This is the only write path into the store: manual edits and
// the backfill engine both funnel through it, so invalidation always fires.
//
// Invalidation happens after the store commit. A reader interleaving
// between commit and delete can re-cache the previous value for at most one
// cache TTL; that window is an accepted trade, not a bug.
func (s *Service) Save(ctx context.Context, input SaveInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	rec := domain.Translation{
		Key:            input.Key(),
		OriginalText:   input.OriginalText,
		TranslatedText: input.TranslatedText,
		ManualOverride: input.ManualOverride,
		Method:         domain.MethodFor(input.ManualOverride),
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return err
	}

	if s.cacheEnabled {
		s.cache.Delete(cacheKeyOne(rec.Key))
		s.cache.Delete(cacheKeyBatch(rec.Key.ContentType, rec.Key.ContentID, rec.Key.LangCode))
	}

	s.log.DebugContext(ctx, "translation saved",
		slog.String("content_type", rec.Key.ContentType),
		slog.String("field_name", rec.Key.FieldName),
		slog.String("lang_code", rec.Key.LangCode),
		slog.Bool("manual_override", rec.ManualOverride),
	)

	return nil
}
