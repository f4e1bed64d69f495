package translation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// Languages returns the language registry ordered by sort_order. Both the
// active-only and the full list are cached independently under fixed keys.
func (s *Service) Languages(ctx context.Context, activeOnly bool) ([]domain.Language, error) {
	cacheKey := cacheKeyLanguages(activeOnly)

	if s.cacheEnabled {
		if cached, ok := s.cache.Get(cacheKey); ok {
			var langs []domain.Language
			if err := json.Unmarshal([]byte(cached), &langs); err == nil {
				return langs, nil
			}
			s.cache.Delete(cacheKey)
		}
	}

	langs, err := s.languages.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if encoded, err := json.Marshal(langs); err == nil {
			s.cache.Set(cacheKey, string(encoded))
		}
	}

	return langs, nil
}

// SetLanguageActive toggles a language on or off and busts both registry
// cache entries, so the change is visible on the next read.
func (s *Service) SetLanguageActive(ctx context.Context, langCode string, active bool) error {
	langCode = strings.TrimSpace(langCode)
	if langCode == "" {
		return domain.NewValidationError("lang_code", "required")
	}
	if len(langCode) > maxLangCodeLen {
		return domain.NewValidationError("lang_code", "too long")
	}

	if err := s.languages.SetActive(ctx, langCode, active); err != nil {
		return err
	}

	if s.cacheEnabled {
		s.cache.Delete(cacheKeyLanguages(true))
		s.cache.Delete(cacheKeyLanguages(false))
	}

	s.log.InfoContext(ctx, "language status updated",
		slog.String("lang_code", langCode),
		slog.Bool("active", active),
	)

	return nil
}
