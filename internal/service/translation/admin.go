package translation

import (
	"context"
	"strings"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// List returns a page of translation records for the admin UI, newest
// updates first, together with pagination metadata. LangCode is required;
// content type and the manual-only flag narrow the result.
func (s *Service) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, domain.Pagination, error) {
	if strings.TrimSpace(filter.LangCode) == "" {
		return nil, domain.Pagination{}, domain.NewValidationError("lang_code", "required")
	}
	filter = normalizeFilter(filter)

	recs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return recs, domain.NewPagination(filter.Page, filter.Limit, total), nil
}

// Stats reports per-language record counts, split by translation method.
// A nil langCode covers every language with at least one record.
func (s *Service) Stats(ctx context.Context, langCode *string) ([]domain.LanguageStats, error) {
	if langCode != nil && strings.TrimSpace(*langCode) == "" {
		return nil, domain.NewValidationError("lang_code", "must not be blank")
	}
	return s.store.Stats(ctx, langCode)
}
