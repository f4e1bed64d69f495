package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

const defaultLangCode = "en"

type translationReader interface {
	GetOne(ctx context.Context, key domain.ContentKey, fallback string) string
	GetBatch(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error)
	Languages(ctx context.Context, activeOnly bool) ([]domain.Language, error)
	Stats(ctx context.Context, langCode *string) ([]domain.LanguageStats, error)
}

// TranslationHandler serves the public read endpoints.
type TranslationHandler struct {
	svc translationReader
	log *slog.Logger
}

// NewTranslationHandler creates a TranslationHandler.
func NewTranslationHandler(svc translationReader, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{svc: svc, log: logger.With("handler", "translations")}
}

// GetOne resolves a single translated field.
// GET /api/translations?content_type=article&content_id=42&field_name=title&lang_code=es&fallback=Hello
func (h *TranslationHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	contentID, ok := parseContentID(w, q.Get("content_id"))
	if !ok {
		return
	}

	key := domain.ContentKey{
		ContentType: q.Get("content_type"),
		ContentID:   contentID,
		FieldName:   q.Get("field_name"),
		LangCode:    q.Get("lang_code"),
	}
	if key.ContentType == "" || key.FieldName == "" {
		writeError(w, http.StatusBadRequest, "content_type and field_name are required")
		return
	}
	if key.LangCode == "" {
		key.LangCode = defaultLangCode
	}

	text := h.svc.GetOne(r.Context(), key, q.Get("fallback"))
	writeJSON(w, http.StatusOK, map[string]string{
		"translation": text,
		"lang_code":   key.LangCode,
	})
}

// GetBatch resolves every translated field of one content object.
// GET /api/translations/batch?content_type=article&content_id=42&lang_code=es
func (h *TranslationHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	contentID, ok := parseContentID(w, q.Get("content_id"))
	if !ok {
		return
	}

	contentType := q.Get("content_type")
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "content_type is required")
		return
	}
	langCode := q.Get("lang_code")
	if langCode == "" {
		langCode = defaultLangCode
	}

	fields, err := h.svc.GetBatch(r.Context(), contentType, contentID, langCode)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, fields)
}

// Languages lists the language registry. Inactive languages are hidden
// unless active_only=false is passed explicitly.
// GET /api/translations/languages?active_only=false
func (h *TranslationHandler) Languages(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") != "false"

	langs, err := h.svc.Languages(r.Context(), activeOnly)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, langs)
}

// Stats reports per-language translation counts.
// GET /api/translations/stats?lang_code=es
func (h *TranslationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var langCode *string
	if v := r.URL.Query().Get("lang_code"); v != "" {
		langCode = &v
	}

	stats, err := h.svc.Stats(r.Context(), langCode)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// parseContentID reads an optional numeric content id. The second return is
// false when the value was present but malformed and a 400 was written.
func parseContentID(w http.ResponseWriter, raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "content_id must be an integer")
		return nil, false
	}
	return &id, true
}
