package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/domain"
	"github.com/mkravets/polyglot-backend/internal/service/translation"
)

type adminService interface {
	Save(ctx context.Context, input translation.SaveInput) error
	Backfill(ctx context.Context, input translation.BackfillInput) (domain.BackfillReport, error)
	List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, domain.Pagination, error)
	SetLanguageActive(ctx context.Context, langCode string, active bool) error
}

// AdminHandler serves the admin write endpoints.
type AdminHandler struct {
	svc      adminService
	apiLimit int
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, cfg config.BackfillConfig, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:      svc,
		apiLimit: cfg.APILimit,
		log:      logger.With("handler", "admin"),
	}
}

type saveRequest struct {
	ContentType    string `json:"content_type"`
	ContentID      *int64 `json:"content_id"`
	FieldName      string `json:"field_name"`
	LangCode       string `json:"lang_code"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	ManualOverride bool   `json:"manual_override"`
}

// Save upserts one translation record.
// POST /api/admin/translations
func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input := translation.SaveInput{
		ContentType:    req.ContentType,
		ContentID:      req.ContentID,
		FieldName:      req.FieldName,
		LangCode:       req.LangCode,
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		ManualOverride: req.ManualOverride,
	}
	if err := h.svc.Save(r.Context(), input); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

type bulkRequest struct {
	ContentType string `json:"content_type"`
	TargetLang  string `json:"target_lang"`
	Limit       int    `json:"limit"`
}

// Bulk runs one backfill batch and reports what it did.
// POST /api/admin/translations/bulk
func (h *AdminHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > h.apiLimit {
		limit = h.apiLimit
	}

	report, err := h.svc.Backfill(r.Context(), translation.BackfillInput{
		ContentType: req.ContentType,
		TargetLang:  req.TargetLang,
		Limit:       limit,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type listResponse struct {
	Items      []domain.Translation `json:"items"`
	Pagination domain.Pagination    `json:"pagination"`
}

// List returns one admin page of translation records.
// GET /api/admin/translations?lang_code=es&content_type=article&manual_only=true&page=1&limit=50
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.TranslationFilter{
		LangCode:   q.Get("lang_code"),
		ManualOnly: q.Get("manual_only") == "true",
	}
	if v := q.Get("content_type"); v != "" {
		filter.ContentType = &v
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	items, page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Pagination: page})
}

type languageStatusRequest struct {
	LangCode string `json:"lang_code"`
	Active   bool   `json:"active"`
}

// LanguageStatus enables or disables a language.
// PUT /api/admin/languages/status
func (h *AdminHandler) LanguageStatus(w http.ResponseWriter, r *http.Request) {
	var req languageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.SetLanguageActive(r.Context(), req.LangCode, req.Active); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
