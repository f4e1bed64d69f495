package rest

import (
	"log/slog"
	"net/http"

	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Translations *TranslationHandler
	Admin        *AdminHandler
	Health       *HealthHandler
	RateLimiter  *middleware.RateLimiter
}

// NewRouter builds the HTTP routing table. Public reads sit behind the
// common chain only; admin routes additionally require the shared token
// and are rate limited per client.
func NewRouter(cfg config.Config, deps RouterDeps, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", deps.Health.Live)
	mux.HandleFunc("GET /readyz", deps.Health.Ready)

	mux.HandleFunc("GET /api/translations", deps.Translations.GetOne)
	mux.HandleFunc("GET /api/translations/batch", deps.Translations.GetBatch)
	mux.HandleFunc("GET /api/translations/languages", deps.Translations.Languages)
	mux.HandleFunc("GET /api/translations/stats", deps.Translations.Stats)

	adminChain := middleware.Chain(
		middleware.AdminToken(cfg.Admin.Token),
		deps.RateLimiter.Limit(cfg.Admin),
	)
	mux.Handle("POST /api/admin/translations", adminChain(http.HandlerFunc(deps.Admin.Save)))
	mux.Handle("POST /api/admin/translations/bulk", adminChain(http.HandlerFunc(deps.Admin.Bulk)))
	mux.Handle("GET /api/admin/translations", adminChain(http.HandlerFunc(deps.Admin.List)))
	mux.Handle("PUT /api/admin/languages/status", adminChain(http.HandlerFunc(deps.Admin.LanguageStatus)))

	common := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)
	return common(mux)
}
