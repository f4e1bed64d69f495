// Package googletranslate is the HTTP client for the Google Cloud
// Translation v2 REST API. Calls carry a short timeout and run behind a
// circuit breaker; a tripped breaker surfaces as an ordinary error, which
// callers treat the same as any other provider failure.
package googletranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mkravets/polyglot-backend/internal/config"
)

// Provider translates single phrases via the Google Translate v2 endpoint.
type Provider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *slog.Logger
}

// New creates a Provider from TranslateConfig. An empty API key produces a
// valid but unconfigured provider; callers must check Configured before use.
func New(cfg config.TranslateConfig, logger *slog.Logger) *Provider {
	return &Provider{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "google-translate",
			Timeout: 30 * time.Second,
		}),
		log: logger.With("adapter", "googletranslate"),
	}
}

// Configured reports whether a provider credential is present.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

// Translate returns the machine translation of text. Any failure (network,
// non-200, malformed body, open breaker) comes back as an error; the
// provider never fabricates a translation.
func (p *Provider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, err := p.breaker.Execute(func() (any, error) {
		return p.call(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (p *Provider) call(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	form := url.Values{
		"q":      {text},
		"source": {sourceLang},
		"target": {targetLang},
		"format": {"text"},
		"key":    {p.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("googletranslate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p.log.DebugContext(ctx, "translate request",
		slog.String("source", sourceLang),
		slog.String("target", targetLang),
		slog.Int("text_len", len(text)),
	)

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("googletranslate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("googletranslate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("googletranslate: read body: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("googletranslate: decode json: %w", err)
	}

	if len(decoded.Data.Translations) == 0 {
		return "", fmt.Errorf("googletranslate: empty translations in response")
	}

	return decoded.Data.Translations[0].TranslatedText, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The request body is re-created for the retry because form readers
// are single-use.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	clone := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err == nil {
			clone.Body = body
		}
	}

	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry {
		return resp, nil
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "translate retry", slog.String("reason", reason))

	time.Sleep(500 * time.Millisecond)

	return p.httpClient.Do(clone)
}
