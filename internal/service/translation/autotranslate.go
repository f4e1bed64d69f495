package translation

import (
	"context"
	"log/slog"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// AutoTranslate machine-translates one phrase, consulting the durable phrase
// cache first. It is best-effort by contract: on any failure (unconfigured
// provider, upstream error, open breaker) it returns the input text unchanged
// and never an error, so callers can always render something.
func (s *Service) AutoTranslate(ctx context.Context, text, sourceLang, targetLang string) string {
	if text == "" || sourceLang == targetLang {
		return text
	}

	hash := domain.PhraseHash(text)

	cached, ok, err := s.phrases.Hit(ctx, hash, sourceLang, targetLang)
	if err != nil {
		s.log.WarnContext(ctx, "phrase cache lookup failed",
			slog.String("target_lang", targetLang),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return cached
	}

	if !s.provider.Configured() {
		s.log.DebugContext(ctx, "translate provider not configured, returning source text")
		return text
	}

	translated, err := s.provider.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		s.log.WarnContext(ctx, "machine translation failed",
			slog.String("source_lang", sourceLang),
			slog.String("target_lang", targetLang),
			slog.String("error", err.Error()),
		)
		return text
	}

	phrase := domain.Phrase{
		SourceHash:     hash,
		SourceText:     domain.TruncatedSource(text),
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		TranslatedText: translated,
	}
	if err := s.phrases.Store(ctx, phrase, s.phraseTTL); err != nil {
		// The translation is still good; only reuse is lost.
		s.log.WarnContext(ctx, "phrase cache store failed",
			slog.String("target_lang", targetLang),
			slog.String("error", err.Error()),
		)
	}

	return translated
}
