package translation

import (
	"context"
	"log/slog"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// Backfill finds content rows that have a source-language record but no
// record for the target language yet and machine-translates them. Runs for
// the same (content_type, target_lang) pair are collapsed: concurrent
// triggers wait for the in-flight run and share its report.
//
// The run is idempotent. Each written record removes its own gap, so a
// repeat run finds fewer rows and a fully caught-up run writes nothing.
// Manual overrides are never touched: an existing target-language record,
// manual or not, is not a gap.
func (s *Service) Backfill(ctx context.Context, input BackfillInput) (domain.BackfillReport, error) {
	if err := input.Validate(); err != nil {
		return domain.BackfillReport{}, err
	}
	if input.TargetLang == s.sourceLang {
		return domain.BackfillReport{TargetLang: input.TargetLang}, nil
	}

	key := input.ContentType + ":" + input.TargetLang
	v, err, shared := s.backfills.Do(key, func() (any, error) {
		return s.runBackfill(ctx, input)
	})
	if err != nil {
		return domain.BackfillReport{}, err
	}
	if shared {
		s.log.DebugContext(ctx, "backfill joined in-flight run",
			slog.String("content_type", input.ContentType),
			slog.String("target_lang", input.TargetLang),
		)
	}
	return v.(domain.BackfillReport), nil
}

func (s *Service) runBackfill(ctx context.Context, input BackfillInput) (domain.BackfillReport, error) {
	report := domain.BackfillReport{TargetLang: input.TargetLang}

	gaps, err := s.store.FindMissing(ctx, input.ContentType, s.sourceLang, input.TargetLang, input.Limit)
	if err != nil {
		return report, err
	}
	report.Processed = len(gaps)

	for _, gap := range gaps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		translated := s.AutoTranslate(ctx, gap.OriginalText, s.sourceLang, input.TargetLang)
		if translated == "" || translated == gap.OriginalText {
			continue
		}

		save := SaveInput{
			ContentType:    input.ContentType,
			ContentID:      gap.ContentID,
			FieldName:      gap.FieldName,
			LangCode:       input.TargetLang,
			OriginalText:   gap.OriginalText,
			TranslatedText: translated,
			ManualOverride: false,
		}
		if err := s.Save(ctx, save); err != nil {
			s.log.ErrorContext(ctx, "backfill save failed",
				slog.String("content_type", input.ContentType),
				slog.String("field_name", gap.FieldName),
				slog.String("target_lang", input.TargetLang),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Translated++
	}

	s.log.InfoContext(ctx, "backfill run finished",
		slog.String("content_type", input.ContentType),
		slog.String("target_lang", input.TargetLang),
		slog.Int("processed", report.Processed),
		slog.Int("translated", report.Translated),
	)

	return report, nil
}
