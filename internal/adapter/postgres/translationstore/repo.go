// Package translationstore implements the durable translation record store
// on PostgreSQL. Fixed-shape queries are raw SQL constants; the dynamic
// admin listing is built with squirrel. The nullable content_id is always
// compared with IS NOT DISTINCT FROM so that "absent" behaves as one stable
// key value instead of SQL null semantics.
package translationstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/domain"
)

// Repo provides translation record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new translation store repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const getSQL = `
SELECT id, content_type, content_id, field_name, lang_code,
       original_text, translated_text, manual_override, translation_method, last_updated
FROM translations
WHERE content_type = $1
  AND content_id IS NOT DISTINCT FROM $2
  AND field_name = $3
  AND lang_code = $4`

const getBatchSQL = `
SELECT field_name, translated_text, manual_override
FROM translations
WHERE content_type = $1
  AND content_id IS NOT DISTINCT FROM $2
  AND lang_code = $3`

// The conflict target matches the NULLS NOT DISTINCT unique index, so an
// upsert on an identity key with a NULL content_id still takes the UPDATE
// branch instead of inserting a duplicate row.
const upsertSQL = `
INSERT INTO translations
    (id, content_type, content_id, field_name, lang_code,
     original_text, translated_text, manual_override, translation_method)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (content_type, content_id, field_name, lang_code)
DO UPDATE SET
    original_text      = EXCLUDED.original_text,
    translated_text    = EXCLUDED.translated_text,
    manual_override    = EXCLUDED.manual_override,
    translation_method = EXCLUDED.translation_method,
    last_updated       = now()`

// Anti-join: source-language rows with no row yet for the target language.
// Evaluated server-side so the gap set stays correct while content grows.
const findMissingSQL = `
SELECT DISTINCT src.content_id, src.field_name, src.original_text
FROM translations src
WHERE src.content_type = $1
  AND src.lang_code = $2
  AND NOT EXISTS (
      SELECT 1
      FROM translations dst
      WHERE dst.content_type = src.content_type
        AND dst.content_id IS NOT DISTINCT FROM src.content_id
        AND dst.field_name = src.field_name
        AND dst.lang_code = $3
  )
LIMIT $4`

const statsSQL = `
SELECT lang_code,
       COUNT(*),
       COUNT(*) FILTER (WHERE manual_override),
       COUNT(*) FILTER (WHERE translation_method = 'auto'),
       MAX(last_updated)
FROM translations
GROUP BY lang_code
ORDER BY lang_code`

const statsByLangSQL = `
SELECT lang_code,
       COUNT(*),
       COUNT(*) FILTER (WHERE manual_override),
       COUNT(*) FILTER (WHERE translation_method = 'auto'),
       MAX(last_updated)
FROM translations
WHERE lang_code = $1
GROUP BY lang_code`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the record for one identity key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key domain.ContentKey) (*domain.Translation, error) {
	row := r.db.QueryRow(ctx, getSQL, key.ContentType, key.ContentID, key.FieldName, key.LangCode)

	tr, err := scanTranslation(row)
	if err != nil {
		return nil, postgres.MapError(err, "get translation")
	}

	return &tr, nil
}

// GetBatch returns all translated fields for one (content_type, content_id,
// lang_code) in a single round trip. No rows is an empty map, not an error.
func (r *Repo) GetBatch(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error) {
	rows, err := r.db.Query(ctx, getBatchSQL, contentType, contentID, langCode)
	if err != nil {
		return nil, postgres.MapError(err, "get translation batch")
	}
	defer rows.Close()

	fields := make(map[string]domain.FieldTranslation)
	for rows.Next() {
		var (
			fieldName string
			text      string
			manual    bool
		)
		if err := rows.Scan(&fieldName, &text, &manual); err != nil {
			return nil, postgres.MapError(err, "get translation batch")
		}
		fields[fieldName] = domain.FieldTranslation{Text: text, Manual: manual}
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "get translation batch")
	}

	return fields, nil
}

// FindMissing returns up to limit distinct (content_id, field_name) gaps:
// pairs with a sourceLang record but no targetLang record.
func (r *Repo) FindMissing(ctx context.Context, contentType, sourceLang, targetLang string, limit int) ([]domain.BackfillGap, error) {
	rows, err := r.db.Query(ctx, findMissingSQL, contentType, sourceLang, targetLang, limit)
	if err != nil {
		return nil, postgres.MapError(err, "find missing translations")
	}
	defer rows.Close()

	var gaps []domain.BackfillGap
	for rows.Next() {
		var gap domain.BackfillGap
		if err := rows.Scan(&gap.ContentID, &gap.FieldName, &gap.OriginalText); err != nil {
			return nil, postgres.MapError(err, "find missing translations")
		}
		gaps = append(gaps, gap)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "find missing translations")
	}

	if gaps == nil {
		gaps = []domain.BackfillGap{}
	}
	return gaps, nil
}

// List returns one admin page of translations plus the unpaged total.
// Filters: lang_code (required), content_type, manual_only.
func (r *Repo) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, int, error) {
	listQ := psql.Select(
		"id", "content_type", "content_id", "field_name", "lang_code",
		"original_text", "translated_text", "manual_override", "translation_method", "last_updated",
	).
		From("translations").
		Where(sq.Eq{"lang_code": filter.LangCode}).
		OrderBy("last_updated DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset()))

	countQ := psql.Select("COUNT(*)").
		From("translations").
		Where(sq.Eq{"lang_code": filter.LangCode})

	if filter.ContentType != nil {
		listQ = listQ.Where(sq.Eq{"content_type": *filter.ContentType})
		countQ = countQ.Where(sq.Eq{"content_type": *filter.ContentType})
	}
	if filter.ManualOnly {
		listQ = listQ.Where(sq.Eq{"manual_override": true})
		countQ = countQ.Where(sq.Eq{"manual_override": true})
	}

	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "list translations")
	}
	defer rows.Close()

	items, err := scanTranslations(rows)
	if err != nil {
		return nil, 0, postgres.MapError(err, "list translations")
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "count translations")
	}

	return items, total, nil
}

// Stats returns the per-language completion overview, optionally narrowed
// to one language.
func (r *Repo) Stats(ctx context.Context, langCode *string) ([]domain.LanguageStats, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if langCode != nil {
		rows, err = r.db.Query(ctx, statsByLangSQL, *langCode)
	} else {
		rows, err = r.db.Query(ctx, statsSQL)
	}
	if err != nil {
		return nil, postgres.MapError(err, "translation stats")
	}
	defer rows.Close()

	var stats []domain.LanguageStats
	for rows.Next() {
		var s domain.LanguageStats
		if err := rows.Scan(&s.LangCode, &s.Total, &s.Manual, &s.Auto, &s.LastUpdated); err != nil {
			return nil, postgres.MapError(err, "translation stats")
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "translation stats")
	}

	if stats == nil {
		stats = []domain.LanguageStats{}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts or replaces the record for rec's identity key. On conflict
// the existing row keeps its id; text, flags, and last_updated are replaced.
func (r *Repo) Upsert(ctx context.Context, rec domain.Translation) error {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := r.db.Exec(ctx, upsertSQL,
		id,
		rec.Key.ContentType,
		rec.Key.ContentID,
		rec.Key.FieldName,
		rec.Key.LangCode,
		rec.OriginalText,
		rec.TranslatedText,
		rec.ManualOverride,
		rec.Method,
	)
	if err != nil {
		return postgres.MapError(err, "upsert translation")
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTranslation(row pgx.Row) (domain.Translation, error) {
	var (
		tr          domain.Translation
		contentID   *int64
		method      string
		lastUpdated time.Time
	)

	err := row.Scan(
		&tr.ID, &tr.Key.ContentType, &contentID, &tr.Key.FieldName, &tr.Key.LangCode,
		&tr.OriginalText, &tr.TranslatedText, &tr.ManualOverride, &method, &lastUpdated,
	)
	if err != nil {
		return domain.Translation{}, err
	}

	tr.Key.ContentID = contentID
	tr.Method = domain.TranslationMethod(method)
	tr.LastUpdated = lastUpdated
	return tr, nil
}

func scanTranslations(rows pgx.Rows) ([]domain.Translation, error) {
	var items []domain.Translation
	for rows.Next() {
		tr, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []domain.Translation{}
	}
	return items, nil
}
