// Package language implements the supported-languages registry on PostgreSQL.
package language

import (
	"context"

	"github.com/mkravets/polyglot-backend/internal/adapter/postgres"
	"github.com/mkravets/polyglot-backend/internal/domain"
)

// Repo provides language registry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new language registry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const listAllSQL = `
SELECT lang_code, lang_name, native_name, flag_icon, rtl, active, sort_order
FROM supported_languages
ORDER BY sort_order ASC`

const listActiveSQL = `
SELECT lang_code, lang_name, native_name, flag_icon, rtl, active, sort_order
FROM supported_languages
WHERE active
ORDER BY sort_order ASC`

// A status update for a language the registry has never seen creates a
// minimal inactive-by-default row; the admin fills in names later.
const setActiveSQL = `
INSERT INTO supported_languages (lang_code, lang_name, native_name, flag_icon, rtl, active, sort_order)
VALUES ($1, $1, $1, '', false, $2, 0)
ON CONFLICT (lang_code)
DO UPDATE SET active = EXCLUDED.active`

// List returns languages ordered by sort_order. With activeOnly, hidden
// languages are filtered out without touching their translations.
func (r *Repo) List(ctx context.Context, activeOnly bool) ([]domain.Language, error) {
	query := listAllSQL
	if activeOnly {
		query = listActiveSQL
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, "list languages")
	}
	defer rows.Close()

	var langs []domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.LangCode, &l.LangName, &l.NativeName, &l.FlagIcon, &l.RTL, &l.Active, &l.SortOrder); err != nil {
			return nil, postgres.MapError(err, "list languages")
		}
		langs = append(langs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "list languages")
	}

	if langs == nil {
		langs = []domain.Language{}
	}
	return langs, nil
}

// SetActive upserts the active flag for a language code.
func (r *Repo) SetActive(ctx context.Context, langCode string, active bool) error {
	if _, err := r.db.Exec(ctx, setActiveSQL, langCode, active); err != nil {
		return postgres.MapError(err, "set language status")
	}

	return nil
}
