package translationstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	return New(mock), mock
}

func ptrInt64(v int64) *int64 { return &v }

func translationColumns() []string {
	return []string{
		"id", "content_type", "content_id", "field_name", "lang_code",
		"original_text", "translated_text", "manual_override", "translation_method", "last_updated",
	}
}

func TestRepo_Get(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	now := time.Now()
	key := domain.ContentKey{ContentType: "article", ContentID: ptrInt64(42), FieldName: "title", LangCode: "es"}

	mock.ExpectQuery(regexp.QuoteMeta(getSQL)).
		WithArgs("article", ptrInt64(42), "title", "es").
		WillReturnRows(pgxmock.NewRows(translationColumns()).
			AddRow(id, "article", ptrInt64(42), "title", "es", "Hello", "Hola", true, "manual", now))

	got, err := repo.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %v, want %v", got.ID, id)
	}
	if got.TranslatedText != "Hola" || !got.ManualOverride {
		t.Errorf("record = %+v, want Hola/manual", got)
	}
	if got.Method != domain.MethodManual {
		t.Errorf("Method = %q, want %q", got.Method, domain.MethodManual)
	}
	if got.Key.ContentID == nil || *got.Key.ContentID != 42 {
		t.Errorf("ContentID = %v, want 42", got.Key.ContentID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getSQL)).
		WithArgs("article", (*int64)(nil), "title", "es").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), domain.ContentKey{ContentType: "article", FieldName: "title", LangCode: "es"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_GetBatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBatchSQL)).
		WithArgs("article", ptrInt64(42), "es").
		WillReturnRows(pgxmock.NewRows([]string{"field_name", "translated_text", "manual_override"}).
			AddRow("title", "Hola", true).
			AddRow("body", "Mundo", false))

	fields, err := repo.GetBatch(context.Background(), "article", ptrInt64(42), "es")
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}

	if len(fields) != 2 {
		t.Fatalf("GetBatch returned %d fields, want 2", len(fields))
	}
	if f := fields["title"]; f.Text != "Hola" || !f.Manual {
		t.Errorf("fields[title] = %+v, want Hola/manual", f)
	}
	if f := fields["body"]; f.Text != "Mundo" || f.Manual {
		t.Errorf("fields[body] = %+v, want Mundo/auto", f)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_GetBatch_NoRowsIsEmptyMap(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBatchSQL)).
		WithArgs("article", (*int64)(nil), "fr").
		WillReturnRows(pgxmock.NewRows([]string{"field_name", "translated_text", "manual_override"}))

	fields, err := repo.GetBatch(context.Background(), "article", nil, "fr")
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("GetBatch returned %d fields, want 0", len(fields))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_FindMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findMissingSQL)).
		WithArgs("article", "en", "es", 100).
		WillReturnRows(pgxmock.NewRows([]string{"content_id", "field_name", "original_text"}).
			AddRow(ptrInt64(1), "title", "Hello").
			AddRow((*int64)(nil), "tagline", "Welcome"))

	gaps, err := repo.FindMissing(context.Background(), "article", "en", "es", 100)
	if err != nil {
		t.Fatalf("FindMissing: %v", err)
	}

	if len(gaps) != 2 {
		t.Fatalf("FindMissing returned %d gaps, want 2", len(gaps))
	}
	if gaps[0].ContentID == nil || *gaps[0].ContentID != 1 || gaps[0].OriginalText != "Hello" {
		t.Errorf("gaps[0] = %+v", gaps[0])
	}
	if gaps[1].ContentID != nil {
		t.Errorf("gaps[1].ContentID = %v, want nil", gaps[1].ContentID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Upsert_GeneratesID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs(pgxmock.AnyArg(), "article", ptrInt64(42), "title", "es", "Hello", "Hola", false, domain.MethodAuto).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := domain.Translation{
		Key:            domain.ContentKey{ContentType: "article", ContentID: ptrInt64(42), FieldName: "title", LangCode: "es"},
		OriginalText:   "Hello",
		TranslatedText: "Hola",
		Method:         domain.MethodAuto,
	}
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Upsert_KeepsGivenID(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs(id, "article", (*int64)(nil), "title", "es", "Hello", "Hola", true, domain.MethodManual).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := domain.Translation{
		ID:             id,
		Key:            domain.ContentKey{ContentType: "article", FieldName: "title", LangCode: "es"},
		OriginalText:   "Hello",
		TranslatedText: "Hola",
		ManualOverride: true,
		Method:         domain.MethodManual,
	}
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	contentType := "article"
	filter := domain.TranslationFilter{
		LangCode:    "es",
		ContentType: &contentType,
		ManualOnly:  true,
		Page:        2,
		Limit:       10,
	}

	mock.ExpectQuery("SELECT id, content_type, content_id, .+ FROM translations WHERE").
		WithArgs("es", "article", true).
		WillReturnRows(pgxmock.NewRows(translationColumns()).
			AddRow(uuid.New(), "article", ptrInt64(1), "title", "es", "Hello", "Hola", true, "manual", now))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM translations WHERE`).
		WithArgs("es", "article", true).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(21))

	items, total, err := repo.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List returned %d items, want 1", len(items))
	}
	if total != 21 {
		t.Errorf("total = %d, want 21", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Stats(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(statsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"lang_code", "count", "manual", "auto", "last_updated"}).
			AddRow("es", 10, 4, 6, now).
			AddRow("fr", 3, 3, 0, now))

	stats, err := repo.Stats(context.Background(), nil)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats returned %d rows, want 2", len(stats))
	}
	if stats[0].LangCode != "es" || stats[0].Total != 10 || stats[0].Manual != 4 || stats[0].Auto != 6 {
		t.Errorf("stats[0] = %+v", stats[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Stats_SingleLanguage(t *testing.T) {
	repo, mock := newMockRepo(t)

	lang := "es"
	mock.ExpectQuery(regexp.QuoteMeta(statsByLangSQL)).
		WithArgs("es").
		WillReturnRows(pgxmock.NewRows([]string{"lang_code", "count", "manual", "auto", "last_updated"}).
			AddRow("es", 10, 4, 6, time.Now()))

	stats, err := repo.Stats(context.Background(), &lang)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 1 || stats[0].LangCode != "es" {
		t.Errorf("stats = %+v, want single es row", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
