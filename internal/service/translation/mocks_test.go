package translation

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mkravets/polyglot-backend/internal/config"
	"github.com/mkravets/polyglot-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockStore struct {
	GetFunc         func(ctx context.Context, key domain.ContentKey) (*domain.Translation, error)
	GetBatchFunc    func(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error)
	UpsertFunc      func(ctx context.Context, rec domain.Translation) error
	FindMissingFunc func(ctx context.Context, contentType, sourceLang, targetLang string, limit int) ([]domain.BackfillGap, error)
	ListFunc        func(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, int, error)
	StatsFunc       func(ctx context.Context, langCode *string) ([]domain.LanguageStats, error)
}

func (m *mockStore) Get(ctx context.Context, key domain.ContentKey) (*domain.Translation, error) {
	return m.GetFunc(ctx, key)
}

func (m *mockStore) GetBatch(ctx context.Context, contentType string, contentID *int64, langCode string) (map[string]domain.FieldTranslation, error) {
	return m.GetBatchFunc(ctx, contentType, contentID, langCode)
}

func (m *mockStore) Upsert(ctx context.Context, rec domain.Translation) error {
	return m.UpsertFunc(ctx, rec)
}

func (m *mockStore) FindMissing(ctx context.Context, contentType, sourceLang, targetLang string, limit int) ([]domain.BackfillGap, error) {
	return m.FindMissingFunc(ctx, contentType, sourceLang, targetLang, limit)
}

func (m *mockStore) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, int, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockStore) Stats(ctx context.Context, langCode *string) ([]domain.LanguageStats, error) {
	return m.StatsFunc(ctx, langCode)
}

type mockPhrases struct {
	HitFunc   func(ctx context.Context, sourceHash, sourceLang, targetLang string) (string, bool, error)
	StoreFunc func(ctx context.Context, phrase domain.Phrase, ttl time.Duration) error
}

func (m *mockPhrases) Hit(ctx context.Context, sourceHash, sourceLang, targetLang string) (string, bool, error) {
	return m.HitFunc(ctx, sourceHash, sourceLang, targetLang)
}

func (m *mockPhrases) Store(ctx context.Context, phrase domain.Phrase, ttl time.Duration) error {
	return m.StoreFunc(ctx, phrase, ttl)
}

type mockLanguages struct {
	ListFunc      func(ctx context.Context, activeOnly bool) ([]domain.Language, error)
	SetActiveFunc func(ctx context.Context, langCode string, active bool) error
}

func (m *mockLanguages) List(ctx context.Context, activeOnly bool) ([]domain.Language, error) {
	return m.ListFunc(ctx, activeOnly)
}

func (m *mockLanguages) SetActive(ctx context.Context, langCode string, active bool) error {
	return m.SetActiveFunc(ctx, langCode, active)
}

type mockTranslator struct {
	ConfiguredFunc func() bool
	TranslateFunc  func(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

func (m *mockTranslator) Configured() bool {
	if m.ConfiguredFunc == nil {
		return true
	}
	return m.ConfiguredFunc()
}

func (m *mockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return m.TranslateFunc(ctx, text, sourceLang, targetLang)
}

// fakeCache is a plain map-backed textCache, enough to observe sets and
// deletes without TTL behavior.
type fakeCache struct {
	data    map[string]string
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(key, value string) {
	c.data[key] = value
}

func (c *fakeCache) Delete(key string) {
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type serviceMocks struct {
	store     *mockStore
	phrases   *mockPhrases
	languages *mockLanguages
	cache     *fakeCache
	provider  *mockTranslator
}

func newTestService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		store:     &mockStore{},
		phrases:   &mockPhrases{},
		languages: &mockLanguages{},
		cache:     newFakeCache(),
		provider:  &mockTranslator{},
	}

	// Phrase cache defaults to a silent miss so AutoTranslate tests only
	// override what they care about.
	m.phrases.HitFunc = func(context.Context, string, string, string) (string, bool, error) {
		return "", false, nil
	}
	m.phrases.StoreFunc = func(context.Context, domain.Phrase, time.Duration) error {
		return nil
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	svc := NewService(
		log,
		m.store,
		m.phrases,
		m.languages,
		m.cache,
		m.provider,
		config.CacheConfig{Enabled: true, TTL: time.Minute, MaxEntries: 128},
		config.TranslateConfig{SourceLang: "en", PhraseTTL: time.Hour},
	)
	return svc, m
}

func ptrInt64(v int64) *int64 { return &v }
