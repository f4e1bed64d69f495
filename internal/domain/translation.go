package domain

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

// TranslationMethod records how a translation was produced.
type TranslationMethod string

const (
	MethodManual TranslationMethod = "manual"
	MethodAuto   TranslationMethod = "auto"
)

// MethodFor returns the method implied by the manual-override flag.
func MethodFor(manualOverride bool) TranslationMethod {
	if manualOverride {
		return MethodManual
	}
	return MethodAuto
}

// ---------------------------------------------------------------------------
// Identity key
// ---------------------------------------------------------------------------

// ContentKey identifies one translatable field instance.
// ContentID is nil for language-independent singleton strings (UI labels
// and the like); nil is a distinct, stable key value, not a wildcard.
type ContentKey struct {
	ContentType string `json:"content_type"`
	ContentID   *int64 `json:"content_id"`
	FieldName   string `json:"field_name"`
	LangCode    string `json:"lang_code"`
}

// WithLang returns a copy of the key pointing at another language.
func (k ContentKey) WithLang(langCode string) ContentKey {
	k.LangCode = langCode
	return k
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

// Translation is one stored translation record. OriginalText is the
// source-language text kept for audit; TranslatedText is what gets served.
type Translation struct {
	ID             uuid.UUID         `json:"id"`
	Key            ContentKey        `json:"key"`
	OriginalText   string            `json:"original_text"`
	TranslatedText string            `json:"translated_text"`
	ManualOverride bool              `json:"manual_override"`
	Method         TranslationMethod `json:"method"`
	LastUpdated    time.Time         `json:"last_updated"`
}

// FieldTranslation is one entry of a batch lookup result, keyed by field name.
type FieldTranslation struct {
	Text   string `json:"text"`
	Manual bool   `json:"manual"`
}

// BackfillGap is one (content_id, field_name) pair that has a source-language
// record but no record yet for the backfill target language.
type BackfillGap struct {
	ContentID    *int64
	FieldName    string
	OriginalText string
}

// BackfillReport summarizes one backfill run. Processed counts gaps examined,
// Translated counts gaps actually written (a same-as-source or empty provider
// result is processed but not translated).
type BackfillReport struct {
	Processed  int    `json:"processed"`
	Translated int    `json:"translated"`
	TargetLang string `json:"target_lang"`
}

// LanguageStats is the per-language completion overview.
type LanguageStats struct {
	LangCode    string    `json:"lang_code"`
	Total       int       `json:"total"`
	Manual      int       `json:"manual"`
	Auto        int       `json:"auto"`
	LastUpdated time.Time `json:"last_updated"`
}
