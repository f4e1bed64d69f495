package translation

import (
	"strings"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

const (
	maxContentTypeLen = 100
	maxFieldNameLen   = 100
	maxLangCodeLen    = 10

	defaultListLimit = 50
	maxListLimit     = 200
)

// ---------------------------------------------------------------------------
// SaveInput
// ---------------------------------------------------------------------------

// SaveInput holds the parameters for saving one translation record.
type SaveInput struct {
	ContentType    string
	ContentID      *int64
	FieldName      string
	LangCode       string
	OriginalText   string
	TranslatedText string
	ManualOverride bool
}

// Key returns the identity key of the record being saved.
func (i SaveInput) Key() domain.ContentKey {
	return domain.ContentKey{
		ContentType: i.ContentType,
		ContentID:   i.ContentID,
		FieldName:   i.FieldName,
		LangCode:    i.LangCode,
	}
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	errs = appendIdentityErrors(errs, i.ContentType, i.FieldName, i.LangCode)

	if strings.TrimSpace(i.TranslatedText) == "" {
		errs = append(errs, domain.FieldError{Field: "translated_text", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// BackfillInput
// ---------------------------------------------------------------------------

// BackfillInput holds the parameters for one bulk-translation run.
// Limit is caller-supplied on purpose: the admin API and the CLI use
// different defaults.
type BackfillInput struct {
	ContentType string
	TargetLang  string
	Limit       int
}

// Validate checks all fields and collects all errors.
func (i BackfillInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ContentType) == "" {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "required"})
	} else if len(i.ContentType) > maxContentTypeLen {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "too long"})
	}

	if strings.TrimSpace(i.TargetLang) == "" {
		errs = append(errs, domain.FieldError{Field: "target_lang", Message: "required"})
	} else if len(i.TargetLang) > maxLangCodeLen {
		errs = append(errs, domain.FieldError{Field: "target_lang", Message: "too long"})
	}

	if i.Limit <= 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be > 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared checks
// ---------------------------------------------------------------------------

func appendIdentityErrors(errs []domain.FieldError, contentType, fieldName, langCode string) []domain.FieldError {
	if strings.TrimSpace(contentType) == "" {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "required"})
	} else if len(contentType) > maxContentTypeLen {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "too long"})
	}

	if strings.TrimSpace(fieldName) == "" {
		errs = append(errs, domain.FieldError{Field: "field_name", Message: "required"})
	} else if len(fieldName) > maxFieldNameLen {
		errs = append(errs, domain.FieldError{Field: "field_name", Message: "too long"})
	}

	if strings.TrimSpace(langCode) == "" {
		errs = append(errs, domain.FieldError{Field: "lang_code", Message: "required"})
	} else if len(langCode) > maxLangCodeLen {
		errs = append(errs, domain.FieldError{Field: "lang_code", Message: "too long"})
	}

	return errs
}

// normalizeFilter fills list-filter defaults and clamps the page size.
func normalizeFilter(f domain.TranslationFilter) domain.TranslationFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return f
}
