package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// PhraseSourceMaxBytes bounds the stored source-text prefix in the phrase
// cache. The hash is the identity; the prefix exists for inspection only.
const PhraseSourceMaxBytes = 1000

// Phrase is one content-addressed machine-translation result, independent
// of where the text is used. Identity is (SourceHash, SourceLang, TargetLang).
type Phrase struct {
	SourceHash     string
	SourceLang     string
	TargetLang     string
	SourceText     string
	TranslatedText string
	CacheHits      int
	ExpiresAt      *time.Time
}

// PhraseHash computes the content address of a source text.
func PhraseHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// TruncatedSource returns the bounded source-text prefix stored alongside
// the hash, cut back to a rune boundary.
func TruncatedSource(text string) string {
	if len(text) <= PhraseSourceMaxBytes {
		return text
	}
	cut := PhraseSourceMaxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
