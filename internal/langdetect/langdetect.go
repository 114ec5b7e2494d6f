// Package langdetect identifies the language of extracted page text.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/nao1215/wordscope/internal/normalizer"
)

// sampleLength is the number of leading characters inspected.
const sampleLength = 2000

// Detector reports the ISO 639-1 code of a text's language.
type Detector interface {
	Detect(text string) (string, bool)
}

// Lingua detects languages with lingua-go, restricted to the languages
// commonly mixed on Japanese pages.
type Lingua struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLingua returns a detector. Language models are loaded on first use.
func NewLingua() *Lingua {
	return &Lingua{}
}

// Detect returns the lowercase ISO 639-1 code of text's language.
// It reports false when text is empty or no language is reliable.
func (l *Lingua) Detect(text string) (string, bool) {
	text = normalizer.Truncate(text, sampleLength)
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	l.once.Do(func() {
		l.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Japanese, lingua.English, lingua.Chinese, lingua.Korean).
			Build()
	})

	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
