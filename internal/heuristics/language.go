package heuristics

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Supported prompt locales. Anything the detector cannot confidently call
// English collapses to French, which is also the failure default.
const (
	LangEN = "en"
	LangFR = "fr"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.French).
			Build()
	})
	return detector
}

// DetectLanguage classifies text as "en" or "fr". Empty or ambiguous input
// yields "fr".
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return LangFR
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return LangFR
	}
	if lang == lingua.English {
		return LangEN
	}
	return LangFR
}
