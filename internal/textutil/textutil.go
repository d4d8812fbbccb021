// Package textutil normalizes feed text: markup stripping, whitespace
// collapsing, word-boundary truncation and a cheap script-based language
// heuristic.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

var (
	markupTags = regexp.MustCompile(`<[^<]+?>`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// Ellipsis marks a truncated string.
const Ellipsis = "..."

// Clean strips markup tags, collapses whitespace runs to single spaces and
// trims. Results longer than maxLen runes are cut at maxLen and then backed
// up to the last space so no word is split; Ellipsis is appended.
// Empty input yields an empty string.
func Clean(text string, maxLen int) string {
	if text == "" {
		return ""
	}

	clean := markupTags.ReplaceAllString(text, "")
	clean = strings.TrimSpace(spaceRuns.ReplaceAllString(clean, " "))

	runes := []rune(clean)
	if maxLen <= 0 || len(runes) <= maxLen {
		return clean
	}

	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + Ellipsis
}

// DetectLanguage counts Cyrillic versus Latin letters; the majority wins.
// Equal non-zero counts report mixed, no letters at all reports unknown.
func DetectLanguage(text string) model.Language {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case r < 128 && unicode.IsLetter(r):
			latin++
		}
	}

	switch {
	case cyrillic == 0 && latin == 0:
		return model.LanguageUnknown
	case cyrillic > latin:
		return model.LanguageRU
	case latin > cyrillic:
		return model.LanguageEN
	default:
		return model.LanguageMixed
	}
}
