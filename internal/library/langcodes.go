package library

import (
	"sort"
	"strings"
)

// languageCodes maps language names (the directory names books are sorted
// under) to ISO-639-1-like codes used for filtering and translation.
var languageCodes = map[string]string{
	"english":    "en",
	"french":     "fr",
	"spanish":    "es",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"arabic":     "ar",
	"dutch":      "nl",
	"swedish":    "sv",
	"norwegian":  "no",
	"danish":     "da",
	"finnish":    "fi",
	"polish":     "pl",
	"czech":      "cs",
	"hungarian":  "hu",
	"turkish":    "tr",
	"greek":      "el",
	"hebrew":     "he",
	"hindi":      "hi",
	"bengali":    "bn",
	"tamil":      "ta",
	"thai":       "th",
}

// LanguageCode maps a language name to its code. Unknown names fall back
// to "en".
func LanguageCode(name string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return "en"
}

// LanguageName maps a code back to its capitalized language name. Unknown
// codes return "English".
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	for name, c := range languageCodes {
		if c == code {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return "English"
}

// KnownCode reports whether a language code has a name mapping.
func KnownCode(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, c := range languageCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Languages lists every known language name, for the langs subcommand.
func Languages() []string {
	names := make([]string, 0, len(languageCodes))
	for name := range languageCodes {
		names = append(names, strings.ToUpper(name[:1])+name[1:])
	}
	sort.Strings(names)
	return names
}
