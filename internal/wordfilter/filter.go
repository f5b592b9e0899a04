// Package wordfilter reduces a raw OCR token stream to a typeable practice
// stream. Garbage tokens are dropped, but an index map back to the unfiltered
// stream is kept so the UI can still display every original word.
package wordfilter

import (
	"strings"
	"unicode"
)

// Result is one filtering pass over a raw token stream.
//
// Invariants: len(Kept) == len(OriginalIndex) == number of true entries in
// KeptMask, and OriginalIndex is strictly increasing.
type Result struct {
	// Kept holds the surviving tokens, verbatim.
	Kept []string
	// OriginalIndex[i] is the position of Kept[i] in the raw token stream.
	OriginalIndex []int
	// KeptMask is parallel to the raw stream: true where the token survived.
	KeptMask []bool
}

// Single-letter words worth typing, by language code. Everything not listed
// falls back to the base set.
var singleLetterWords = map[string]map[string]struct{}{
	"en": setOf("a", "i"),
	"fr": setOf("a", "y", "à", "ô"),
	"es": setOf("a", "e", "o", "u", "y"),
	"it": setOf("a", "e", "è", "o", "i"),
	"pt": setOf("a", "e", "o", "à", "é"),
	"de": setOf("a", "i"),
}

var baseSingleLetters = setOf("a", "i")

// Common two-letter words across the covered languages. Two-letter tokens not
// in this set are overwhelmingly OCR artifacts or abbreviations.
var twoLetterWords = setOf(
	"is", "to", "be", "of", "or", "in", "on", "at", "it", "we", "he", "me",
	"my", "no", "so", "up", "do", "go", "if", "an", "as", "am", "us", "by",
	"hi", "ok",
	"la", "le", "el", "de", "du", "da", "et", "un", "es", "en", "il", "ce",
	"ne", "je", "tu", "ou", "si", "se", "ja", "er", "im", "zu", "wo", "lo",
	"mi", "te", "io", "ya", "su", "os", "ao", "eu", "em", "um",
)

const vowels = "aeiouyàáâäãåèéêëìíîïòóôöõùúûüæœø"

// Filter evaluates each raw token in order and keeps the ones worth typing.
// langCode selects the single-letter allow-list; an unknown code uses the
// base set.
func Filter(rawTokens []string, langCode string) Result {
	res := Result{KeptMask: make([]bool, len(rawTokens))}
	singles, ok := singleLetterWords[strings.ToLower(langCode)]
	if !ok {
		singles = baseSingleLetters
	}
	for i, tok := range rawTokens {
		if keepToken(tok, singles) {
			res.Kept = append(res.Kept, tok)
			res.OriginalIndex = append(res.OriginalIndex, i)
			res.KeptMask[i] = true
		}
	}
	return res
}

func keepToken(tok string, singles map[string]struct{}) bool {
	if tok == "" {
		return false
	}

	// Standalone punctuation is typeable and kept verbatim.
	if !containsWordRune(tok) {
		return true
	}

	clean := strings.TrimFunc(tok, func(r rune) bool {
		return !isWordRune(r) && r != '\''
	})
	clean = strings.Trim(clean, "'")
	if clean == "" {
		return false
	}

	runes := []rune(clean)
	numeric := isNumeric(runes)

	if len(runes) == 1 {
		if numeric {
			return true
		}
		_, ok := singles[strings.ToLower(clean)]
		return ok
	}

	if !hasLetter(runes) {
		return numeric
	}

	if hasCaseTransition(runes) {
		return false
	}

	if len(runes) == 2 {
		if numeric {
			return true
		}
		_, ok := twoLetterWords[strings.ToLower(clean)]
		return ok
	}

	if len(runes) == 3 && !numeric && !strings.ContainsRune(clean, '\'') {
		if !hasVowel(runes) {
			return false
		}
	}

	threshold := 0.6
	if strings.ContainsRune(clean, '\'') {
		threshold = 0.5
	}
	letters := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(len(runes)) >= threshold
}

// hasCaseTransition reports a lowercase letter directly followed by an
// uppercase one, the classic shape of OCR merge artifacts like "xK9Qz".
func hasCaseTransition(runes []rune) bool {
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			return true
		}
	}
	return false
}

func containsWordRune(s string) bool {
	for _, r := range s {
		if isWordRune(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumeric(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(runes) > 0
}

func hasLetter(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasVowel(runes []rune) bool {
	for _, r := range runes {
		if strings.ContainsRune(vowels, unicode.ToLower(r)) {
			return true
		}
	}
	return false
}

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
