package library

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

const (
	// shortBlockChars marks blocks too short for reliable language
	// detection; they are kept as-is.
	shortBlockChars = 100
	// edgeMinWords is the smallest text whose edges are scanned.
	edgeMinWords = 40
	// edgeScanWords is how many words at each end are checked for
	// foreign spill-over from neighboring pages.
	edgeScanWords = 20
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// detectCode reports the ISO 639-1 code of the text's language. ok is false
// when the detector cannot settle on one. A variable so tests can substitute
// a deterministic detector.
var detectCode = func(text string) (string, bool) {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
	})
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// FilterByLanguage drops paragraph blocks detected as a language other than
// langCode. Short blocks and blocks the detector is unsure about are kept.
func FilterByLanguage(text, langCode string) string {
	if text == "" || langCode == "" {
		return text
	}
	var kept []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if len(block) < shortBlockChars {
			kept = append(kept, block)
			continue
		}
		code, ok := detectCode(block)
		if !ok || code == langCode {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}

// CleanForeignEdges trims stray words in other languages from the start and
// end of the text, a common artifact of page-boundary OCR. Texts under
// edgeMinWords are returned unchanged.
func CleanForeignEdges(text, langCode string) string {
	if text == "" || langCode == "" {
		return text
	}
	words := strings.Fields(text)
	if len(words) < edgeMinWords {
		return text
	}

	start := 0
	for i := 0; i < edgeScanWords; i++ {
		if !edgeCandidate(words[i]) {
			continue
		}
		if code, ok := detectCode(words[i]); ok && code == langCode {
			start = i
			break
		}
	}

	end := len(words)
	for i := len(words) - 1; i >= len(words)-edgeScanWords; i-- {
		if !edgeCandidate(words[i]) {
			continue
		}
		if code, ok := detectCode(words[i]); ok && code == langCode {
			end = i + 1
			break
		}
	}

	return strings.Join(words[start:end], " ")
}

// edgeCandidate reports whether a word is worth running through detection:
// purely alphabetic and at least three runes long.
func edgeCandidate(word string) bool {
	runes := []rune(word)
	if len(runes) < 3 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
