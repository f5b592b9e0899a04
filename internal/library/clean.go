// Package library manages the book collection: cleaning OCR'd text for
// practice, scanning the books directory, and caching scan results.
package library

import (
	"regexp"
	"strings"
	"unicode"
)

// minCleanedChars is the smallest cleaned text considered usable; below it
// the aggressive cleaning pass is abandoned for a basic one.
const minCleanedChars = 100

// chapterOnePatterns locate the start of the first chapter across the
// covered languages, so front matter can be dropped wholesale.
var chapterOnePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)chapter\s+1\b`),
	regexp.MustCompile(`(?im)chapter\s+one\b`),
	regexp.MustCompile(`(?im)1\.\s*chapter\b`),
	regexp.MustCompile(`(?im)chapitre\s+1\b`),
	regexp.MustCompile(`(?im)chapitre\s+premier\b`),
	regexp.MustCompile(`(?im)capítulo\s+1\b`),
	regexp.MustCompile(`(?im)capítulo\s+uno\b`),
	regexp.MustCompile(`(?im)kapitel\s+1\b`),
	regexp.MustCompile(`(?im)erstes\s+kapitel\b`),
	regexp.MustCompile(`(?im)capitolo\s+1\b`),
	regexp.MustCompile(`(?im)capitolo\s+primo\b`),
	regexp.MustCompile(`(?im)primeiro\s+capítulo\b`),
	regexp.MustCompile(`(?im)hoofdstuk\s+1\b`),
	regexp.MustCompile(`(?im)eerste\s+hoofdstuk\b`),
	regexp.MustCompile(`(?im)глава\s+1\b`),
	regexp.MustCompile(`(?im)первая\s+глава\b`),
	regexp.MustCompile(`(?m)^1\s*\.\s*$`),
	regexp.MustCompile(`(?m)^1$`),
}

var (
	tocEntryPattern    = regexp.MustCompile(`(?i)chap(?:ter|itre)\s+\d+.*\d+$`)
	bareNumberPattern  = regexp.MustCompile(`^\d+$`)
	pageRefPattern     = regexp.MustCompile(`(?i)^page\s+\d+`)
	chapterHeadPattern = regexp.MustCompile(`(?i)^(chapter|chapitre|capítulo|kapitel|capitolo|hoofdstuk)\s+\d+`)
)

var copyrightMarkers = []string{"copyright", "©", "isbn", "publisher", "printed in"}

// ExtractFromChapterOne drops everything before the first chapter marker.
// Text without a recognizable marker is returned unchanged.
func ExtractFromChapterOne(text string) string {
	for _, pat := range chapterOnePatterns {
		loc := pat.FindStringIndex(text)
		if loc == nil {
			continue
		}
		lineStart := strings.LastIndexByte(text[:loc[0]], '\n') + 1
		return text[lineStart:]
	}
	return text
}

// CleanForPractice strips extraction metadata, page markers, tables of
// contents, chapter headers, and copyright boilerplate from OCR'd book text,
// returning a single flowing paragraph in the book's language. Paragraphs
// detected as another language and foreign words at the edges are removed.
// When aggressive cleaning leaves too little text, a basic metadata-only
// pass over the original text is used instead.
func CleanForPractice(text, langCode string) string {
	if text == "" {
		return text
	}
	body := ExtractFromChapterOne(text)

	var kept []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isMetadataLine(line) || isSeparatorLine(line) || isPageMarker(line) {
			continue
		}
		// Table-of-contents rows: dotted leaders with many periods.
		if strings.Contains(line, "...") && strings.Count(line, ".") > 5 {
			continue
		}
		if tocEntryPattern.MatchString(line) {
			continue
		}
		if bareNumberPattern.MatchString(line) || pageRefPattern.MatchString(line) {
			continue
		}
		// Short all-caps lines are headers.
		if len(line) < 30 && line == strings.ToUpper(line) && hasLetter(line) {
			continue
		}
		if containsAnyFold(line, copyrightMarkers) {
			continue
		}
		if chapterHeadPattern.MatchString(line) && len(line) < 50 {
			continue
		}
		if len(line) >= 10 && hasLetter(line) {
			kept = append(kept, line)
		}
	}

	cleaned := strings.TrimSpace(strings.Join(kept, " "))
	cleaned = FilterByLanguage(cleaned, langCode)
	cleaned = CleanForeignEdges(cleaned, langCode)
	if len(cleaned) < minCleanedChars {
		return basicClean(text)
	}
	return cleaned
}

// basicClean keeps every line of reasonable length, dropping only obvious
// extraction metadata. The fallback when aggressive cleaning eats the text.
func basicClean(text string) string {
	var kept []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) < 10 || !hasLetter(line) {
			continue
		}
		if isMetadataLine(line) || isSeparatorLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func isMetadataLine(line string) bool {
	for _, prefix := range []string{"Title:", "Source URL:", "PDF URL:", "Extraction Date:"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isSeparatorLine(line string) bool {
	return strings.Count(line, "=")*2 > len(line)
}

func isPageMarker(line string) bool {
	return strings.HasPrefix(line, "=== PAGE") && strings.HasSuffix(line, "===")
}

func containsAnyFold(line string, markers []string) bool {
	lower := strings.ToLower(line)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
