package library

import (
	"strings"
	"testing"
)

// stubDetect swaps the language detector for a deterministic one for the
// duration of a test.
func stubDetect(t *testing.T, fn func(string) (string, bool)) {
	t.Helper()
	orig := detectCode
	detectCode = fn
	t.Cleanup(func() { detectCode = orig })
}

func TestExtractFromChapterOne(t *testing.T) {
	text := "Title page\nAcknowledgements\nChapitre 1\nIl était une fois un chat."
	got := ExtractFromChapterOne(text)
	if !strings.HasPrefix(got, "Chapitre 1") {
		t.Errorf("ExtractFromChapterOne = %q, want prefix Chapitre 1", got)
	}

	noMarker := "Just a plain story with no chapters at all."
	if got := ExtractFromChapterOne(noMarker); got != noMarker {
		t.Errorf("text without marker changed: %q", got)
	}
}

func TestCleanForPracticeStripsBoilerplate(t *testing.T) {
	stubDetect(t, func(string) (string, bool) { return "fr", true })

	filler := strings.Repeat("Le petit chat dort paisiblement dans la maison. ", 5)
	text := strings.Join([]string{
		"Title: Le Petit Chat",
		"Source URL: https://example.org/chat",
		"==========================",
		"=== PAGE 1 ===",
		"Chapter 1 .......... 5",
		"Chapter 2 .......... 17",
		"42",
		"page 42",
		"THE CAT",
		"Copyright 1950, printed in France",
		"Chapitre 1",
		filler,
	}, "\n")

	got := CleanForPractice(text, "fr")
	for _, banned := range []string{"Title:", "PAGE", "Copyright", "==", "THE CAT", "..........", "Chapitre 1"} {
		if strings.Contains(got, banned) {
			t.Errorf("cleaned text still contains %q", banned)
		}
	}
	if !strings.Contains(got, "Le petit chat dort") {
		t.Errorf("cleaned text lost the story: %q", got)
	}
}

func TestCleanForPracticeFallsBackWhenTooAggressive(t *testing.T) {
	// Every line is under 10 chars except the metadata, so the aggressive
	// pass leaves almost nothing and the basic pass takes over.
	text := strings.Join([]string{
		"Title: X",
		"A fine short tale about things.",
		"The end came quickly for all.",
	}, "\n")

	got := CleanForPractice(text, "en")
	if !strings.Contains(got, "A fine short tale") {
		t.Errorf("fallback lost content: %q", got)
	}
	if strings.Contains(got, "Title:") {
		t.Errorf("fallback kept metadata: %q", got)
	}
}

func TestCleanForPracticeEmpty(t *testing.T) {
	if got := CleanForPractice("", "fr"); got != "" {
		t.Errorf(`CleanForPractice("") = %q`, got)
	}
}

func TestFilterByLanguage(t *testing.T) {
	stubDetect(t, func(text string) (string, bool) {
		switch {
		case strings.Contains(text, "chat"):
			return "fr", true
		case strings.Contains(text, "dog"):
			return "en", true
		default:
			return "", false
		}
	})

	french := strings.Repeat("Le chat dort sur le tapis rouge du salon. ", 3)
	english := strings.Repeat("The dog sleeps on the red living room rug. ", 3)
	odd := strings.Repeat("Xqz vwl brr mnp tkk fds qwe rty uio pas. ", 3)
	text := strings.Join([]string{"Chapitre 1", french, english, odd}, "\n\n")

	got := FilterByLanguage(text, "fr")
	if strings.Contains(got, "The dog") {
		t.Errorf("foreign block survived: %q", got)
	}
	if !strings.Contains(got, "Le chat") {
		t.Errorf("target-language block dropped: %q", got)
	}
	// Short blocks skip detection, unsure blocks are kept.
	if !strings.Contains(got, "Chapitre 1") {
		t.Errorf("short block dropped: %q", got)
	}
	if !strings.Contains(got, "Xqz") {
		t.Errorf("undetectable block dropped: %q", got)
	}
}

func TestCleanForeignEdges(t *testing.T) {
	stubDetect(t, func(word string) (string, bool) {
		if strings.HasPrefix(word, "z") {
			return "en", true
		}
		return "fr", true
	})

	body := strings.Fields(strings.Repeat("chat noir dort bien ", 12))
	words := append([]string{"zebra", "12", "ab", "zulu"}, body...)
	words = append(words, "zephyr", "zone")

	got := CleanForeignEdges(strings.Join(words, " "), "fr")
	if strings.Contains(got, "zebra") || strings.Contains(got, "zulu") {
		t.Errorf("leading foreign words kept: %q", got)
	}
	if strings.Contains(got, "zephyr") || strings.Contains(got, "zone") {
		t.Errorf("trailing foreign words kept: %q", got)
	}
	// Short and non-alphabetic edge words are not judged, only trimmed
	// along with the foreign run around them.
	if !strings.HasPrefix(got, "chat") || !strings.HasSuffix(got, "bien") {
		t.Errorf("edges = %q", got)
	}
}

func TestCleanForeignEdgesLeavesShortTexts(t *testing.T) {
	stubDetect(t, func(string) (string, bool) { return "en", true })
	text := "zebra un deux trois quatre cinq six sept huit neuf dix"
	if got := CleanForeignEdges(text, "fr"); got != text {
		t.Errorf("short text changed: %q", got)
	}
}
