// Package fuzzy recovers word translations when a direct lookup fails. It
// generates bounded edit-distance variants of a word — alphabet
// substitutions, deletions, insertions, keyboard-adjacent slips, and accent
// folds — and matches them against a translation cache, falling back to a
// full scan ranked by Levenshtein distance.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// MaxAcceptDistance is the largest edit distance at which a cached entry is
// considered the same word.
const MaxAcceptDistance = 2

// Match is one fuzzy cache hit.
type Match struct {
	Word        string
	Translation string
	Distance    int
}

// GenerateVariants returns the word itself plus every single-edit variant,
// likeliest edits first: deletions (only while the remainder stays longer
// than two characters), keyboard-adjacent substitutions for the given layout,
// accent fold/unfold substitutions, then alphabet substitutions and
// insertions bounded by maxDistance. Callers that probe variants one at a
// time rely on this ordering. The result is deduplicated and lowercased.
func GenerateVariants(word string, maxDistance int, langCode, layout string) []string {
	word = strings.ToLower(word)
	if word == "" {
		return nil
	}
	seen := map[string]struct{}{word: {}}
	variants := []string{word}
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	runes := []rune(word)
	alphabet := alphabetFor(langCode)

	// Deletions, keeping at least three characters.
	if len(runes) > 2 {
		for i := range runes {
			add(string(runes[:i]) + string(runes[i+1:]))
		}
	}

	// Keyboard-adjacent substitutions.
	adjacency := adjacencyFor(layout)
	for i := range runes {
		orig := runes[i]
		for _, c := range adjacency[orig] {
			runes[i] = c
			add(string(runes))
		}
		runes[i] = orig
	}

	// Accent folds and unfolds.
	for i := range runes {
		orig := runes[i]
		if folds, ok := accentVariants[orig]; ok {
			for _, c := range folds {
				runes[i] = c
				add(string(runes))
			}
		}
		for base, accented := range accentVariants {
			for _, acc := range accented {
				if acc == orig {
					runes[i] = base
					add(string(runes))
				}
			}
		}
		runes[i] = orig
	}

	// Substitutions over the language alphabet.
	for i := range runes {
		orig := runes[i]
		for _, c := range alphabet {
			if c == orig {
				continue
			}
			runes[i] = c
			add(string(runes))
		}
		runes[i] = orig
	}

	// Insertions, bounded by maxDistance extra characters.
	if maxDistance > 0 {
		for i := 0; i <= len(runes); i++ {
			for _, c := range alphabet {
				add(string(runes[:i]) + string(c) + string(runes[i:]))
			}
		}
	}

	return variants
}

// FindSimilar looks up word against cache, first through generated variants
// and then through a full scan ranked by edit distance. Results are ordered
// by ascending distance and truncated to maxSuggestions. Only entries within
// MaxAcceptDistance are returned.
func FindSimilar(word string, cache map[string]string, maxSuggestions int, langCode, layout string) []Match {
	if len(cache) == 0 || word == "" || maxSuggestions <= 0 {
		return nil
	}
	lowered := strings.ToLower(word)

	var matches []Match
	seen := map[string]struct{}{}
	for _, variant := range GenerateVariants(lowered, MaxAcceptDistance, langCode, layout) {
		if translation, ok := cache[variant]; ok {
			if _, dup := seen[variant]; dup {
				continue
			}
			seen[variant] = struct{}{}
			matches = append(matches, Match{
				Word:        variant,
				Translation: translation,
				Distance:    Distance(lowered, variant),
			})
		}
	}

	if len(matches) == 0 {
		for cached, translation := range cache {
			d := Distance(lowered, cached)
			if d <= MaxAcceptDistance {
				matches = append(matches, Match{Word: cached, Translation: translation, Distance: d})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Word < matches[j].Word
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// Distance is the Levenshtein edit distance between two words.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// CrudeDistance approximates edit distance as the length difference plus
// positional mismatches over the shared prefix length. It overestimates for
// shifted strings but never underestimates below the length delta, which is
// enough to reject clearly-unrelated cache keys.
func CrudeDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	shorter := len(ra)
	if len(rb) < shorter {
		shorter = len(rb)
	}
	d := len(ra) - len(rb)
	if d < 0 {
		d = -d
	}
	for i := 0; i < shorter; i++ {
		if ra[i] != rb[i] {
			d++
		}
	}
	return d
}
