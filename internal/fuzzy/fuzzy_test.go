package fuzzy

import (
	"testing"
)

func containsVariant(variants []string, want string) bool {
	for _, v := range variants {
		if v == want {
			return true
		}
	}
	return false
}

func TestGenerateVariantsIncludesWordItself(t *testing.T) {
	variants := GenerateVariants("chat", 1, "fr", "azerty")
	if len(variants) == 0 || variants[0] != "chat" {
		t.Fatal("expected the word itself first")
	}
}

func TestGenerateVariantsSubstitutionDeletionInsertion(t *testing.T) {
	variants := GenerateVariants("cat", 1, "en", "qwerty")
	for _, want := range []string{"bat", "ca", "at", "ct", "cart", "cats"} {
		if !containsVariant(variants, want) {
			t.Fatalf("expected variant %q in output", want)
		}
	}
}

func TestGenerateVariantsDeletionLengthGuard(t *testing.T) {
	variants := GenerateVariants("at", 1, "en", "qwerty")
	if containsVariant(variants, "a") || containsVariant(variants, "t") {
		t.Fatal("two-letter words must not produce single-letter deletions")
	}
}

func TestGenerateVariantsAccentFold(t *testing.T) {
	variants := GenerateVariants("été", 2, "fr", "azerty")
	if !containsVariant(variants, "ete") && !containsVariant(variants, "éte") {
		t.Fatal("expected accent-folded variants")
	}
	unfolded := GenerateVariants("ete", 2, "fr", "azerty")
	if !containsVariant(unfolded, "éte") {
		t.Fatal("expected accent-unfolded variant éte")
	}
}

func TestGenerateVariantsKeyboardAdjacency(t *testing.T) {
	// On azerty, 'q' neighbours 'a'.
	variants := GenerateVariants("qui", 1, "fr", "azerty")
	if !containsVariant(variants, "aui") {
		t.Fatal("expected azerty-adjacent substitution aui")
	}
}

func TestFindSimilarDirectVariantHit(t *testing.T) {
	cache := map[string]string{"chat": "cat", "chien": "dog"}
	matches := FindSimilar("chta", cache, 3, "fr", "azerty")
	if len(matches) == 0 {
		t.Fatal("expected a fuzzy match for chta")
	}
	if matches[0].Word != "chat" || matches[0].Translation != "cat" {
		t.Fatalf("best match = %+v, want chat/cat", matches[0])
	}
	if matches[0].Distance > MaxAcceptDistance {
		t.Fatalf("distance %d exceeds accept bound", matches[0].Distance)
	}
}

func TestFindSimilarFullScanFallback(t *testing.T) {
	// Two edits away, so only reachable through the full-cache scan.
	cache := map[string]string{"maisonné": "housed"}
	matches := FindSimilar("maison", cache, 3, "fr", "azerty")
	if len(matches) != 1 {
		t.Fatalf("expected scan fallback hit, got %v", matches)
	}
	if matches[0].Distance != 2 {
		t.Fatalf("distance = %d, want 2", matches[0].Distance)
	}
}

func TestFindSimilarRejectsDistantWords(t *testing.T) {
	cache := map[string]string{"bibliothèque": "library"}
	matches := FindSimilar("chat", cache, 3, "fr", "azerty")
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %v", matches)
	}
}

func TestFindSimilarOrderedAndTruncated(t *testing.T) {
	cache := map[string]string{
		"chat":  "cat",
		"chats": "cats",
		"chatt": "chat-typo",
		"char":  "tank",
	}
	matches := FindSimilar("chat", cache, 2, "fr", "azerty")
	if len(matches) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(matches))
	}
	if matches[0].Distance > matches[1].Distance {
		t.Fatalf("matches not sorted by distance: %v", matches)
	}
	if matches[0].Word != "chat" || matches[0].Distance != 0 {
		t.Fatalf("exact hit should rank first, got %+v", matches[0])
	}
}

func TestCrudeDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"abc", "xbc", 1},
		{"", "ab", 2},
	}
	for _, tc := range cases {
		if got := CrudeDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("CrudeDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
