package wordfilter

import "testing"

func TestFilterDropsOCRArtifacts(t *testing.T) {
	raw := []string{"Hi", "42", "xK9Qz", "a", "the"}
	res := Filter(raw, "en")
	want := []string{"Hi", "42", "a", "the"}
	if len(res.Kept) != len(want) {
		t.Fatalf("kept %v, want %v", res.Kept, want)
	}
	for i, w := range want {
		if res.Kept[i] != w {
			t.Fatalf("kept[%d] = %q, want %q", i, res.Kept[i], w)
		}
	}
}

func TestFilterInvariants(t *testing.T) {
	raw := []string{"Le", "petit", "xQz", "!", "chat", "b7k", "dort.", "—", "42", "zz"}
	res := Filter(raw, "fr")

	if len(res.Kept) != len(res.OriginalIndex) {
		t.Fatalf("len(Kept)=%d len(OriginalIndex)=%d", len(res.Kept), len(res.OriginalIndex))
	}
	trueCount := 0
	for _, kept := range res.KeptMask {
		if kept {
			trueCount++
		}
	}
	if trueCount != len(res.Kept) {
		t.Fatalf("KeptMask has %d true entries, want %d", trueCount, len(res.Kept))
	}
	for i := 1; i < len(res.OriginalIndex); i++ {
		if res.OriginalIndex[i] <= res.OriginalIndex[i-1] {
			t.Fatalf("OriginalIndex not strictly increasing: %v", res.OriginalIndex)
		}
	}
	// Tokens pass through the filter verbatim.
	for i, idx := range res.OriginalIndex {
		if raw[idx] != res.Kept[i] {
			t.Fatalf("Kept[%d]=%q but raw[%d]=%q", i, res.Kept[i], idx, raw[idx])
		}
	}
}

func TestFilterRules(t *testing.T) {
	cases := []struct {
		name string
		tok  string
		lang string
		keep bool
	}{
		{"pure punctuation kept", "!", "en", true},
		{"dash token kept", "-", "en", true},
		{"pure numeric kept", "1984", "en", true},
		{"single letter in allowlist", "a", "en", true},
		{"single letter not in allowlist", "q", "en", false},
		{"single letter french y", "y", "fr", true},
		{"two letter stopword", "of", "en", true},
		{"two letter garbage", "qx", "en", false},
		{"two letter numeric", "42", "en", true},
		{"three letter no vowel", "bcd", "en", false},
		{"three letter with vowel", "cat", "en", true},
		{"contraction with apostrophe", "s'y", "fr", true},
		{"case transition artifact", "xK9Qz", "en", false},
		{"inner caps artifact", "aBc", "en", false},
		{"mostly symbols", "a##b#c#", "en", false},
		{"punctuation-wrapped word", "(chat)", "fr", true},
		{"bare quotes kept as punctuation", "''", "en", true},
		{"accented word", "été", "fr", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Filter([]string{tc.tok}, tc.lang)
			kept := len(res.Kept) == 1
			if kept != tc.keep {
				t.Fatalf("Filter(%q) kept=%v, want %v", tc.tok, kept, tc.keep)
			}
		})
	}
}

func TestFilterUnknownLanguageFallsBack(t *testing.T) {
	res := Filter([]string{"a", "q"}, "xx")
	if len(res.Kept) != 1 || res.Kept[0] != "a" {
		t.Fatalf("expected base single-letter set, got %v", res.Kept)
	}
}
