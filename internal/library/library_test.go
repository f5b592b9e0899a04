package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var storyText = strings.Repeat("Le petit chat dort paisiblement dans la grande maison blanche. ", 5)

func writeBook(t *testing.T, dir, lang, name, content string) string {
	t.Helper()
	langDir := filepath.Join(dir, lang)
	if err := os.MkdirAll(langDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(langDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanFindsValidBooks(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir, "french", "Le_Petit_Chat_text.txt", storyText)
	writeBook(t, dir, "german", "Der_Hund_text.txt", storyText)
	writeBook(t, dir, "french", "too_short_text.txt", "tiny")
	writeBook(t, dir, "french", "search_log_2024.txt", storyText)
	writeBook(t, dir, "french", "processed_titles.txt", storyText)

	books, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("found %d books, want 2: %+v", len(books), books)
	}
	// Sorted by language then title.
	if books[0].Language != "french" || books[0].Title != "Le Petit Chat" {
		t.Errorf("books[0] = %+v", books[0])
	}
	if books[1].Language != "german" {
		t.Errorf("books[1] = %+v", books[1])
	}
	if books[0].WordCount == 0 {
		t.Error("word count not recorded")
	}
}

func TestScanPicksUpLooseFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Loose_Story_text.txt"), []byte(storyText), 0o644); err != nil {
		t.Fatal(err)
	}

	books, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("found %d books, want 1", len(books))
	}
	if books[0].Language != "English" || books[0].Title != "Loose Story" {
		t.Errorf("loose book = %+v", books[0])
	}
}

func TestScanMissingDirectory(t *testing.T) {
	books, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("found %d books in missing dir", len(books))
	}
}

func TestValidateRejectsLowAlphaRatio(t *testing.T) {
	dir := t.TempDir()
	numbers := strings.Repeat("12345 67890 11111 22222 33333 ", 20)
	writeBook(t, dir, "french", "numbers_text.txt", numbers)

	books, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("mostly-numeric file accepted: %+v", books)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Le_Petit_Prince_text.txt", "Le Petit Prince"},
		{"Candide.txt", "Candide"},
		{"Der_kleine_Hund.txt", "Der kleine Hund"},
	}
	for _, tt := range tests {
		if got := TitleFromFilename(tt.in); got != tt.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScanCachedReusesVerdicts(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir, "french", "Le_Chat_text.txt", storyText)

	cat, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	}()

	ctx := context.Background()
	books, err := ScanCached(ctx, dir, cat)
	if err != nil {
		t.Fatalf("ScanCached: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("found %d books, want 1", len(books))
	}

	// Second scan goes through the cache and sees the same library.
	books2, err := ScanCached(ctx, dir, cat)
	if err != nil {
		t.Fatalf("ScanCached (cached): %v", err)
	}
	if len(books2) != 1 || books2[0].Title != books[0].Title || books2[0].WordCount != books[0].WordCount {
		t.Fatalf("cached scan differs: %+v vs %+v", books2, books)
	}

	// Touching the file invalidates the cache entry; the file is re-read
	// and the new verdict applies.
	if err := os.WriteFile(path, []byte("tiny"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	books3, err := ScanCached(ctx, dir, cat)
	if err != nil {
		t.Fatalf("ScanCached (invalidated): %v", err)
	}
	if len(books3) != 0 {
		t.Errorf("shrunk file still listed: %+v", books3)
	}
}

func TestCatalogPrune(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir, "french", "Gone_text.txt", storyText)

	cat, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	}()

	ctx := context.Background()
	if _, err := ScanCached(ctx, dir, cat); err != nil {
		t.Fatalf("ScanCached: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := cat.Prune(ctx); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	// The pruned entry is gone: a lookup misses.
	_, _, hit, err := cat.lookup(ctx, path, time.Now())
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if hit {
		t.Error("pruned entry still present")
	}
}

func TestLoadCleansText(t *testing.T) {
	stubDetect(t, func(string) (string, bool) { return "fr", true })
	dir := t.TempDir()
	content := "Title: Le Chat\n=== PAGE 1 ===\n" + storyText
	writeBook(t, dir, "french", "Le_Chat_text.txt", content)

	books, err := Scan(dir)
	if err != nil || len(books) != 1 {
		t.Fatalf("Scan: %v, %d books", err, len(books))
	}
	text, err := Load(books[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Contains(text, "Title:") || strings.Contains(text, "PAGE") {
		t.Errorf("loaded text not cleaned: %q", text[:60])
	}
}

func TestLanguageCodes(t *testing.T) {
	tests := []struct{ name, code string }{
		{"French", "fr"},
		{"german", "de"},
		{"ENGLISH", "en"},
		{"klingon", "en"}, // unknown falls back
	}
	for _, tt := range tests {
		if got := LanguageCode(tt.name); got != tt.code {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.name, got, tt.code)
		}
	}
	if got := LanguageName("fr"); got != "French" {
		t.Errorf("LanguageName(fr) = %q", got)
	}
	if !KnownCode("fr") || KnownCode("xx") {
		t.Error("KnownCode misclassifies fr or xx")
	}
	langs := Languages()
	if len(langs) != 26 {
		t.Errorf("Languages() returned %d entries", len(langs))
	}
}
