package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/libretype/libretype/internal/model"
)

const (
	// minContentChars is the minimum meaningful text length for a book file
	// to appear in the library.
	minContentChars = 100

	// minAlphaRatio is how much of the content must be letters. OCR output
	// is noisy, so the bar is low.
	minAlphaRatio = 0.4
)

// systemFilePrefixes are bookkeeping files the downloader leaves next to the
// book texts.
var systemFilePrefixes = []string{"extracted_urls", "search_log", "processed_titles"}

// Scan walks booksDir looking for per-language subdirectories of .txt files,
// plus loose .txt files in the root, and returns the valid books sorted by
// language then title. A missing directory yields an empty library, not an
// error.
func Scan(booksDir string) ([]model.Book, error) {
	return ScanCached(context.Background(), booksDir, nil)
}

// ScanCached is Scan backed by a catalog: unchanged files reuse their cached
// validation verdict instead of being re-read. cat may be nil.
func ScanCached(ctx context.Context, booksDir string, cat *Catalog) ([]model.Book, error) {
	entries, err := os.ReadDir(booksDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("library: read %s: %w", booksDir, err)
	}

	var books []model.Book
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		langDir := filepath.Join(booksDir, entry.Name())
		found, err := scanLanguageDir(ctx, langDir, entry.Name(), cat)
		if err != nil {
			return nil, err
		}
		books = append(books, found...)
	}

	// Loose .txt files in the root are treated as English.
	loose, err := scanLanguageDir(ctx, booksDir, "English", cat)
	if err != nil {
		return nil, err
	}
	books = append(books, loose...)

	sort.Slice(books, func(i, j int) bool {
		if books[i].Language != books[j].Language {
			return books[i].Language < books[j].Language
		}
		return books[i].Title < books[j].Title
	})
	return books, nil
}

func scanLanguageDir(ctx context.Context, dir, language string, cat *Catalog) ([]model.Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("library: read %s: %w", dir, err)
	}

	var books []model.Book
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") || isSystemFile(name) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := entry.Info()
		if err != nil {
			continue
		}
		title := TitleFromFilename(name)

		valid, wordCount, hit := false, 0, false
		if cat != nil {
			valid, wordCount, hit, err = cat.lookup(ctx, path, info.ModTime())
			if err != nil {
				return nil, err
			}
		}
		if !hit {
			valid, wordCount = validateBookFile(path)
			if cat != nil {
				if err := cat.store(ctx, path, title, language, info.ModTime(), valid, wordCount); err != nil {
					return nil, err
				}
			}
		}
		if !valid {
			continue
		}
		books = append(books, model.Book{
			Title:     title,
			Path:      path,
			Language:  language,
			WordCount: wordCount,
			ModTime:   info.ModTime(),
		})
	}
	return books, nil
}

func isSystemFile(name string) bool {
	for _, prefix := range systemFilePrefixes {
		if name == prefix+".txt" || strings.HasPrefix(name, prefix+"_") {
			return true
		}
	}
	return false
}

// TitleFromFilename turns a book file name into a display title.
func TitleFromFilename(name string) string {
	title := strings.TrimSuffix(name, ".txt")
	title = strings.TrimSuffix(title, "_text")
	return strings.ReplaceAll(title, "_", " ")
}

// validateBookFile checks that a file holds enough real text to practice
// on: at least minContentChars of non-metadata content, at least
// minAlphaRatio of it alphabetic. Returns the word count of the content.
func validateBookFile(path string) (bool, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, 0
	}

	var content strings.Builder
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isMetadataLine(line) || isSeparatorLine(line) || isPageMarker(line) {
			continue
		}
		content.WriteString(line)
		content.WriteByte(' ')
	}

	text := strings.TrimSpace(content.String())
	if len(text) < minContentChars {
		return false, 0
	}
	letters := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if float64(letters)/float64(total) < minAlphaRatio {
		return false, 0
	}
	return true, len(strings.Fields(text))
}

// Load reads and cleans a book's text for a practice session.
func Load(book model.Book) (string, error) {
	data, err := os.ReadFile(book.Path)
	if err != nil {
		return "", fmt.Errorf("library: read %s: %w", book.Path, err)
	}
	cleaned := CleanForPractice(string(data), LanguageCode(book.Language))
	if cleaned == "" {
		return "", fmt.Errorf("library: %s: no usable text after cleaning", book.Title)
	}
	return cleaned, nil
}
