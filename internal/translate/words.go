package translate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/libretype/libretype/internal/fuzzy"
)

// maxVariantProbes bounds how many generated variants are tried against the
// live translator before giving up on a word.
const maxVariantProbes = 5

// WordCache holds per-target-language word translations, split into direct
// hits and entries recovered through the fuzzy fallback. Scoped to one
// session; never persisted.
type WordCache struct {
	translator Translator
	sourceLang string
	langCode   string
	layout     string
	logger     *slog.Logger

	direct map[string]map[string]string
	fuzzy  map[string]map[string]string
}

// NewWordCache creates an empty cache bound to a translator. langCode selects
// the variant alphabet and layout the keyboard adjacency table.
func NewWordCache(translator Translator, sourceLang, langCode, layout string, logger *slog.Logger) *WordCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordCache{
		translator: translator,
		sourceLang: sourceLang,
		langCode:   langCode,
		layout:     layout,
		logger:     logger,
		direct:     map[string]map[string]string{},
		fuzzy:      map[string]map[string]string{},
	}
}

// TranslateWord translates a single word with fuzzy fallback: the direct
// cache, then a live single-word call, then the fuzzy cache, then up to
// maxVariantProbes generated variants against the live translator. When all
// of that fails the word is returned unchanged.
func (w *WordCache) TranslateWord(ctx context.Context, word, targetLang string) string {
	key := strings.ToLower(strings.TrimSpace(word))
	if key == "" {
		return word
	}

	if hit, ok := w.lookup(w.direct, targetLang, key); ok {
		return hit
	}

	if translated, ok := w.tryDirect(ctx, key, targetLang); ok {
		w.store(w.direct, targetLang, key, translated)
		return translated
	}

	if hit, ok := w.lookup(w.fuzzy, targetLang, key); ok {
		return hit
	}

	if matches := fuzzy.FindSimilar(key, w.direct[targetLang], 1, w.langCode, w.layout); len(matches) > 0 {
		w.store(w.fuzzy, targetLang, key, matches[0].Translation)
		return matches[0].Translation
	}

	variants := fuzzy.GenerateVariants(key, fuzzy.MaxAcceptDistance, w.langCode, w.layout)
	probes := 0
	for _, variant := range variants {
		if variant == key {
			continue
		}
		if probes >= maxVariantProbes {
			break
		}
		probes++
		if translated, ok := w.tryDirect(ctx, variant, targetLang); ok {
			w.store(w.fuzzy, targetLang, key, translated)
			return translated
		}
	}

	return word
}

// tryDirect performs one live single-word translation. A result that is
// empty or identical to the input counts as a miss.
func (w *WordCache) tryDirect(ctx context.Context, word, targetLang string) (string, bool) {
	if w.translator == nil {
		return "", false
	}
	translated, err := w.translator.Translate(ctx, word, w.sourceLang, targetLang)
	if err != nil {
		w.logger.Warn("word translation failed", "word", word, "error", err)
		return "", false
	}
	translated = strings.TrimSpace(translated)
	if translated == "" || strings.EqualFold(translated, word) {
		return "", false
	}
	return translated, true
}

func (w *WordCache) lookup(cache map[string]map[string]string, targetLang, key string) (string, bool) {
	if perLang, ok := cache[targetLang]; ok {
		hit, ok := perLang[key]
		return hit, ok
	}
	return "", false
}

func (w *WordCache) store(cache map[string]map[string]string, targetLang, key, value string) {
	perLang, ok := cache[targetLang]
	if !ok {
		perLang = map[string]string{}
		cache[targetLang] = perLang
	}
	perLang[key] = value
}
