package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/libretype/libretype/internal/model"
)

// translateThrottle is the minimum interval between live translation calls.
// Forced refreshes (after skips) bypass it.
const translateThrottle = 500 * time.Millisecond

// Live maintains a live translation of the typed-so-far text. Completed
// sentences are translated once and cached for the session; only the trailing
// incomplete sentence is retranslated as it grows. A sentence cached
// untranslated after a failed call is retried on later updates.
type Live struct {
	factory    Factory
	sourceLang string
	targetLang string
	langCode   string
	layout     string
	logger     *slog.Logger

	status     model.TranslationStatus
	translator Translator
	breaker    *Breaker
	words      *WordCache

	lastText   string
	lastCallAt time.Time
	force      bool

	completedSources      []string
	completedTranslations []string
	completedFailed       []bool

	wrapped  []string
	rendered string
}

// NewLive builds a translator around a factory. The factory runs on the first
// Update call, not here, so session start never blocks on backend setup.
// langCode and layout feed the fuzzy word fallback.
func NewLive(factory Factory, sourceLang, targetLang, langCode, layout string, logger *slog.Logger) *Live {
	if logger == nil {
		logger = slog.Default()
	}
	return &Live{
		factory:    factory,
		sourceLang: sourceLang,
		targetLang: targetLang,
		langCode:   langCode,
		layout:     layout,
		logger:     logger,
		status:     model.TranslationPending,
		breaker:    NewBreaker(),
	}
}

// Status reports the current backend status. TemporarilyDisabled is tracked
// separately on the breaker and does not change this value.
func (l *Live) Status() model.TranslationStatus { return l.status }

// TemporarilyDisabled reports whether the circuit breaker is in cooldown.
func (l *Live) TemporarilyDisabled(now time.Time) bool {
	return l.breaker.TemporarilyDisabled(now)
}

// CompletedTranslations exposes the per-sentence translation cache.
func (l *Live) CompletedTranslations() []string { return l.completedTranslations }

// Rendered returns the most recent rendered translation text.
func (l *Live) Rendered() string { return l.rendered }

// Lines returns the rendered translation wrapped to the last Update width.
func (l *Live) Lines() []string { return l.wrapped }

// RequestRefresh forces the next Update to run regardless of throttle and
// unchanged-text checks. Used after skip operations.
func (l *Live) RequestRefresh() { l.force = true }

// EnsureInitialized lazily constructs the backend translator on first use.
// Status transitions only forward; once an init failure is recorded the
// session keeps the original-text fallback and never retries.
func (l *Live) EnsureInitialized(ctx context.Context) model.TranslationStatus {
	if l.status != model.TranslationPending {
		return l.status
	}
	if l.factory == nil {
		l.status = model.TranslationDisabled
		return l.status
	}

	translator, err := l.factory(ctx)
	switch {
	case err == nil:
		l.translator = translator
		l.words = NewWordCache(translator, l.sourceLang, l.langCode, l.layout, l.logger)
		l.status = model.TranslationAvailable
	case errors.Is(err, ErrNoAPIKey):
		l.status = model.TranslationMissingKey
	case errors.Is(err, ErrUnknownProvider):
		l.status = model.TranslationMissingProvider
	case errors.Is(err, ErrUnknownLanguage):
		l.status = model.TranslationMissingLanguage
	default:
		l.status = model.TranslationError
	}
	if err != nil {
		l.logger.Warn("translation backend unavailable",
			"status", l.status.String(), "error", err)
	}
	return l.status
}

// Update recomputes the live translation for the given typed words and wrap
// width. It returns the rendered text, which equals the previous rendering
// when the update was skipped (unchanged text, throttled, or breaker open).
func (l *Live) Update(ctx context.Context, typedWords []string, width int, now time.Time) string {
	currentText := strings.TrimSpace(strings.Join(typedWords, " "))
	if currentText == "" {
		return l.rendered
	}

	if l.EnsureInitialized(ctx) != model.TranslationAvailable {
		l.rendered = currentText
		l.wrapped = wrapText(currentText, width)
		return l.rendered
	}

	if currentText == l.lastText && !l.force {
		return l.rendered
	}
	if !l.force && now.Sub(l.lastCallAt) < translateThrottle {
		return l.rendered
	}
	if !l.breaker.Allow(now) {
		l.rendered = currentText
		l.wrapped = wrapText(currentText, width)
		return l.rendered
	}
	l.force = false
	l.lastText = currentText
	l.lastCallAt = now

	completed, trailing := splitSentences(currentText)
	for i := len(l.completedTranslations); i < len(completed); i++ {
		translated, ok := l.translateSegment(ctx, completed[i], now)
		l.completedSources = append(l.completedSources, completed[i])
		l.completedTranslations = append(l.completedTranslations, translated)
		l.completedFailed = append(l.completedFailed, !ok)
	}
	l.retryFailedSentence(ctx, now)

	parts := make([]string, 0, len(l.completedTranslations)+1)
	parts = append(parts, l.completedTranslations...)
	if trailing != "" {
		parts = append(parts, l.translateTrailing(ctx, trailing, now))
	}

	l.rendered = strings.Join(parts, " ")
	l.wrapped = wrapText(l.rendered, width)
	return l.rendered
}

// retryFailedSentence retranslates at most one cached sentence whose original
// call failed, replacing the untranslated fallback once the backend answers
// again. One retry per update paces recovery after an outage.
func (l *Live) retryFailedSentence(ctx context.Context, now time.Time) {
	for i, failed := range l.completedFailed {
		if !failed {
			continue
		}
		if translated, ok := l.translateSegment(ctx, l.completedSources[i], now); ok {
			l.completedTranslations[i] = translated
			l.completedFailed[i] = false
		}
		return
	}
}

// translateTrailing translates the trailing incomplete sentence. A single
// word that the backend returns unchanged gets a second chance through the
// fuzzy word cache, which catches typo-shaped words the sentence call
// cannot make sense of.
func (l *Live) translateTrailing(ctx context.Context, trailing string, now time.Time) string {
	translated, ok := l.translateSegment(ctx, trailing, now)
	if ok && translated == trailing && l.words != nil && !strings.ContainsRune(trailing, ' ') {
		return l.words.TranslateWord(ctx, trailing, l.targetLang)
	}
	return translated
}

// translateSegment translates one sentence, falling back to the untranslated
// text and recording the failure on the breaker when the call fails. ok
// reports whether the backend call itself succeeded.
func (l *Live) translateSegment(ctx context.Context, segment string, now time.Time) (string, bool) {
	if !l.breaker.Allow(now) {
		return segment, false
	}
	translated, err := l.translator.Translate(ctx, segment, l.sourceLang, l.targetLang)
	if err != nil {
		l.breaker.RecordFailure(now, err)
		l.logger.Warn("segment translation failed", "error", err)
		return segment, false
	}
	l.breaker.RecordSuccess()
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return segment, true
	}
	return translated, true
}

// splitSentences separates text into completed sentences (terminated by
// '.', '!' or '?' followed by whitespace) and the trailing incomplete
// sentence. A terminator at the very end of the text does not complete a
// sentence: the user has not moved past it yet.
func splitSentences(text string) (completed []string, trailing string) {
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if isTerminator(runes[i]) && isSpace(runes[i+1]) {
			sentence := strings.TrimSpace(string(runes[start : i+1]))
			if sentence != "" {
				completed = append(completed, sentence)
			}
			start = i + 1
		}
	}
	trailing = strings.TrimSpace(string(runes[start:]))
	return completed, trailing
}

func isTerminator(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

// wrapText greedily wraps text to the given display width. Words wider than
// the width get a line of their own.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = w
		}
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
