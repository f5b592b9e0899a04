// Package practice implements the typing session state machine: dual word
// cursors over filtered and original text, word commit and skip handling,
// WPM tracking, and the optional countdown timer. All mutation happens
// synchronously in response to discrete key events.
package practice

import (
	"math"
	"strings"
	"time"

	"github.com/libretype/libretype/internal/model"
	"github.com/libretype/libretype/internal/textnorm"
	"github.com/libretype/libretype/internal/wordfilter"
)

const (
	// wpmInterval is how often the displayed WPM may change. Recomputing on
	// every keystroke makes the number jitter.
	wpmInterval = 2 * time.Second

	// blockSkipMultiplier oversizes the block skip so it always clears the
	// visible area even when the width estimate runs short.
	blockSkipMultiplier = 2

	// minBlockSkip is the smallest number of words a block skip advances.
	minBlockSkip = 150

	// lineRefreshEvery throttles translation refreshes during repeated line
	// skips: only every third skip forces one.
	lineRefreshEvery = 3
)

// wordRecord remembers how a committed word was produced, so backspacing
// over its trailing space can undo the bookkeeping exactly.
type wordRecord struct {
	typed     bool
	incorrect bool
	skipped   bool
}

// Session is one typing practice run over a single text.
type Session struct {
	title    string
	langCode string

	originalWords []string
	words         []string
	originalIndex []int
	keptMask      []bool
	avgWordLen    int

	currentWordIndex         int
	currentOriginalWordIndex int

	committed []string
	history   []wordRecord
	current   []rune
	touched   bool

	incorrectWords     map[int]struct{}
	actuallyTypedWords int
	correctWords       int
	skippedWords       int

	started   bool
	startedAt time.Time
	timed     bool
	deadline  time.Time
	duration  time.Duration

	finished bool
	timedOut bool
	endedAt  time.Time

	lastWPM   int
	lastWPMAt time.Time
	finalWPM  int

	lineSkips        int
	refreshRequested bool
}

// NewSession normalizes and tokenizes text, filters it for typability, and
// returns a session positioned at the first word. timerMinutes is ignored
// unless timed is true.
func NewSession(title, text, langCode string, timed bool, timerMinutes int) *Session {
	normalized := textnorm.JoinHyphenatedLineBreaks(textnorm.Normalize(text))
	rawTokens := strings.Fields(normalized)
	filtered := wordfilter.Filter(rawTokens, langCode)

	s := &Session{
		title:          title,
		langCode:       langCode,
		originalWords:  rawTokens,
		words:          filtered.Kept,
		originalIndex:  filtered.OriginalIndex,
		keptMask:       filtered.KeptMask,
		avgWordLen:     averageWordLen(filtered.Kept),
		incorrectWords: map[int]struct{}{},
		timed:          timed,
	}
	if timed && timerMinutes > 0 {
		s.duration = time.Duration(timerMinutes) * time.Minute
	}
	s.syncOriginalCursor()
	return s
}

func averageWordLen(words []string) int {
	if len(words) == 0 {
		return 5
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	avg := total / len(words)
	if avg < 1 {
		avg = 1
	}
	return avg
}

// Title returns the book title the session was built from.
func (s *Session) Title() string { return s.title }

// Words returns the filtered word sequence the user types.
func (s *Session) Words() []string { return s.words }

// OriginalWords returns the raw token sequence shown in the source pane.
func (s *Session) OriginalWords() []string { return s.originalWords }

// KeptMask reports, per original token, whether it survived filtering.
func (s *Session) KeptMask() []bool { return s.keptMask }

// CurrentWordIndex is the cursor into the filtered word sequence.
func (s *Session) CurrentWordIndex() int { return s.currentWordIndex }

// CurrentOriginalWordIndex is the cursor into the raw token sequence. It
// always points at a kept token while words remain.
func (s *Session) CurrentOriginalWordIndex() int { return s.currentOriginalWordIndex }

// CurrentInput returns the characters typed so far for the current word.
func (s *Session) CurrentInput() string { return string(s.current) }

// TypedWords returns the committed canonical words plus the in-progress
// partial word, the input to the live translator.
func (s *Session) TypedWords() []string {
	out := make([]string, len(s.committed), len(s.committed)+1)
	copy(out, s.committed)
	if len(s.current) > 0 {
		out = append(out, string(s.current))
	}
	return out
}

// CorrectWords counts words committed with a correct typing, excluding
// skipped and mistyped commits.
func (s *Session) CorrectWords() int { return s.correctWords }

// IsIncorrect reports whether the word at index was committed with a typo.
func (s *Session) IsIncorrect(index int) bool {
	_, ok := s.incorrectWords[index]
	return ok
}

// Started reports whether the first real keystroke has happened.
func (s *Session) Started() bool { return s.started }

// Finished reports whether the session has ended.
func (s *Session) Finished() bool { return s.finished }

// ConsumeRefreshRequest reports and clears the pending translation-refresh
// flag set by skip operations.
func (s *Session) ConsumeRefreshRequest() bool {
	r := s.refreshRequested
	s.refreshRequested = false
	return r
}

// TypeRune processes one printable character. The session clock starts on
// the first one. A space commits the current word.
func (s *Session) TypeRune(r rune, now time.Time) {
	if s.finished || s.currentWordIndex >= len(s.words) {
		return
	}
	s.startClock(now)
	if r == ' ' {
		s.commitWord(now, false)
		return
	}
	s.current = append(s.current, r)
	s.touched = true
}

// Backspace removes the last typed character. Deleting the trailing space of
// a committed word reopens that word: both cursors retreat and the commit
// bookkeeping is undone.
func (s *Session) Backspace() {
	if s.finished {
		return
	}
	if len(s.current) > 0 {
		s.current = s.current[:len(s.current)-1]
		return
	}
	if len(s.committed) == 0 {
		return
	}

	last := len(s.committed) - 1
	record := s.history[last]
	word := s.committed[last]
	s.committed = s.committed[:last]
	s.history = s.history[:last]

	s.currentWordIndex--
	delete(s.incorrectWords, s.currentWordIndex)
	if record.typed {
		s.actuallyTypedWords--
		if !record.incorrect {
			s.correctWords--
		}
	}
	if record.skipped {
		s.skippedWords--
	}
	s.syncOriginalCursor()

	s.current = []rune(word)
	s.touched = record.typed
}

// SkipWord completes the current word without typing it: the remainder (or
// the whole word) is filled in, the word counts as skipped, and a
// translation refresh is requested.
func (s *Session) SkipWord(now time.Time) {
	if s.finished || s.currentWordIndex >= len(s.words) {
		return
	}
	s.startClock(now)
	s.commitWord(now, true)
	s.refreshRequested = true
}

// SkipLine bulk-advances roughly one screen line of words, estimated from
// the display width and the text's average word length. Only every third
// invocation forces a translation refresh.
func (s *Session) SkipLine(displayWidth int, now time.Time) {
	if s.finished {
		return
	}
	s.startClock(now)
	n := displayWidth / (s.avgWordLen + 1)
	if n < 1 {
		n = 1
	}
	s.skipWords(n, now)
	s.lineSkips++
	if s.lineSkips%lineRefreshEvery == 0 {
		s.refreshRequested = true
	}
}

// SkipBlock bulk-advances a full visible screen of words, with a floor so
// short estimates still move meaningfully through long texts.
func (s *Session) SkipBlock(displayWidth, visibleLines int, now time.Time) {
	if s.finished {
		return
	}
	s.startClock(now)
	wordsPerLine := displayWidth / (s.avgWordLen + 1)
	if wordsPerLine < 1 {
		wordsPerLine = 1
	}
	n := wordsPerLine * visibleLines * blockSkipMultiplier
	if n < minBlockSkip {
		n = minBlockSkip
	}
	s.skipWords(n, now)
	s.refreshRequested = true
}

// skipWords commits n words as skipped in one batch.
func (s *Session) skipWords(n int, now time.Time) {
	for i := 0; i < n && !s.finished && s.currentWordIndex < len(s.words); i++ {
		s.commitWord(now, true)
	}
}

// commitWord closes out the current word: compares typed input against the
// expected word (accent-folded, case-insensitive), records correctness,
// appends the canonical word to the committed buffer, and advances both
// cursors.
func (s *Session) commitWord(now time.Time, skipped bool) {
	if s.currentWordIndex >= len(s.words) {
		return
	}
	expected := s.words[s.currentWordIndex]

	record := wordRecord{skipped: skipped}
	if !skipped {
		if len(s.current) == 0 {
			// Bare space with nothing typed: ignore.
			return
		}
		record.typed = true
		typed := textnorm.FoldForCompare(string(s.current))
		want := textnorm.FoldForCompare(expected)
		if typed != want {
			record.incorrect = true
			s.incorrectWords[s.currentWordIndex] = struct{}{}
		} else {
			s.correctWords++
		}
		s.actuallyTypedWords++
	} else {
		s.skippedWords++
	}

	// The canonical expected word is committed, not the raw input, so the
	// visual buffer always shows correct text once a word is closed.
	s.committed = append(s.committed, expected)
	s.history = append(s.history, record)
	s.current = nil
	s.touched = false

	s.currentWordIndex++
	s.syncOriginalCursor()

	if s.currentWordIndex >= len(s.words) {
		s.finish(now, false)
	}
}

// syncOriginalCursor points the original-text cursor at the raw position of
// the current filtered word, which skips any dropped tokens in between.
func (s *Session) syncOriginalCursor() {
	if s.currentWordIndex < len(s.originalIndex) {
		s.currentOriginalWordIndex = s.originalIndex[s.currentWordIndex]
	} else if len(s.originalWords) > 0 {
		s.currentOriginalWordIndex = len(s.originalWords) - 1
	}
}

func (s *Session) startClock(now time.Time) {
	if s.started {
		return
	}
	s.started = true
	s.startedAt = now
	if s.timed && s.duration > 0 {
		s.deadline = now.Add(s.duration)
	}
}

// Tick advances the timer. In timed mode it ends the session when the
// deadline passes; the caller should invoke it every loop iteration.
func (s *Session) Tick(now time.Time) {
	if s.finished || !s.started {
		return
	}
	if s.timed && !s.deadline.IsZero() && !now.Before(s.deadline) {
		s.finish(now, true)
	}
}

// Remaining reports time left on the countdown, zero when untimed or
// not started.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.timed || !s.started || s.deadline.IsZero() {
		return 0
	}
	left := s.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (s *Session) finish(now time.Time, timedOut bool) {
	if s.finished {
		return
	}
	s.finished = true
	s.timedOut = timedOut
	s.endedAt = now
	s.finalWPM = s.computeWPM(now)
}

// WPM returns words per minute, recomputed at most every two seconds while
// the session runs and frozen once it ends.
func (s *Session) WPM(now time.Time) int {
	if s.finished {
		return s.finalWPM
	}
	if !s.started {
		return 0
	}
	if !s.lastWPMAt.IsZero() && now.Sub(s.lastWPMAt) < wpmInterval {
		return s.lastWPM
	}
	s.lastWPM = s.computeWPM(now)
	s.lastWPMAt = now
	return s.lastWPM
}

func (s *Session) computeWPM(now time.Time) int {
	elapsed := now.Sub(s.startedAt).Minutes()
	if elapsed <= 0 {
		return 0
	}
	words := float64(s.actuallyTypedWords) + s.partialProgress()
	return int(math.Floor(words / elapsed))
}

// partialProgress credits the fraction of the current word already typed,
// but only once the user has actually typed a character of it: a word just
// skipped to contributes nothing.
func (s *Session) partialProgress() float64 {
	if !s.touched || s.currentWordIndex >= len(s.words) {
		return 0
	}
	expected := []rune(s.words[s.currentWordIndex])
	if len(expected) == 0 {
		return 0
	}
	p := float64(len(s.current)) / float64(len(expected))
	if p > 1 {
		p = 1
	}
	return p
}

// Abort ends the session immediately without marking a timeout. Used for
// ESC; no statistics are shown for an aborted session.
func (s *Session) Abort(now time.Time) {
	s.finish(now, false)
}

// Result summarizes the finished session. Accuracy is the share of words
// neither mistyped nor skipped, as a percentage.
func (s *Session) Result() model.SessionResult {
	total := len(s.words)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(total-len(s.incorrectWords)-s.skippedWords) / float64(total) * 100
		if accuracy < 0 {
			accuracy = 0
		}
	}
	var dur time.Duration
	if s.started {
		dur = s.endedAt.Sub(s.startedAt)
	}
	return model.SessionResult{
		Title:          s.title,
		Lang:           s.langCode,
		WPM:            s.finalWPM,
		Accuracy:       math.Round(accuracy*10) / 10,
		WordsTyped:     s.actuallyTypedWords,
		WordsSkipped:   s.skippedWords,
		IncorrectWords: len(s.incorrectWords),
		TotalWords:     total,
		Duration:       dur,
		TimedOut:       s.timedOut,
	}
}
