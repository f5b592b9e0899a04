package practice

import (
	"strings"
	"testing"
	"time"
)

func typeWord(t *testing.T, s *Session, word string, now time.Time) {
	t.Helper()
	for _, r := range word {
		s.TypeRune(r, now)
	}
	s.TypeRune(' ', now)
}

func TestCommitAdvancesCursorsAndStoresCanonicalWord(t *testing.T) {
	s := NewSession("t", "Hello world today", "en", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "helo", now) // typo
	if s.CurrentWordIndex() != 1 {
		t.Fatalf("currentWordIndex = %d, want 1", s.CurrentWordIndex())
	}
	if !s.IsIncorrect(0) {
		t.Error("mistyped word not marked incorrect")
	}
	// The canonical expected word is committed, not the raw input.
	if got := s.TypedWords(); got[0] != "Hello" {
		t.Errorf("committed word = %q, want Hello", got[0])
	}

	typeWord(t, s, "world", now)
	if s.IsIncorrect(1) {
		t.Error("correct word marked incorrect")
	}
}

func TestAccentFoldedComparison(t *testing.T) {
	s := NewSession("t", "le café noir", "fr", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "le", now)
	typeWord(t, s, "cafe", now) // unaccented input accepted
	if s.IsIncorrect(1) {
		t.Error("accent-folded match marked incorrect")
	}

	typeWord(t, s, "NOIR", now) // case-insensitive
	if s.IsIncorrect(2) {
		t.Error("case-folded match marked incorrect")
	}
}

func TestOriginalCursorSkipsFilteredTokens(t *testing.T) {
	// "xK9Qz" is dropped by the filter, so committing "Hello" must land the
	// original cursor on "world" at raw position 2.
	s := NewSession("t", "Hello xK9Qz world", "en", false, 0)
	if got := s.Words(); len(got) != 2 {
		t.Fatalf("filtered words = %v, want 2 entries", got)
	}
	if s.CurrentOriginalWordIndex() != 0 {
		t.Fatalf("initial original cursor = %d", s.CurrentOriginalWordIndex())
	}

	now := time.Unix(1000, 0)
	typeWord(t, s, "Hello", now)
	if s.CurrentOriginalWordIndex() != 2 {
		t.Errorf("original cursor = %d, want 2 (past dropped token)", s.CurrentOriginalWordIndex())
	}
}

func TestBackspaceWithinWord(t *testing.T) {
	s := NewSession("t", "Hello world", "en", false, 0)
	now := time.Unix(1000, 0)
	s.TypeRune('H', now)
	s.TypeRune('x', now)
	s.Backspace()
	if got := s.CurrentInput(); got != "H" {
		t.Fatalf("input after backspace = %q, want H", got)
	}
}

func TestBackspaceReopensCommittedWord(t *testing.T) {
	s := NewSession("t", "Hello xK9Qz world", "en", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "helo", now) // typo, committed
	if !s.IsIncorrect(0) || s.CurrentWordIndex() != 1 {
		t.Fatal("setup: word not committed as incorrect")
	}

	s.Backspace() // delete the trailing space
	if s.CurrentWordIndex() != 0 {
		t.Errorf("currentWordIndex = %d, want 0", s.CurrentWordIndex())
	}
	if s.IsIncorrect(0) {
		t.Error("incorrect mark not cleared on reopen")
	}
	if s.CurrentOriginalWordIndex() != 0 {
		t.Errorf("original cursor = %d, want 0 (back across dropped token)", s.CurrentOriginalWordIndex())
	}
	// The word reopens fully typed, ready for further backspacing.
	if got := s.CurrentInput(); got != "Hello" {
		t.Errorf("reopened input = %q, want Hello", got)
	}
}

func TestBackspaceUndoesTypedCount(t *testing.T) {
	s := NewSession("t", "one two three", "en", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "one", now)
	s.Backspace() // reopen: the typed count must drop back to zero
	for s.CurrentInput() != "" {
		s.Backspace()
	}
	s.SkipWord(now)
	s.SkipWord(now)
	s.SkipWord(now)

	res := s.Result()
	if res.WordsTyped != 0 {
		t.Errorf("WordsTyped = %d, want 0", res.WordsTyped)
	}
	if res.WordsSkipped != 3 {
		t.Errorf("WordsSkipped = %d, want 3", res.WordsSkipped)
	}
}

func TestSkipWordCountsSkippedAndRequestsRefresh(t *testing.T) {
	s := NewSession("t", "one two three", "en", false, 0)
	now := time.Unix(1000, 0)

	s.SkipWord(now)
	if s.CurrentWordIndex() != 1 {
		t.Fatalf("currentWordIndex = %d, want 1", s.CurrentWordIndex())
	}
	if !s.ConsumeRefreshRequest() {
		t.Error("skip did not request a translation refresh")
	}
	if s.ConsumeRefreshRequest() {
		t.Error("refresh request not cleared after consume")
	}

	// A partially typed word is completed, committed, and still counts as
	// skipped rather than typed.
	s.TypeRune('t', now)
	s.SkipWord(now)
	if got := s.TypedWords()[1]; got != "two" {
		t.Errorf("skipped word committed as %q, want two", got)
	}
}

func TestSkipLineEstimateAndRefreshCadence(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 100))
	s := NewSession("t", text, "en", false, 0)
	now := time.Unix(1000, 0)

	// avg word length 4 → 40/(4+1) = 8 words per line.
	s.SkipLine(40, now)
	if s.CurrentWordIndex() != 8 {
		t.Fatalf("currentWordIndex = %d, want 8", s.CurrentWordIndex())
	}
	if s.ConsumeRefreshRequest() {
		t.Error("first line skip should not force a refresh")
	}
	s.SkipLine(40, now)
	if s.ConsumeRefreshRequest() {
		t.Error("second line skip should not force a refresh")
	}
	s.SkipLine(40, now)
	if !s.ConsumeRefreshRequest() {
		t.Error("third line skip should force a refresh")
	}
}

func TestSkipBlockFloor(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 300))
	s := NewSession("t", text, "en", false, 0)
	now := time.Unix(1000, 0)

	// 8 words per line × 3 lines × 2 = 48, below the floor of 150.
	s.SkipBlock(40, 3, now)
	if s.CurrentWordIndex() != minBlockSkip {
		t.Errorf("currentWordIndex = %d, want %d", s.CurrentWordIndex(), minBlockSkip)
	}
	if !s.ConsumeRefreshRequest() {
		t.Error("block skip should force a refresh")
	}
}

func TestWPMThrottleAndPartialProgress(t *testing.T) {
	s := NewSession("t", "one two three four five", "en", false, 0)
	start := time.Unix(1000, 0)

	typeWord(t, s, "one", start)
	at30 := start.Add(30 * time.Second)
	if got := s.WPM(at30); got != 2 {
		t.Fatalf("WPM = %d, want 2 (1 word / 0.5 min)", got)
	}

	// Within the two-second interval the value is frozen even as typing
	// continues.
	s.TypeRune('t', at30)
	s.TypeRune('w', at30)
	if got := s.WPM(at30.Add(time.Second)); got != 2 {
		t.Errorf("throttled WPM = %d, want cached 2", got)
	}

	// After the interval the partial word counts: 1 + 2/3 over 0.5 min.
	if got := s.WPM(at30.Add(2 * time.Second)); got != 3 {
		t.Errorf("WPM with partial progress = %d, want 3", got)
	}
}

func TestFreshlySkippedWordContributesNoProgress(t *testing.T) {
	s := NewSession("t", "one two three", "en", false, 0)
	start := time.Unix(1000, 0)

	s.SkipWord(start)
	at30 := start.Add(30 * time.Second)
	if got := s.WPM(at30); got != 0 {
		t.Errorf("WPM after skip only = %d, want 0", got)
	}
}

func TestTimerExpiryEndsSession(t *testing.T) {
	s := NewSession("t", "one two three four five", "en", true, 1)
	start := time.Unix(1000, 0)

	typeWord(t, s, "one", start)
	s.Tick(start.Add(30 * time.Second))
	if s.Finished() {
		t.Fatal("session ended before the deadline")
	}
	if got := s.Remaining(start.Add(30 * time.Second)); got != 30*time.Second {
		t.Errorf("Remaining = %v, want 30s", got)
	}

	s.Tick(start.Add(61 * time.Second))
	if !s.Finished() {
		t.Fatal("session not ended at deadline")
	}
	res := s.Result()
	if !res.TimedOut {
		t.Error("result not marked timed out")
	}
	// Input after the end is ignored.
	before := s.CurrentWordIndex()
	s.TypeRune('x', start.Add(62*time.Second))
	if s.CurrentWordIndex() != before || s.CurrentInput() != "" {
		t.Error("input accepted after session end")
	}
}

func TestCompletionAndAccuracy(t *testing.T) {
	s := NewSession("t", "one two three four five", "en", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "one", now)   // correct
	typeWord(t, s, "wrong", now) // incorrect
	s.SkipWord(now)
	s.SkipWord(now)
	s.SkipWord(now)

	if !s.Finished() {
		t.Fatal("session not finished after all words consumed")
	}
	res := s.Result()
	if res.TotalWords != 5 || res.WordsTyped != 2 || res.WordsSkipped != 3 || res.IncorrectWords != 1 {
		t.Fatalf("result counts = %+v", res)
	}
	// (5 − 1 incorrect − 3 skipped) / 5.
	if res.Accuracy != 20.0 {
		t.Errorf("Accuracy = %.1f, want 20.0", res.Accuracy)
	}
	if res.TimedOut {
		t.Error("completed session marked timed out")
	}
}

func TestDoubleSpaceIgnored(t *testing.T) {
	s := NewSession("t", "one two", "en", false, 0)
	now := time.Unix(1000, 0)
	typeWord(t, s, "one", now)
	s.TypeRune(' ', now)
	if s.CurrentWordIndex() != 1 {
		t.Errorf("bare space advanced cursor to %d", s.CurrentWordIndex())
	}
}

func TestWPMFrozenAfterFinish(t *testing.T) {
	s := NewSession("t", "one two", "en", false, 0)
	start := time.Unix(1000, 0)

	typeWord(t, s, "one", start)
	typeWord(t, s, "two", start.Add(30*time.Second))

	if !s.Finished() {
		t.Fatal("session not finished")
	}
	frozen := s.WPM(start.Add(30 * time.Second))
	if got := s.WPM(start.Add(10 * time.Minute)); got != frozen {
		t.Errorf("WPM changed after finish: %d != %d", got, frozen)
	}
	if frozen != 4 {
		t.Errorf("final WPM = %d, want 4 (2 words / 0.5 min)", frozen)
	}
}

func TestCorrectWordsCountsOnlyCleanCommits(t *testing.T) {
	s := NewSession("t", "un deux trois quatre cinq", "fr", false, 0)
	now := time.Unix(1000, 0)

	typeWord(t, s, "un", now)
	if s.CorrectWords() != 1 {
		t.Fatalf("CorrectWords = %d after one clean commit, want 1", s.CorrectWords())
	}

	typeWord(t, s, "deu", now) // typo
	s.SkipWord(now)
	if s.CorrectWords() != 1 {
		t.Errorf("CorrectWords = %d after typo and skip, want 1", s.CorrectWords())
	}

	// Backspacing over a clean commit takes it back out of the count.
	typeWord(t, s, "quatre", now)
	if s.CorrectWords() != 2 {
		t.Fatalf("CorrectWords = %d, want 2", s.CorrectWords())
	}
	s.Backspace()
	if s.CorrectWords() != 1 {
		t.Errorf("CorrectWords = %d after reopening the word, want 1", s.CorrectWords())
	}
}
