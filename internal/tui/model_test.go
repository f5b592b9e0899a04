package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/libretype/libretype/internal/model"
	"github.com/libretype/libretype/internal/practice"
)

func typeCurrentWord(t *testing.T, s *practice.Session, now time.Time) {
	t.Helper()
	for _, r := range s.Words()[s.CurrentWordIndex()] {
		s.TypeRune(r, now)
	}
	s.TypeRune(' ', now)
}

func TestManualScrollSurvivesSkipsAndTypos(t *testing.T) {
	text := strings.Repeat("le chat noir dort bien ici ", 10)
	sess := practice.NewSession("t", text, "fr", false, 0)
	m := NewModel(model.Config{}, sess, nil, DefaultKeymap(), nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})

	base := time.Now()
	m.handleKey(tea.KeyMsg{Type: tea.KeyPgDown})

	// Advancing three words without typing any of them correctly must not
	// lift the suppression.
	for range 3 {
		sess.SkipWord(base)
	}
	if !m.manual.suppressed(base.Add(time.Second), sess.CorrectWords()) {
		t.Fatal("suppression lifted by skipped words")
	}

	sess.TypeRune('x', base)
	sess.TypeRune(' ', base) // mistyped commit
	if !m.manual.suppressed(base.Add(2*time.Second), sess.CorrectWords()) {
		t.Fatal("suppression lifted by a mistyped word")
	}

	// Three correctly typed words re-enable auto-follow.
	for range 3 {
		typeCurrentWord(t, sess, base)
	}
	if m.manual.suppressed(base.Add(3*time.Second), sess.CorrectWords()) {
		t.Error("suppression still active after three correctly typed words")
	}
}
