package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wordLine is one display line of the word grid: indices [start, end) into
// the word slice it was built from.
type wordLine struct {
	start int
	end   int
}

// wrapWords lays words out greedily into lines of at most width display
// cells, one space between words, no hyphenation. A word wider than the
// line gets a line of its own.
func wrapWords(words []string, width int) []wordLine {
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []wordLine{{start: 0, end: len(words)}}
	}
	var lines []wordLine
	start := 0
	lineWidth := 0
	for i, word := range words {
		w := runewidth.StringWidth(word)
		if i == start {
			lineWidth = w
			continue
		}
		if lineWidth+1+w > width {
			lines = append(lines, wordLine{start: start, end: i})
			start = i
			lineWidth = w
			continue
		}
		lineWidth += 1 + w
	}
	lines = append(lines, wordLine{start: start, end: len(words)})
	return lines
}

// lineDisplayWidth measures one laid-out line in display cells, counting a
// trailing space per word. Wide runes count their full cell width.
func lineDisplayWidth(words []string, ln wordLine) int {
	w := 0
	for i := ln.start; i < ln.end; i++ {
		w += runewidth.StringWidth(words[i]) + 1
	}
	return w
}

// lineOfWord returns which line holds the given word index, or the last
// line when the index runs past the layout.
func lineOfWord(lines []wordLine, wordIdx int) int {
	for i, ln := range lines {
		if wordIdx >= ln.start && wordIdx < ln.end {
			return i
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}

// wordState classifies a word for rendering.
type wordState int

const (
	wordPending wordState = iota
	wordCorrect
	wordIncorrect
	wordCurrent
	wordDropped
)

// renderWordLine styles one line of the word grid. stateOf maps a word
// index to its render state.
func renderWordLine(words []string, ln wordLine, stateOf func(int) wordState) string {
	var b strings.Builder
	for i := ln.start; i < ln.end; i++ {
		if i > ln.start {
			b.WriteByte(' ')
		}
		b.WriteString(styleFor(stateOf(i)).Render(words[i]))
	}
	return b.String()
}

func styleFor(state wordState) lipgloss.Style {
	switch state {
	case wordCorrect:
		return correctStyle
	case wordIncorrect:
		return incorrectStyle
	case wordCurrent:
		return currentWordStyle
	case wordDropped:
		return droppedStyle
	default:
		return pendingStyle
	}
}

// renderCurrentWord renders the in-progress word character by character:
// typed runes compared against the expected word, the rest of the expected
// word dimmed, extra typed runes marked incorrect. The first untyped rune
// carries the cursor underline.
func renderCurrentWord(expected string, typed string) string {
	expRunes := []rune(expected)
	typRunes := []rune(typed)

	var b strings.Builder
	for i, r := range typRunes {
		if i < len(expRunes) && r == expRunes[i] {
			b.WriteString(correctStyle.Render(string(r)))
		} else {
			b.WriteString(incorrectStyle.Render(string(r)))
		}
	}
	if len(typRunes) < len(expRunes) {
		b.WriteString(cursorStyle.Render(string(expRunes[len(typRunes)])))
		if len(typRunes)+1 < len(expRunes) {
			b.WriteString(pendingStyle.Render(string(expRunes[len(typRunes)+1:])))
		}
	}
	return b.String()
}
