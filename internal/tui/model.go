// Package tui provides the Bubble Tea practice interface: three stacked
// panes (source text, live translation, typing input) over a practice
// session.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/libretype/libretype/internal/model"
	"github.com/libretype/libretype/internal/practice"
	"github.com/libretype/libretype/internal/stats"
	"github.com/libretype/libretype/internal/translate"
)

const tickInterval = 250 * time.Millisecond

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	droppedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A")).Strikethrough(true)
	cursorStyle      = pendingStyle.Underline(true)
	paneTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E9ED6")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type tickMsg time.Time

// translationMsg carries one finished translation pass back into the event
// loop. The live translator is only touched from the command goroutine while
// exactly one command is in flight.
type translationMsg struct {
	rendered string
	lines    []string
	status   model.TranslationStatus
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	cfg     model.Config
	session *practice.Session
	live    *translate.Live
	keymap  Keymap
	logger  *slog.Logger

	width  int
	height int

	// revIndex maps an original token position to its filtered index, -1
	// for dropped tokens.
	revIndex []int

	sourceOffset int

	translationVP    viewport.Model
	translationLines []string
	translationText  string
	status           model.TranslationStatus
	translating      bool
	forceTranslate   bool
	manual           manualScroll

	showStats bool
}

// NewModel builds the practice UI for a session. live may be nil when
// translation is disabled.
func NewModel(cfg model.Config, session *practice.Session, live *translate.Live, km Keymap, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		cfg:           cfg,
		session:       session,
		live:          live,
		keymap:        km,
		logger:        logger,
		status:        model.TranslationPending,
		translationVP: viewport.New(0, 0),
	}
	if live == nil {
		m.status = model.TranslationDisabled
	}
	m.buildRevIndex()
	return m
}

func (m *Model) buildRevIndex() {
	mask := m.session.KeptMask()
	m.revIndex = make([]int, len(mask))
	next := 0
	for i, kept := range mask {
		if kept {
			m.revIndex[i] = next
			next++
		} else {
			m.revIndex[i] = -1
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanes()
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		m.session.Tick(now)
		if m.session.Finished() && !m.showStats {
			if m.session.Result().TimedOut || m.allWordsConsumed() {
				m.showStats = true
			} else {
				// Aborted: leave immediately, no statistics.
				return m, tea.Quit
			}
		}
		return m, tea.Batch(tick(), m.maybeTranslate(now))

	case translationMsg:
		m.translating = false
		m.translationText = msg.rendered
		m.translationLines = msg.lines
		m.status = msg.status
		m.translationVP.SetContent(strings.Join(msg.lines, "\n"))
		m.autoScrollTranslation(time.Now())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) allWordsConsumed() bool {
	return m.session.CurrentWordIndex() >= len(m.session.Words())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// The statistics screen blocks everything except leaving it.
	if m.showStats {
		switch {
		case key.Matches(msg, m.keymap.Quit), msg.Type == tea.KeyEnter:
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.session.Abort(now)
		return m, tea.Quit

	case key.Matches(msg, m.keymap.SkipWord):
		m.session.SkipWord(now)

	case key.Matches(msg, m.keymap.SkipLine):
		m.session.SkipLine(m.paneWidth(), now)

	case key.Matches(msg, m.keymap.SkipBlock):
		m.session.SkipBlock(m.paneWidth(), m.translationVP.Height, now)

	case key.Matches(msg, m.keymap.ScrollUp):
		m.translationVP.SetYOffset(m.translationVP.YOffset - m.translationVP.Height/2)
		m.manual.mark(now, m.session.CorrectWords())
		return m, nil

	case key.Matches(msg, m.keymap.ScrollDown):
		m.translationVP.SetYOffset(m.translationVP.YOffset + m.translationVP.Height/2)
		m.manual.mark(now, m.session.CorrectWords())
		return m, nil

	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			m.session.Backspace()
		case tea.KeySpace:
			m.session.TypeRune(' ', now)
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.session.TypeRune(r, now)
			}
		default:
			return m, nil
		}
	}

	if m.session.ConsumeRefreshRequest() {
		m.forceTranslate = true
	}
	if m.session.Finished() && m.allWordsConsumed() {
		m.showStats = true
	}
	m.followSource()
	return m, m.maybeTranslate(now)
}

// maybeTranslate launches one background translation pass when translation
// is on, nothing is in flight, and there is typed text to translate.
func (m *Model) maybeTranslate(now time.Time) tea.Cmd {
	if m.live == nil || m.translating || m.session.Finished() {
		return nil
	}
	words := m.session.TypedWords()
	if len(words) == 0 {
		return nil
	}
	m.translating = true
	force := m.forceTranslate
	m.forceTranslate = false
	width := m.paneWidth()
	live := m.live

	return func() tea.Msg {
		if force {
			live.RequestRefresh()
		}
		rendered := live.Update(context.Background(), words, width, now)
		return translationMsg{
			rendered: rendered,
			lines:    live.Lines(),
			status:   live.Status(),
		}
	}
}

// followSource keeps the current original word visible in the source pane.
func (m *Model) followSource() {
	width := m.paneWidth()
	if width <= 0 {
		return
	}
	lines := wrapWords(m.session.OriginalWords(), width)
	current := lineOfWord(lines, m.session.CurrentOriginalWordIndex())
	m.sourceOffset = followOffset(m.sourceOffset, current, m.sourceHeight(), len(lines))
}

// autoScrollTranslation repositions the translation pane unless the user
// scrolled it manually just now.
func (m *Model) autoScrollTranslation(now time.Time) {
	if m.manual.suppressed(now, m.session.CorrectWords()) {
		return
	}
	wordsTyped := m.session.CurrentWordIndex()
	total := len(m.translationLines)
	visible := m.translationVP.Height
	progress := 0.0
	if n := len(m.session.Words()); n > 0 {
		progress = float64(wordsTyped) / float64(n)
	}
	current := total - 1
	if current < 0 {
		current = 0
	}
	offset := translationOffset(m.translationVP.YOffset, current, visible, total, progress)
	m.translationVP.SetYOffset(offset)
}

func (m *Model) paneWidth() int {
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// layoutPanes splits the terminal height: source pane gets the largest
// share, translation and input the rest.
func (m *Model) layoutPanes() {
	h := m.height - 6 // three pane titles and the footer
	if h < 3 {
		h = 3
	}
	m.translationVP.Width = m.paneWidth()
	m.translationVP.Height = h * 3 / 10
	if m.translationVP.Height < 1 {
		m.translationVP.Height = 1
	}
}

func (m *Model) sourceHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	s := h * 4 / 10
	if s < 1 {
		s = 1
	}
	return s
}

func (m *Model) inputHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	i := h - m.sourceHeight() - m.translationVP.Height
	if i < 1 {
		i = 1
	}
	return i
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showStats {
		return m.statsView()
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(m.session.Title()))
	b.WriteByte('\n')
	b.WriteString(m.sourceView())
	b.WriteByte('\n')
	b.WriteString(paneTitleStyle.Render("Translation"))
	b.WriteByte('\n')
	b.WriteString(m.translationView())
	b.WriteByte('\n')
	b.WriteString(paneTitleStyle.Render("Input"))
	b.WriteByte('\n')
	b.WriteString(m.inputView())
	b.WriteByte('\n')
	b.WriteString(m.footerView())
	return b.String()
}

func (m *Model) sourceView() string {
	width := m.paneWidth()
	words := m.session.OriginalWords()
	lines := wrapWords(words, width)
	cur := m.session.CurrentWordIndex()
	curOrig := m.session.CurrentOriginalWordIndex()

	stateOf := func(i int) wordState {
		fi := m.revIndex[i]
		if fi < 0 {
			return wordDropped
		}
		switch {
		case i == curOrig && fi == cur:
			return wordCurrent
		case fi < cur:
			if m.session.IsIncorrect(fi) {
				return wordIncorrect
			}
			return wordCorrect
		default:
			return wordPending
		}
	}

	visible := m.sourceHeight()
	end := m.sourceOffset + visible
	if end > len(lines) {
		end = len(lines)
	}
	var out []string
	for _, ln := range lines[m.sourceOffset:end] {
		out = append(out, renderWordLine(words, ln, stateOf))
	}
	for len(out) < visible {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m *Model) translationView() string {
	if m.live == nil {
		return pendingStyle.Render("translation off")
	}
	if m.status != model.TranslationAvailable && m.status != model.TranslationPending {
		return statusStyle.Render(m.status.String())
	}
	return m.translationVP.View()
}

func (m *Model) inputView() string {
	width := m.paneWidth()
	committed := m.session.TypedWords()
	partial := m.session.CurrentInput()
	if partial != "" && len(committed) > 0 {
		committed = committed[:len(committed)-1]
	}

	lines := wrapWords(committed, width)
	stateOf := func(i int) wordState {
		if m.session.IsIncorrect(i) {
			return wordIncorrect
		}
		return wordCorrect
	}

	visible := m.inputHeight()
	start := len(lines) - visible
	if start < 0 {
		start = 0
	}
	var out []string
	for _, ln := range lines[start:] {
		out = append(out, renderWordLine(committed, ln, stateOf))
	}

	// The in-progress word rides on the last line when it fits.
	cur := ""
	if m.session.CurrentWordIndex() < len(m.session.Words()) {
		cur = renderCurrentWord(m.session.Words()[m.session.CurrentWordIndex()], partial)
	}
	if cur != "" {
		if len(out) == 0 {
			out = append(out, cur)
		} else {
			lastWidth := 0
			if len(lines) > 0 {
				lastWidth = lineDisplayWidth(committed, lines[len(lines)-1])
			}
			if lastWidth+runewidth.StringWidth(partial) < width {
				out[len(out)-1] += " " + cur
			} else {
				out = append(out, cur)
			}
		}
	}
	for len(out) < visible {
		out = append(out, "")
	}
	if len(out) > visible {
		out = out[len(out)-visible:]
	}
	return strings.Join(out, "\n")
}

func (m *Model) footerView() string {
	now := time.Now()
	segments := []string{
		fmt.Sprintf("WPM %d", m.session.WPM(now)),
	}
	if m.cfg.Timed {
		segments = append(segments, "Time "+stats.FormatDuration(m.session.Remaining(now)))
	}
	segments = append(segments,
		fmt.Sprintf("Words %d/%d", m.session.CurrentWordIndex(), len(m.session.Words())),
		m.keymap.SkipWord.Help().Key+" skip",
		m.keymap.Quit.Help().Key+" quit",
	)
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) statsView() string {
	var b strings.Builder
	if err := stats.RenderSessionSummary(&b, m.session.Result()); err != nil {
		// Writing to a Builder cannot fail; keep the view robust anyway.
		return "session complete"
	}
	b.WriteString("\npress enter or esc to exit\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

