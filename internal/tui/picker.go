package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/libretype/libretype/internal/model"
)

// Picker is a Bubble Tea model that lets the user choose a book from the
// library table. The chosen book is available from Selected after the
// program exits.
type Picker struct {
	books    []model.Book
	table    table.Model
	width    int
	height   int
	selected *model.Book
}

// NewPicker builds a picker over the scanned library.
func NewPicker(books []model.Book) *Picker {
	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Language", Width: 12},
		{Title: "Words", Width: 8},
	}
	rows := make([]table.Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, table.Row{
			b.Title,
			b.Language,
			fmt.Sprintf("%d", b.WordCount),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(pickerTableStyles())
	return &Picker{books: books, table: t}
}

func pickerTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A5A8C")).
		Bold(true)
	return styles
}

// Selected returns the chosen book, nil when the picker was dismissed.
func (p *Picker) Selected() *model.Book { return p.selected }

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		h := msg.Height - 4
		if h < 3 {
			h = 3
		}
		p.table.SetHeight(h)
		return p, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return p, tea.Quit
		case tea.KeyEnter:
			if cursor := p.table.Cursor(); cursor >= 0 && cursor < len(p.books) {
				p.selected = &p.books[cursor]
			}
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *Picker) View() string {
	header := paneTitleStyle.Render("Choose a book")
	footer := footerStyle.Render("enter select  esc cancel")
	return header + "\n" + p.table.View() + "\n" + footer
}
