package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/libretype/libretype/internal/config"
)

// Keymap holds the logical session actions. Raw terminal keys are resolved
// to these bindings at the input boundary; everything past Update works in
// terms of actions.
type Keymap struct {
	SkipWord   key.Binding
	SkipLine   key.Binding
	SkipBlock  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		SkipWord: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "skip word"),
		),
		SkipLine: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "skip line"),
		),
		SkipBlock: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "skip block"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll translation up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll translation down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// KeymapFromConfig overlays user rebindings onto the default keymap.
func KeymapFromConfig(cfg config.KeymapConfig) Keymap {
	km := DefaultKeymap()
	rebind(&km.SkipWord, cfg.SkipWord)
	rebind(&km.SkipLine, cfg.SkipLine)
	rebind(&km.SkipBlock, cfg.SkipBlock)
	rebind(&km.ScrollUp, cfg.ScrollUp)
	rebind(&km.ScrollDown, cfg.ScrollDown)
	rebind(&km.Quit, cfg.Quit)
	return km
}

func rebind(b *key.Binding, name *string) {
	if name == nil || *name == "" {
		return
	}
	b.SetKeys(*name)
}
