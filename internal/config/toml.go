// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice    PracticeConfig    `toml:"practice"`
	Translation TranslationConfig `toml:"translation"`
	Keymap      KeymapConfig      `toml:"keymap"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Lang           *string `toml:"lang"`
	Timed          *bool   `toml:"timed"`
	TimerMinutes   *int    `toml:"timer-minutes"`
	KeyboardLayout *string `toml:"keyboard-layout"`
	BooksDir       *string `toml:"books-dir"`
}

// TranslationConfig maps translation backend settings.
type TranslationConfig struct {
	Enabled    *bool   `toml:"enabled"`
	TargetLang *string `toml:"target-lang"`
	Provider   *string `toml:"provider"`
	Model      *string `toml:"model"`
}

// KeymapConfig lets users rebind the session keys. Values are Bubble Tea
// key names ("tab", "ctrl+n", "pgup").
type KeymapConfig struct {
	SkipWord   *string `toml:"skip-word"`
	SkipLine   *string `toml:"skip-line"`
	SkipBlock  *string `toml:"skip-block"`
	ScrollUp   *string `toml:"scroll-up"`
	ScrollDown *string `toml:"scroll-down"`
	Quit       *string `toml:"quit"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
