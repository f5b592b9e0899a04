// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings resolved from flags and the config file.
type Config struct {
	Lang           string
	TargetLang     string
	Timed          bool
	TimerMinutes   int
	KeyboardLayout string
	Translate      bool
	Provider       string
	Model          string
	BooksDir       string
	BookPath       string
}

// Book describes one validated library entry.
type Book struct {
	Title     string
	Path      string
	Language  string
	WordCount int
	ModTime   time.Time
}

// SessionResult captures the final statistics of a practice session.
type SessionResult struct {
	Title          string
	Lang           string
	WPM            int
	Accuracy       float64
	WordsTyped     int
	WordsSkipped   int
	IncorrectWords int
	TotalWords     int
	Duration       time.Duration
	TimedOut       bool
}

// TranslationStatus enumerates the lifecycle states of the translation layer.
// Transitions only move forward; an errored translator is never revived within
// a session.
type TranslationStatus int

const (
	TranslationPending TranslationStatus = iota
	TranslationAvailable
	TranslationDisabled
	TranslationMissingProvider
	TranslationMissingLanguage
	TranslationMissingKey
	TranslationError
)

// String returns the human-readable name of the status.
func (s TranslationStatus) String() string {
	switch s {
	case TranslationPending:
		return "pending"
	case TranslationAvailable:
		return "available"
	case TranslationDisabled:
		return "disabled"
	case TranslationMissingProvider:
		return "missing-provider"
	case TranslationMissingLanguage:
		return "missing-language"
	case TranslationMissingKey:
		return "missing-key"
	case TranslationError:
		return "error"
	default:
		return "unknown"
	}
}
