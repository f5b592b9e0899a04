// Package translate provides the live translation layer for practice
// sessions: a capability interface over pluggable backends, an incremental
// sentence-caching translator, a sliding-window circuit breaker, and a
// fuzzy-matching word cache.
package translate

import (
	"context"
	"errors"
	"strings"
)

// Translator is the capability consumed by the typing engine. Implementations
// may fail transiently; failures must never crash a session.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Factory lazily constructs a Translator. Construction happens on the first
// real keystroke so that session start never blocks on network or model
// setup.
type Factory func(ctx context.Context) (Translator, error)

// Sentinel construction errors, used to derive a precise TranslationStatus.
var (
	ErrNoAPIKey        = errors.New("translation API key is not configured")
	ErrUnknownProvider = errors.New("unknown translation provider")
	ErrUnknownLanguage = errors.New("unsupported language pair")
)

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, sourceLang, targetLang string) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return f(ctx, text, sourceLang, targetLang)
}

var rateLimitMarkers = []string{"rate", "limit", "quota", "429", "too many"}

var networkMarkers = []string{"connection", "network", "timeout"}

// IsRateLimit reports whether err looks like a rate-limit or quota failure.
// Backends do not share an error taxonomy, so detection is by substring.
func IsRateLimit(err error) bool {
	return matchesMarker(err, rateLimitMarkers)
}

// IsNetwork reports whether err looks like a transport-level failure.
func IsNetwork(err error) bool {
	return matchesMarker(err, networkMarkers)
}

func matchesMarker(err error, markers []string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
