package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/deepseek"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/groq"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"
)

const systemPrompt = `You are a translation engine.
Translate the user's text from %s to %s.
Respond with ONLY the translation. No explanations, no quotes, no commentary.
Preserve sentence boundaries and punctuation where the target language allows.`

// keyEnvVars maps a provider name to the environment variables that can hold
// its API key. Providers absent from this map (local inference) need no key.
var keyEnvVars = map[string][]string{
	"openai":    {"OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_API_KEY"},
	"gemini":    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"deepseek":  {"DEEPSEEK_API_KEY"},
	"mistral":   {"MISTRAL_API_KEY"},
	"groq":      {"GROQ_API_KEY"},
}

// LLMTranslator translates text through an any-llm-go backend. One instance
// is bound to a single provider and model for its lifetime.
type LLMTranslator struct {
	backend anyllmlib.Provider
	model   string
}

// NewLLM creates a translator for the named provider. providerName is one of:
// "openai", "anthropic", "gemini", "ollama", "deepseek", "mistral", "groq".
// Hosted providers read their API key from the environment; a missing key is
// reported as [ErrNoAPIKey] so callers can show a setup hint instead of
// failing mid-session.
func NewLLM(providerName, model string, opts ...anyllmlib.Option) (*LLMTranslator, error) {
	if model == "" {
		return nil, fmt.Errorf("translate: model must not be empty")
	}

	name := strings.ToLower(providerName)
	if envs, needsKey := keyEnvVars[name]; needsKey && !anyKeySet(envs) {
		return nil, fmt.Errorf("translate: provider %q: %w (set %s)", name, ErrNoAPIKey, strings.Join(envs, " or "))
	}

	backend, err := createBackend(name, opts...)
	if err != nil {
		return nil, err
	}
	return &LLMTranslator{backend: backend, model: model}, nil
}

func anyKeySet(envs []string) bool {
	for _, env := range envs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

func createBackend(name string, opts ...anyllmlib.Option) (anyllmlib.Provider, error) {
	switch name {
	case "openai":
		return anyllmoai.New(opts...)
	case "anthropic":
		return anthropic.New(opts...)
	case "gemini":
		return gemini.New(opts...)
	case "ollama":
		return ollama.New(opts...)
	case "deepseek":
		return deepseek.New(opts...)
	case "mistral":
		return mistral.New(opts...)
	case "groq":
		return groq.New(opts...)
	default:
		return nil, fmt.Errorf("translate: provider %q: %w (supported: openai, anthropic, gemini, ollama, deepseek, mistral, groq)", name, ErrUnknownProvider)
	}
}

// Translate implements [Translator]. sourceLang and targetLang are full
// language names ("French", "English"); the prompt carries them verbatim.
func (t *LLMTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	params := anyllmlib.CompletionParams{
		Model: t.model,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleSystem, Content: fmt.Sprintf(systemPrompt, sourceLang, targetLang)},
			{Role: anyllmlib.RoleUser, Content: text},
		},
	}

	resp, err := t.backend.Completion(ctx, params)
	if err != nil {
		return "", fmt.Errorf("translate: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translate: empty choices in response")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.ContentString())
	// Some models still wrap short answers in quotes despite the prompt.
	out = strings.Trim(out, "\"")
	return out, nil
}
