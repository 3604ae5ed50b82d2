// Package backend defines the boundary to the model-serving capabilities.
// Loaders play the part of loading model weights; the returned models run
// inference. Concrete backends live in the sub-packages.
package backend

import (
	"context"
	"time"

	"codeberg.org/snonux/ai1900/internal/lang"
)

// DialogueModel generates an English reply to English text
type DialogueModel interface {
	Generate(ctx context.Context, text string) (string, error)
}

// TranslationModel translates text between two languages
type TranslationModel interface {
	Translate(ctx context.Context, text string, source, target lang.Tag) (string, error)
}

// DialogueLoader loads a dialogue model
type DialogueLoader func(ctx context.Context) (DialogueModel, error)

// TranslationLoader loads a translation model
type TranslationLoader func(ctx context.Context) (TranslationModel, error)

// DefaultPersona is the system prompt given to chat-completion dialogue models
const DefaultPersona = "You are a friendly, concise conversation partner. Always reply in English with one or two short sentences."

// Config holds the settings of one model backend
type Config struct {
	Provider     string        // "stub", "openai", "gemini" or "ollama"
	Model        string        // model name at the provider
	APIKey       string        // provider API key (openai, gemini)
	BaseURL      string        // override endpoint (OpenAI-compatible servers, ollama)
	MaxTokens    int           // maximum generated tokens
	Temperature  float64       // sampling temperature
	SystemPrompt string        // dialogue persona
	VerifyOnLoad bool          // ask the provider whether the model exists while loading
	Timeout      time.Duration // per-call timeout, 0 means none
}

// WithTimeout derives a context bounded by the configured timeout
func (c *Config) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

// TranslationPrompt builds the instruction sent to chat-completion models
// used as translators
func TranslationPrompt(source, target lang.Tag) string {
	return "Translate the following " + source.Name() + " text to " + target.Name() +
		". Respond with only the " + target.Name() + " translation, nothing else."
}
