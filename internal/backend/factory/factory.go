// Package factory selects a model backend by provider name.
package factory

import (
	"fmt"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/backend/gemini"
	"codeberg.org/snonux/ai1900/internal/backend/ollama"
	"codeberg.org/snonux/ai1900/internal/backend/openai"
	"codeberg.org/snonux/ai1900/internal/backend/stub"
)

// Providers lists the supported provider names
var Providers = []string{"stub", "openai", "gemini", "ollama"}

// DialogueLoader returns the dialogue model loader for cfg.Provider
func DialogueLoader(cfg *backend.Config) (backend.DialogueLoader, error) {
	switch cfg.Provider {
	case "stub":
		return stub.LoadDialogue(cfg), nil
	case "openai":
		return openai.LoadDialogue(cfg), nil
	case "gemini":
		return gemini.LoadDialogue(cfg), nil
	case "ollama":
		return ollama.LoadDialogue(cfg), nil
	default:
		return nil, fmt.Errorf("unknown dialogue provider: %s", cfg.Provider)
	}
}

// TranslationLoader returns the translation model loader for cfg.Provider
func TranslationLoader(cfg *backend.Config) (backend.TranslationLoader, error) {
	switch cfg.Provider {
	case "stub":
		return stub.LoadTranslation(cfg), nil
	case "openai":
		return openai.LoadTranslation(cfg), nil
	case "gemini":
		return gemini.LoadTranslation(cfg), nil
	case "ollama":
		return ollama.LoadTranslation(cfg), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
}
