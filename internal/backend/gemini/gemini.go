// Package gemini implements the dialogue and translation models on top of
// the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

type model struct {
	client *genai.Client
	config *backend.Config
	name   string
}

func load(ctx context.Context, cfg *backend.Config) (*model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = DefaultModel
	}

	if cfg.VerifyOnLoad {
		if _, err := client.Models.Get(ctx, name, nil); err != nil {
			return nil, fmt.Errorf("model %s not available: %w", name, err)
		}
	}

	return &model{client: client, config: cfg, name: name}, nil
}

func (m *model) generate(ctx context.Context, system, text string) (string, error) {
	ctx, cancel := m.config.WithTimeout(ctx)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(m.config.Temperature)),
	}
	if m.config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(m.config.MaxTokens)
	}
	if system != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.name, genai.Text(text), genConfig)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return out, nil
}

// DialogueModel answers English chat messages with Gemini
type DialogueModel struct {
	m *model
}

// LoadDialogue returns a loader for the Gemini dialogue model
func LoadDialogue(cfg *backend.Config) backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		m, err := load(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DialogueModel{m: m}, nil
	}
}

// Generate implements backend.DialogueModel
func (d *DialogueModel) Generate(ctx context.Context, text string) (string, error) {
	persona := d.m.config.SystemPrompt
	if persona == "" {
		persona = backend.DefaultPersona
	}
	return d.m.generate(ctx, persona, text)
}

// Translator translates between English and Persian with Gemini
type Translator struct {
	m *model
}

// LoadTranslation returns a loader for the Gemini translation model
func LoadTranslation(cfg *backend.Config) backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		m, err := load(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Translator{m: m}, nil
	}
}

// Translate implements backend.TranslationModel
func (t *Translator) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	return t.m.generate(ctx, backend.TranslationPrompt(source, target), text)
}
