// Package ollama implements the dialogue and translation models against a
// local Ollama server (/api/chat). Loading checks that the model is pulled.
package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

// DefaultBaseURL is the address of a local Ollama server
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is used when no model is configured
const DefaultModel = "llama3.2"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client talks to one model on an Ollama server
type Client struct {
	baseURL string
	model   string
	config  *backend.Config
	http    *resty.Client
}

func load(ctx context.Context, cfg *backend.Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		config:  cfg,
		http:    resty.New(),
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if m == model || strings.TrimSuffix(m, ":latest") == model {
			return c, nil
		}
	}
	return nil, fmt.Errorf("ollama model %s is not pulled (available: %s)", model, strings.Join(models, ", "))
}

// ListModels returns the names of the models pulled on the server
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var resp tagsResponse
	r, err := c.http.R().SetContext(ctx).SetResult(&resp).Get(c.baseURL + "/api/tags")
	if err != nil {
		return nil, fmt.Errorf("ollama list models: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("ollama list models: %s; body: %s", r.Status(), r.String())
	}

	out := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		out = append(out, m.Name)
	}
	return out, nil
}

func (c *Client) chat(ctx context.Context, system, text string) (string, error) {
	ctx, cancel := c.config.WithTimeout(ctx)
	defer cancel()

	body := chatRequest{
		Model:  c.model,
		Stream: false,
		Options: map[string]any{
			"temperature": c.config.Temperature,
		},
	}
	if c.config.MaxTokens > 0 {
		body.Options["num_predict"] = c.config.MaxTokens
	}
	if system != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: system})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: text})

	var resp chatResponse
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(c.baseURL + "/api/chat")
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("ollama chat: %s; body: %s", r.Status(), r.String())
	}

	content := strings.TrimSpace(resp.Message.Content)
	if content == "" {
		return "", fmt.Errorf("ollama chat: empty response")
	}
	return content, nil
}

// DialogueModel answers English chat messages with an Ollama model
type DialogueModel struct {
	c *Client
}

// LoadDialogue returns a loader for the Ollama dialogue model
func LoadDialogue(cfg *backend.Config) backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		c, err := load(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DialogueModel{c: c}, nil
	}
}

// Generate implements backend.DialogueModel
func (d *DialogueModel) Generate(ctx context.Context, text string) (string, error) {
	persona := d.c.config.SystemPrompt
	if persona == "" {
		persona = backend.DefaultPersona
	}
	return d.c.chat(ctx, persona, text)
}

// Translator translates between English and Persian with an Ollama model
type Translator struct {
	c *Client
}

// LoadTranslation returns a loader for the Ollama translation model
func LoadTranslation(cfg *backend.Config) backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		c, err := load(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Translator{c: c}, nil
	}
}

// Translate implements backend.TranslationModel
func (t *Translator) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	return t.c.chat(ctx, backend.TranslationPrompt(source, target), text)
}
