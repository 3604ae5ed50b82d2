package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/ai1900/internal/backend"
)

// DialogueModel answers English chat messages with a chat-completion model
type DialogueModel struct {
	client *openai.Client
	config *backend.Config
	model  string
}

// LoadDialogue returns a loader for the OpenAI dialogue model
func LoadDialogue(cfg *backend.Config) backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		client, model, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DialogueModel{client: client, config: cfg, model: model}, nil
	}
}

// Generate implements backend.DialogueModel
func (m *DialogueModel) Generate(ctx context.Context, text string) (string, error) {
	persona := m.config.SystemPrompt
	if persona == "" {
		persona = backend.DefaultPersona
	}
	return complete(ctx, m.client, m.config, m.model, persona, text)
}
