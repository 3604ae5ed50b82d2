package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

// Translator translates between English and Persian with a chat-completion model
type Translator struct {
	client *openai.Client
	config *backend.Config
	model  string
}

// LoadTranslation returns a loader for the OpenAI translation model
func LoadTranslation(cfg *backend.Config) backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		client, model, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Translator{client: client, config: cfg, model: model}, nil
	}
}

// Translate implements backend.TranslationModel
func (t *Translator) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	return complete(ctx, t.client, t.config, t.model, backend.TranslationPrompt(source, target), text)
}
