package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/ai1900/internal/backend"
)

// DefaultModel is used when no model is configured
const DefaultModel = openai.GPT4oMini

// minTemperature replaces a configured temperature of 0. The client omits a
// zero temperature from the request and the server then samples at 1.0.
const minTemperature = 0.01

// newClient builds the API client and, when requested, checks that the
// configured model is available to the key
func newClient(ctx context.Context, cfg *backend.Config) (*openai.Client, string, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, "", fmt.Errorf("OpenAI API key not found")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	client := openai.NewClientWithConfig(clientConfig)

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	if cfg.VerifyOnLoad {
		if _, err := client.GetModel(ctx, model); err != nil {
			return nil, "", fmt.Errorf("model %s not available: %w", model, err)
		}
	}

	return client, model, nil
}

// complete runs a single chat completion and returns the trimmed content
func complete(ctx context.Context, client *openai.Client, cfg *backend.Config, model, system, user string) (string, error) {
	ctx, cancel := cfg.WithTimeout(ctx)
	defer cancel()

	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	temperature := float32(cfg.Temperature)
	if temperature <= 0 {
		temperature = minTemperature
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: temperature,
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
