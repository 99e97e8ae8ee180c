// Package openai implements the script provider on the OpenAI chat API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ankitpatil/director/internal/config"
	"github.com/ankitpatil/director/pkg/models"
)

// Provider implements models.ScriptProvider using the official OpenAI SDK.
type Provider struct {
	cfg    config.OpenAIConfig
	client openai.Client
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{
		cfg:    cfg,
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Draft(ctx context.Context, prompt string) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(p.cfg.Model),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Compile-time check that Provider implements ScriptProvider.
var _ models.ScriptProvider = (*Provider)(nil)
