package llm

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
)

// OllamaClient runs inference against a local Ollama daemon. Selected via
// the llm_provider config when the assistant should run fully local.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(model string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("error creating ollama client: %w", err)
	}

	return &OllamaClient{client: client, model: model}, nil
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.7,
		maxTokens:   4096,
	}

	for _, opt := range opts {
		opt(&settings)
	}

	chat := make([]api.Message, 0, len(messages)+1)
	if settings.system != "" {
		chat = append(chat, api.Message{Role: RoleSystem, Content: settings.system})
	}
	for _, m := range messages {
		chat = append(chat, api.Message{Role: m.Role, Content: m.Content})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    settings.model,
		Messages: chat,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": settings.temperature,
			"num_predict": settings.maxTokens,
		},
	}

	return c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		return callback(resp.Message.Content)
	})
}
