package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
)

type AnthropicClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewAnthropicClient(model string) *AnthropicClient {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		// Providers are designed for dependency injection.
		// If the API key is not set, we log a fatal error.
		logger.Fatal("ANTHROPIC_API_KEY environment variable is not set")
		return nil
	}

	return &AnthropicClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://api.anthropic.com/v1/messages",
		model:      model,
	}
}

func (c *AnthropicClient) GetModel() string {
	return c.model
}

func (c *AnthropicClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.7,
		maxTokens:   4096,
	}

	for _, opt := range opts {
		opt(&settings)
	}

	// Anthropic takes the system prompt as a top-level field, not a message.
	var chat []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			settings.system = m.Content
			continue
		}
		chat = append(chat, m)
	}

	request := anthropicRequest{
		Model:       settings.model,
		MaxTokens:   settings.maxTokens,
		Temperature: settings.temperature,
		System:      settings.system,
		Messages:    chat,
	}

	text, err := c.send(ctx, request)
	if err != nil {
		return err
	}
	return callback(text)
}

// GenerateVision sends a single image plus an instruction prompt and returns
// the model's text output. Used for extracting text from scanned invoices.
func (c *AnthropicClient) GenerateVision(ctx context.Context, prompt, imageB64, mediaType string, opts ...LLMOption) (string, error) {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.2,
		maxTokens:   4096,
	}

	for _, opt := range opts {
		opt(&settings)
	}

	request := anthropicVisionRequest{
		Model:       settings.model,
		MaxTokens:   settings.maxTokens,
		Temperature: settings.temperature,
		System:      settings.system,
		Messages: []anthropicVisionMessage{
			{
				Role: RoleUser,
				Content: []anthropicContentBlock{
					{
						Type: "image",
						Source: &anthropicImageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      imageB64,
						},
					},
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	return c.send(ctx, request)
}

func (c *AnthropicClient) send(ctx context.Context, request any) (string, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature float64   `json:"temperature"`
}

type anthropicVisionRequest struct {
	Model       string                   `json:"model"`
	MaxTokens   int                      `json:"max_tokens"`
	Messages    []anthropicVisionMessage `json:"messages"`
	System      string                   `json:"system,omitempty"`
	Temperature float64                  `json:"temperature"`
}

type anthropicVisionMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

type anthropicContentBlock struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// anthropicResponse represents the response from Anthropic API
type anthropicResponse struct {
	Content []content `json:"content"`
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Role    string    `json:"role"`
	Type    string    `json:"type"`
}

// content represents the content in the response
type content struct {
	Text string `json:"text"`
	Type string `json:"type"`
}
