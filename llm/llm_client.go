package llm

import (
	"context"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}

// LLMClient is the gateway to a language model provider. Implementations
// return an error only on transport/provider failure; callers decide how to
// recover.
type LLMClient interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...LLMOption,
	) error

	GetModel() string
}

type LLMSettings struct {
	model       string  // model name
	temperature float64 // randomness (0.0 to 1.0)
	maxTokens   int     // maximum tokens to generate
	system      string  // system prompt
}

// Accessors for fakes that need to inspect the applied options.
func (s *LLMSettings) Model() string        { return s.model }
func (s *LLMSettings) Temperature() float64 { return s.temperature }
func (s *LLMSettings) MaxTokens() int       { return s.maxTokens }
func (s *LLMSettings) System() string       { return s.system }

type LLMOption func(*LLMSettings)

func WithModel(model string) LLMOption {
	return func(s *LLMSettings) { s.model = model }
}

func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) LLMOption {
	return func(s *LLMSettings) { s.system = prompt }
}
