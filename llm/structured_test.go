package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockLLMClient struct {
	responses []string
	calls     int
	err       error
	model     string
}

func (m *mockLLMClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	if m.err != nil {
		return m.err
	}
	resp := ""
	if m.calls < len(m.responses) {
		resp = m.responses[m.calls]
	}
	m.calls++
	return callback(resp)
}

func (m *mockLLMClient) GetModel() string { return m.model }

type relevanceReply struct {
	Relevant bool `json:"relevant"`
}

func TestGenerateStructuredParsesJSON(t *testing.T) {
	client := &mockLLMClient{responses: []string{`Sure, here you go:
{"relevant": true}
Let me know if you need anything else.`}}

	out, err := GenerateStructured[relevanceReply](context.Background(), client, []Message{{Role: RoleUser, Content: "q"}})
	assert.NoError(t, err)
	assert.True(t, out.Relevant)
}

func TestGenerateStructuredFencedJSON(t *testing.T) {
	client := &mockLLMClient{responses: []string{"```json\n{\"relevant\": false}\n```"}}

	out, err := GenerateStructured[relevanceReply](context.Background(), client, nil)
	assert.NoError(t, err)
	assert.False(t, out.Relevant)
}

func TestGenerateStructuredNoJSON(t *testing.T) {
	client := &mockLLMClient{responses: []string{"I cannot answer that."}}

	_, err := GenerateStructured[relevanceReply](context.Background(), client, nil)
	assert.Error(t, err)
}

func TestGenerateStructuredProviderError(t *testing.T) {
	client := &mockLLMClient{err: errors.New("provider down")}

	_, err := GenerateStructured[relevanceReply](context.Background(), client, nil)
	assert.Error(t, err)
}

func TestUnmarshalResponseMalformedJSON(t *testing.T) {
	var out relevanceReply
	err := UnmarshalResponse(`{"relevant": `, &out)
	assert.Error(t, err)
}

func TestOptionsApply(t *testing.T) {
	s := LLMSettings{}
	for _, opt := range []LLMOption{
		WithModel("claude-sonnet-4-20250514"),
		WithTemperature(0.3),
		WithMaxTokens(1000),
		WithSystemPrompt("be brief"),
	} {
		opt(&s)
	}

	assert.Equal(t, "claude-sonnet-4-20250514", s.model)
	assert.Equal(t, 0.3, s.temperature)
	assert.Equal(t, 1000, s.maxTokens)
	assert.Equal(t, "be brief", s.system)
}
