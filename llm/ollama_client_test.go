package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
)

func newFakeOllama(t *testing.T, handler http.HandlerFunc) *OllamaClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("OLLAMA_HOST", srv.URL)

	client, err := NewOllamaClient("test-model")
	assert.NoError(t, err)
	return client
}

func TestOllamaGenerateInference(t *testing.T) {
	var got api.ChatRequest
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(api.ChatResponse{
			Message: api.Message{Role: RoleAssistant, Content: "hello from ollama"},
			Done:    true,
		})
	})

	var response strings.Builder
	err := client.GenerateInference(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		WithSystemPrompt("be brief"), WithTemperature(0.2), WithMaxTokens(100))

	assert.NoError(t, err)
	assert.Equal(t, "hello from ollama", response.String())

	assert.Equal(t, "test-model", got.Model)
	assert.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)

	// system prompt is prepended as the first chat message
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "hi", got.Messages[1].Content)

	assert.Equal(t, 0.2, got.Options["temperature"])
	assert.Equal(t, float64(100), got.Options["num_predict"])
}

func TestOllamaGenerateInferenceUsesOptionModel(t *testing.T) {
	var got api.ChatRequest
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(api.ChatResponse{Done: true})
	})

	err := client.GenerateInference(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}},
		func(chunk string) error { return nil },
		WithModel("other-model"))

	assert.NoError(t, err)
	assert.Equal(t, "other-model", got.Model)
	assert.Equal(t, "test-model", client.GetModel())
}
