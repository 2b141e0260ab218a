package llm

import (
	"context"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	EmbeddingModel      = "nomic-embed-text"
	EmbeddingDimensions = 768 // Dimension of the embedding vector
)

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OllamaEmbedder embeds text with a local Ollama embedding model.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

func NewOllamaEmbedder(client *api.Client, model string) *OllamaEmbedder {
	if model == "" {
		model = EmbeddingModel
	}
	return &OllamaEmbedder{client: client, model: model}
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &api.EmbeddingRequest{
		Model:     e.model,
		Prompt:    text,
		KeepAlive: &api.Duration{Duration: 60 * time.Minute}, // keep connection alive for reuse
	}
	resp, err := e.client.Embeddings(ctx, req) // blocking, non-streaming
	if err != nil {
		return nil, err
	}

	emb64 := resp.Embedding // []float64
	emb32 := make([]float32, len(emb64))
	for i, v := range emb64 {
		emb32[i] = float32(v)
	}
	return emb32, nil
}
