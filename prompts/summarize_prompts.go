package prompts

import (
	"context"
	"strings"

	"github.com/shopmindai/shopmind/llm"
)

// SummarizeChunk produces a standalone summary of one document chunk.
func SummarizeChunk(ctx context.Context, client llm.LLMClient, content string) (string, error) {
	systemPrompt, err := loadPrompt("templates/summarize_chunk_system.md", map[string]string{})
	if err != nil {
		return "", err
	}

	out, err := generateText(ctx, client, systemPrompt, content,
		llm.WithTemperature(0.3), llm.WithMaxTokens(1000))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ReduceSummaries distills a set of summaries into one consolidated summary.
func ReduceSummaries(ctx context.Context, client llm.LLMClient, summaries []string) (string, error) {
	systemPrompt, err := loadPrompt("templates/reduce_summaries_system.md", map[string]string{})
	if err != nil {
		return "", err
	}

	userPrompt, err := loadPrompt("templates/reduce_summaries_user.md", map[string]any{
		"Summaries": summaries,
	})
	if err != nil {
		return "", err
	}

	out, err := generateText(ctx, client, systemPrompt, userPrompt,
		llm.WithTemperature(0.3), llm.WithMaxTokens(1500))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// InvoiceExtractionPrompt renders the vision instruction used to pull
// structured data out of scanned or photographed invoices.
func InvoiceExtractionPrompt() (string, error) {
	return loadPrompt("templates/extract_invoice.md", map[string]string{})
}
