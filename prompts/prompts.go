package prompts

import (
	"bytes"
	"context"
	"embed"
	"strings"
	"text/template"

	"github.com/shopmindai/shopmind/llm"
)

//go:embed templates/*
var templatesFS embed.FS

func loadPrompt(templatePath string, data any) (string, error) {
	tmpl, err := template.ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// generateText runs a free-text completion over a rendered system/user pair.
func generateText(ctx context.Context, client llm.LLMClient, systemPrompt, userPrompt string, opts ...llm.LLMOption) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: userPrompt},
	}

	var response strings.Builder
	opts = append([]llm.LLMOption{llm.WithSystemPrompt(systemPrompt)}, opts...)
	err := client.GenerateInference(ctx, messages, func(chunk string) error {
		response.WriteString(chunk)
		return nil
	}, opts...)

	if err != nil {
		return "", err
	}
	return response.String(), nil
}
