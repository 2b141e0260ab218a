package prompts

import (
	"context"
	"strings"

	"github.com/shopmindai/shopmind/llm"
)

type checkRelevanceResponse struct {
	Relevant bool `json:"relevant"`
}

type convertToSQLResponse struct {
	SQLQuery string `json:"sql_query"`
}

type rewriteQuestionResponse struct {
	Question string `json:"question"`
}

type explainResultResponse struct {
	Answer string `json:"answer"`
}

// CheckRelevance asks the model whether a question is answerable from the
// business schema.
func CheckRelevance(ctx context.Context, client llm.LLMClient, schema, question string) (bool, error) {
	systemPrompt, err := loadPrompt("templates/check_relevance_system.md", map[string]string{
		"Schema": schema,
	})
	if err != nil {
		return false, err
	}

	resp, err := llm.GenerateStructured[checkRelevanceResponse](ctx, client, []llm.Message{
		{Role: llm.RoleUser, Content: "Question: " + question},
	}, llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.0), llm.WithMaxTokens(200))
	if err != nil {
		return false, err
	}
	return resp.Relevant, nil
}

// ConvertToSQL turns a natural-language question into a single SELECT
// statement. Previous errors are surfaced so the model can avoid repeating
// them.
func ConvertToSQL(ctx context.Context, client llm.LLMClient, schema, question, errorContext, timestamp string) (string, error) {
	systemPrompt, err := loadPrompt("templates/convert_to_sql_system.md", map[string]string{
		"Schema":       schema,
		"ErrorContext": errorContext,
		"Timestamp":    timestamp,
	})
	if err != nil {
		return "", err
	}

	resp, err := llm.GenerateStructured[convertToSQLResponse](ctx, client, []llm.Message{
		{Role: llm.RoleUser, Content: "Question: " + question},
	}, llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.0), llm.WithMaxTokens(1000))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.SQLQuery), nil
}

// RewriteQuestion reformulates a question so that the next SQL generation
// attempt avoids the observed errors while preserving intent.
func RewriteQuestion(ctx context.Context, client llm.LLMClient, schema, original, current, sqlQuery string, errorLog []string) (string, error) {
	systemPrompt, err := loadPrompt("templates/rewrite_question_system.md", map[string]any{
		"Schema":   schema,
		"SQLQuery": sqlQuery,
		"Errors":   errorLog,
	})
	if err != nil {
		return "", err
	}

	userPrompt, err := loadPrompt("templates/rewrite_question_user.md", map[string]string{
		"Original": original,
		"Current":  current,
	})
	if err != nil {
		return "", err
	}

	resp, err := llm.GenerateStructured[rewriteQuestionResponse](ctx, client, []llm.Message{
		{Role: llm.RoleUser, Content: userPrompt},
	}, llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.3), llm.WithMaxTokens(500))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Question), nil
}

// ExplainResult produces a plain-language explanation of a query result for
// a shop owner.
func ExplainResult(ctx context.Context, client llm.LLMClient, question, queryResult string) (string, error) {
	systemPrompt, err := loadPrompt("templates/explain_result_system.md", map[string]string{})
	if err != nil {
		return "", err
	}

	userPrompt, err := loadPrompt("templates/explain_result_user.md", map[string]string{
		"Question": question,
		"Result":   queryResult,
	})
	if err != nil {
		return "", err
	}

	resp, err := llm.GenerateStructured[explainResultResponse](ctx, client, []llm.Message{
		{Role: llm.RoleUser, Content: userPrompt},
	}, llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.5), llm.WithMaxTokens(1000))
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// FunnyResponse generates a light apology that redirects the user toward
// questions the schema can actually answer.
func FunnyResponse(ctx context.Context, client llm.LLMClient, schema, question string) (string, error) {
	systemPrompt, err := loadPrompt("templates/funny_response_system.md", map[string]string{
		"Schema": schema,
	})
	if err != nil {
		return "", err
	}

	return generateText(ctx, client, systemPrompt, "Question: "+question,
		llm.WithTemperature(0.8), llm.WithMaxTokens(500))
}
