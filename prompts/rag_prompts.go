package prompts

import (
	"context"
	"strings"

	"github.com/shopmindai/shopmind/llm"
)

// RouteDecision is the router's verdict over the running conversation.
// Reply is filled only when the model can answer without any tool use.
type RouteDecision struct {
	Route string `json:"route"` // "rag", "answer" or "end"
	Reply string `json:"reply,omitempty"`
}

type judgeContextResponse struct {
	Sufficient bool `json:"sufficient"`
}

// RouteQuestion decides whether the conversation needs document retrieval,
// can be answered directly, or should end.
func RouteQuestion(ctx context.Context, client llm.LLMClient, messages []llm.Message) (*RouteDecision, error) {
	systemPrompt, err := loadPrompt("templates/route_question_system.md", map[string]string{})
	if err != nil {
		return nil, err
	}

	decision, err := llm.GenerateStructured[RouteDecision](ctx, client, messages,
		llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.0), llm.WithMaxTokens(500))
	if err != nil {
		return nil, err
	}

	decision.Route = strings.ToLower(strings.TrimSpace(decision.Route))
	return decision, nil
}

// JudgeContext decides whether retrieved document context suffices to answer
// the question, or a web search is needed.
func JudgeContext(ctx context.Context, client llm.LLMClient, question, ragContext string) (bool, error) {
	systemPrompt, err := loadPrompt("templates/judge_context_system.md", map[string]string{})
	if err != nil {
		return false, err
	}

	userPrompt, err := loadPrompt("templates/judge_context_user.md", map[string]string{
		"Question": question,
		"Context":  ragContext,
	})
	if err != nil {
		return false, err
	}

	resp, err := llm.GenerateStructured[judgeContextResponse](ctx, client, []llm.Message{
		{Role: llm.RoleUser, Content: userPrompt},
	}, llm.WithSystemPrompt(systemPrompt), llm.WithTemperature(0.0), llm.WithMaxTokens(200))
	if err != nil {
		return false, err
	}
	return resp.Sufficient, nil
}

// ComposeAnswerData carries whichever contexts were accumulated for the
// final answer. Failed lookups are flagged so the model does not quote a
// failure message as fact.
type ComposeAnswerData struct {
	Question   string
	RagContext string
	WebContext string
	RagFailed  bool
	WebFailed  bool
}

// ComposeAnswer writes the final grounded answer from accumulated contexts.
func ComposeAnswer(ctx context.Context, client llm.LLMClient, data ComposeAnswerData) (string, error) {
	systemPrompt, err := loadPrompt("templates/compose_answer_system.md", data)
	if err != nil {
		return "", err
	}

	userPrompt, err := loadPrompt("templates/compose_answer_user.md", data)
	if err != nil {
		return "", err
	}

	return generateText(ctx, client, systemPrompt, userPrompt,
		llm.WithTemperature(0.5), llm.WithMaxTokens(2000))
}
