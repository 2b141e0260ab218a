package ragagent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/shopmindai/shopmind/llm"
	"github.com/shopmindai/shopmind/prompts"
	"github.com/shopmindai/shopmind/search"
	"github.com/shopmindai/shopmind/store"
	"go.uber.org/zap"
)

const (
	// DefaultTopK is the number of passages fetched per document lookup.
	DefaultTopK = 3

	noDocumentsFound = "No relevant documents found."
	noWebResults     = "No search results returned."
	goodbyeMessage   = "Goodbye! Feel free to come back whenever you have more questions."
	answerFallback   = "I ran into a problem answering that. Please try again."
)

// Retriever fetches the top k passages for a query from the document store.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]store.Passage, error)
}

// WebSearcher runs a web search for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]search.WebResult, error)
}

// Config wires an Agent's collaborators.
type Config struct {
	LLM       llm.LLMClient
	Retriever Retriever
	Web       WebSearcher
	TopK      int
}

// Agent answers questions over ingested documents, falling back to web
// search when the document store comes up short.
type Agent struct {
	llm       llm.LLMClient
	retriever Retriever
	web       WebSearcher
	topK      int
}

func New(cfg Config) *Agent {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Agent{
		llm:       cfg.LLM,
		retriever: cfg.Retriever,
		web:       cfg.Web,
		topK:      cfg.TopK,
	}
}

// Run drives the state machine for a single question and returns the final
// conversation plus the citations actually consulted.
func (a *Agent) Run(ctx context.Context, question string) *Result {
	run := &RunState{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: question}},
	}

	state := StateRoute
	for state != StateDone {
		logger.Info("rag agent step", zap.String("state", state.String()))
		a.step(ctx, state, question, run)
		state = Next(state, run)
	}

	return &Result{
		Messages:     run.Messages,
		RagCitations: run.RagCitations,
		WebCitations: run.WebCitations,
	}
}

func (a *Agent) step(ctx context.Context, state State, question string, run *RunState) {
	switch state {
	case StateRoute:
		a.route(ctx, run)
	case StateRagLookup:
		a.ragLookup(ctx, question, run)
	case StateJudgeSufficiency:
		a.judgeSufficiency(ctx, question, run)
	case StateWebLookup:
		a.webLookup(ctx, question, run)
	case StateAnswer:
		a.answer(ctx, question, run)
	}
}

func (a *Agent) route(ctx context.Context, run *RunState) {
	decision, err := prompts.RouteQuestion(ctx, a.llm, run.Messages)
	if err != nil {
		logger.Error("routing failed, defaulting to document lookup", zap.Error(err))
		run.Route = RouteRag
		return
	}

	switch Route(decision.Route) {
	case RouteEnd:
		run.Route = RouteEnd
		reply := decision.Reply
		if reply == "" {
			reply = goodbyeMessage
		}
		run.Messages = append(run.Messages, llm.Message{Role: llm.RoleAssistant, Content: reply})

	case RouteAnswer:
		run.Route = RouteAnswer
		if decision.Reply != "" {
			run.Answered = true
			run.Messages = append(run.Messages, llm.Message{Role: llm.RoleAssistant, Content: decision.Reply})
		}

	default:
		run.Route = RouteRag
	}
}

func (a *Agent) ragLookup(ctx context.Context, question string, run *RunState) {
	passages, err := a.retriever.Search(ctx, question, a.topK)
	if err != nil {
		logger.Error("document lookup failed", zap.Error(err))
		run.RagFailed = true
		run.RagContext = fmt.Sprintf("document lookup failed: %v", err)
		run.RagCitations = nil
		return
	}

	if len(passages) == 0 {
		run.RagContext = noDocumentsFound
		run.RagCitations = []string{}
		return
	}

	contents := linq.Map(passages, func(p store.Passage) string { return p.Content })
	sources := linq.Map(passages, func(p store.Passage) string { return p.Source })
	sources = linq.Distinct(sources, func(s string) string { return s })

	run.RagContext = strings.Join(contents, "\n\n")
	run.RagCitations = sources
}

func (a *Agent) judgeSufficiency(ctx context.Context, question string, run *RunState) {
	sufficient, err := prompts.JudgeContext(ctx, a.llm, question, run.RagContext)
	if err != nil {
		logger.Error("sufficiency judge failed, falling back to web", zap.Error(err))
		run.Sufficient = false
		return
	}
	run.Sufficient = sufficient
}

func (a *Agent) webLookup(ctx context.Context, question string, run *RunState) {
	results, err := a.web.Search(ctx, question)
	if err != nil {
		logger.Error("web lookup failed", zap.Error(err))
		run.WebFailed = true
		run.WebContext = fmt.Sprintf("web lookup failed: %v", err)
		run.WebCitations = nil
		return
	}

	if len(results) == 0 {
		run.WebContext = noWebResults
		run.WebCitations = []string{}
		return
	}

	blocks := linq.Map(results, func(r search.WebResult) string {
		return fmt.Sprintf("Title: %s\nContent: %s\nURL: %s", r.Title, r.Content, r.URL)
	})
	urls := linq.Map(results, func(r search.WebResult) string { return r.URL })

	run.WebContext = strings.Join(blocks, "\n\n")
	run.WebCitations = urls
}

func (a *Agent) answer(ctx context.Context, question string, run *RunState) {
	reply, err := prompts.ComposeAnswer(ctx, a.llm, prompts.ComposeAnswerData{
		Question:   question,
		RagContext: run.RagContext,
		WebContext: run.WebContext,
		RagFailed:  run.RagFailed,
		WebFailed:  run.WebFailed,
	})
	if err != nil {
		logger.Error("answer composition failed", zap.Error(err))
		reply = answerFallback
	}

	run.Messages = append(run.Messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
}
