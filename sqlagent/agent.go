package sqlagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/shopmindai/shopmind/llm"
	"github.com/shopmindai/shopmind/prompts"
	"github.com/shopmindai/shopmind/store"
)

const (
	// DefaultMaxAttempts bounds the generate->execute->repair loop.
	DefaultMaxAttempts = 3

	// explainLimit skips the insight call for oversized result digests.
	explainLimit = 1000
)

const maxAttemptsMessage = `Maximum attempts reached (3)

Suggestions:
1. Simplify your question
2. Be more specific
3. Ask about customers, products, vendors, or sales`

const funnyFallback = "I'd make a joke, but I'm all queried out! Try asking about our products or sales."

// Config holds the injected collaborators of the SQL agent.
type Config struct {
	LLM         llm.LLMClient
	Runner      store.SQLRunner
	Schema      string
	MaxAttempts int              // 0 means DefaultMaxAttempts
	Now         func() time.Time // nil means time.Now
}

// Agent answers business questions by generating, executing and repairing
// SELECT queries against the shop database. Every external failure is folded
// back into the run record; Run always reaches a terminal state.
type Agent struct {
	llm         llm.LLMClient
	runner      store.SQLRunner
	schema      string
	maxAttempts int
	now         func() time.Time
}

func New(cfg Config) *Agent {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Agent{
		llm:         cfg.LLM,
		runner:      cfg.Runner,
		schema:      cfg.Schema,
		maxAttempts: cfg.MaxAttempts,
		now:         cfg.Now,
	}
}

// Run creates a fresh run record for the question and drives the state
// machine to a terminal state.
func (a *Agent) Run(ctx context.Context, question string) *Result {
	run := &RunState{OriginalQuestion: question}

	state := StateCheckRelevance
	for state != StateDone {
		a.step(ctx, state, run)
		state = Next(state, run, a.maxAttempts)
	}

	return &Result{
		SQLQuery:    run.SQLQuery,
		QueryResult: run.QueryResult,
		Errors:      run.ErrorLog,
		Relevant:    run.Relevant,
	}
}

func (a *Agent) step(ctx context.Context, state State, run *RunState) {
	logger.Info("sql agent step",
		zap.String("state", state.String()),
		zap.Int("attempts", run.Attempts))

	switch state {
	case StateCheckRelevance:
		a.checkRelevance(ctx, run)
	case StateConvertToSQL:
		a.convertToSQL(ctx, run)
	case StateExecuteSQL:
		a.executeSQL(ctx, run)
	case StateGenerateAnswer:
		a.generateAnswer(ctx, run)
	case StateRegenerateQuery:
		a.regenerateQuery(ctx, run)
	case StateFunnyResponse:
		a.funnyResponse(ctx, run)
	case StateEndMaxAttempts:
		run.QueryResult = maxAttemptsMessage
	}
}

// checkRelevance gates the run. A gateway failure diverts to the humor path
// rather than generating SQL against garbage input.
func (a *Agent) checkRelevance(ctx context.Context, run *RunState) {
	relevant, err := prompts.CheckRelevance(ctx, a.llm, a.schema, run.OriginalQuestion)
	if err != nil {
		run.Relevant = false
		run.QueryResult = fmt.Sprintf("Error checking relevance: %v", err)
		logger.Error("relevance check failed", zap.Error(err))
		return
	}

	run.Relevant = relevant
	run.CurrentQuestion = run.OriginalQuestion
	run.ErrorLog = nil
}

func (a *Agent) convertToSQL(ctx context.Context, run *RunState) {
	errorContext := "None"
	if len(run.ErrorLog) > 0 {
		errorContext = strings.Join(run.ErrorLog, "; ")
	}

	query, err := prompts.ConvertToSQL(ctx, a.llm, a.schema, run.CurrentQuestion,
		errorContext, a.now().Format(time.RFC3339))
	if err != nil {
		// Carry the failure into the execute step; it fails the cycle there
		// and consumes one attempt.
		run.ErrorLog = append(run.ErrorLog, fmt.Sprintf("SQL generation failed: %v", err))
		run.SQLQuery = ""
		run.QueryResult = fmt.Sprintf("Failed to generate SQL: %v", err)
		logger.Error("sql generation failed", zap.Error(err))
		return
	}

	run.SQLQuery = query
}

// executeSQL is the single place that consumes the retry budget: any failed
// generate->execute cycle increments Attempts exactly once here.
func (a *Agent) executeSQL(ctx context.Context, run *RunState) {
	query := strings.TrimSpace(run.SQLQuery)

	if query == "" {
		run.ErrorLog = append(run.ErrorLog, "no SQL query to execute")
		run.Attempts++
		run.QueryResult = "No SQL query to execute"
		return
	}

	if !strings.HasPrefix(strings.ToLower(query), "select") {
		// Policy violation: the query never reaches the database.
		run.ErrorLog = append(run.ErrorLog, fmt.Sprintf("policy violation: only SELECT queries are allowed, got: %s", head(query)))
		run.Attempts++
		run.QueryResult = "Only SELECT queries are allowed"
		logger.Error("rejected non-SELECT query", zap.String("query", head(query)))
		return
	}

	rows, err := a.runner.Run(ctx, query)
	if err != nil {
		run.ErrorLog = append(run.ErrorLog, err.Error())
		run.Attempts++
		run.QueryResult = fmt.Sprintf("SQL error: %v", err)
		logger.Error("sql execution failed", zap.Error(err))
		return
	}

	run.QueryResult = store.FormatRows(rows)
	run.ErrorLog = nil
}

func (a *Agent) regenerateQuery(ctx context.Context, run *RunState) {
	rewritten, err := prompts.RewriteQuestion(ctx, a.llm, a.schema,
		run.OriginalQuestion, run.CurrentQuestion, run.SQLQuery, run.ErrorLog)
	if err != nil {
		// No attempt increment here: the next execute cycle consumes the
		// budget, so a failing rewriter still cannot loop forever.
		run.ErrorLog = append(run.ErrorLog, fmt.Sprintf("question rewrite failed: %v", err))
		logger.Error("question rewrite failed", zap.Error(err))
		return
	}

	run.CurrentQuestion = rewritten
	run.SQLQuery = ""
}

func (a *Agent) generateAnswer(ctx context.Context, run *RunState) {
	if run.QueryResult == "" {
		run.QueryResult = "No results to explain"
		return
	}

	if len(run.QueryResult) > explainLimit {
		// Large digests are returned as-is instead of overloading the model.
		return
	}

	answer, err := prompts.ExplainResult(ctx, a.llm, run.CurrentQuestion, run.QueryResult)
	if err != nil {
		run.QueryResult += fmt.Sprintf("\n(could not generate insights: %v)", err)
		logger.Error("result explanation failed", zap.Error(err))
		return
	}

	run.QueryResult = fmt.Sprintf("Results:\n%s\n\nInsights:\n%s", run.QueryResult, answer)
}

func (a *Agent) funnyResponse(ctx context.Context, run *RunState) {
	reply, err := prompts.FunnyResponse(ctx, a.llm, a.schema, run.OriginalQuestion)
	if err != nil {
		run.QueryResult = funnyFallback
		logger.Error("funny response failed", zap.Error(err))
		return
	}
	run.QueryResult = reply
}

func head(query string) string {
	if len(query) > 80 {
		return query[:80] + "..."
	}
	return query
}
