package summarize

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/pkoukk/tiktoken-go"
	"github.com/shopmindai/shopmind/llm"
	"github.com/shopmindai/shopmind/prompts"
	"go.uber.org/zap"
)

// DefaultTokenBudget caps the combined size of intermediate summaries
// before they are collapsed another level.
const DefaultTokenBudget = 1000

const emptyContentSummary = "No content to summarize."

type Config struct {
	LLM         llm.LLMClient
	TokenBudget int
}

// MapReduce summarizes a document in two phases: every chunk is summarized
// concurrently, then the summaries are folded together until they fit the
// token budget and a final consolidated summary is produced.
type MapReduce struct {
	llm    llm.LLMClient
	tok    *tiktoken.Tiktoken
	budget int
}

func New(cfg Config) *MapReduce {
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = DefaultTokenBudget
	}

	tok, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Error("Failed to get token encoder", zap.Error(err))
		return nil
	}

	return &MapReduce{llm: cfg.LLM, tok: tok, budget: cfg.TokenBudget}
}

func (m *MapReduce) Summarize(ctx context.Context, contents []string) (string, error) {
	if len(contents) == 0 {
		return emptyContentSummary, nil
	}

	logger.Info("summarizing content blocks", zap.Int("count", len(contents)))

	var tasks []<-chan async.Result[string]
	for _, content := range contents {
		tasks = append(tasks, m.summarizeChunk(ctx, content))
	}

	summaries, err := async.AwaitAll(tasks...)
	if err != nil {
		return "", err
	}

	for m.tokenCount(summaries) > m.budget {
		collapsed, err := m.collapse(ctx, summaries)
		if err != nil {
			return "", err
		}
		if len(collapsed) >= len(summaries) {
			// reduction is not converging; stop folding
			summaries = collapsed
			break
		}
		summaries = collapsed
	}

	return prompts.ReduceSummaries(ctx, m.llm, summaries)
}

func (m *MapReduce) summarizeChunk(ctx context.Context, content string) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		return prompts.SummarizeChunk(ctx, m.llm, content)
	})
}

// collapse folds summaries one level: they are split into groups that each
// fit the budget, and every group is reduced to a single summary. A set
// already under budget comes back unchanged.
func (m *MapReduce) collapse(ctx context.Context, docs []string) ([]string, error) {
	if m.tokenCount(docs) <= m.budget {
		return docs, nil
	}

	var out []string
	for _, group := range m.splitByBudget(docs) {
		reduced, err := prompts.ReduceSummaries(ctx, m.llm, group)
		if err != nil {
			return nil, err
		}
		out = append(out, reduced)
	}

	logger.Info("collapsed summaries", zap.Int("from", len(docs)), zap.Int("to", len(out)))
	return out, nil
}

// splitByBudget groups docs greedily so each group stays under the budget.
// A single doc over the budget forms a group of its own.
func (m *MapReduce) splitByBudget(docs []string) [][]string {
	var groups [][]string
	var current []string
	currentTokens := 0

	for _, doc := range docs {
		n := len(m.tok.Encode(doc, nil, nil))
		if len(current) > 0 && currentTokens+n > m.budget {
			groups = append(groups, current)
			current = nil
			currentTokens = 0
		}
		current = append(current, doc)
		currentTokens += n
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func (m *MapReduce) tokenCount(docs []string) int {
	total := 0
	for _, doc := range docs {
		total += len(m.tok.Encode(doc, nil, nil))
	}
	return total
}
