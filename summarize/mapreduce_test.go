package summarize

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopmindai/shopmind/llm"
)

// routingLLM answers by inspecting the system prompt, so it stays
// deterministic under the concurrent map phase.
type routingLLM struct {
	mu          sync.Mutex
	mapCalls    int
	reduceCalls int
	mapReply    func(content string) string
	reduceReply func() string
}

func (m *routingLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(chunk string) error, opts ...llm.LLMOption) error {
	settings := &llm.LLMSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	m.mu.Lock()
	isReduce := strings.Contains(settings.System(), "set of summaries")
	if isReduce {
		m.reduceCalls++
	} else {
		m.mapCalls++
	}
	m.mu.Unlock()

	if isReduce {
		return callback(m.reduceReply())
	}
	return callback(m.mapReply(messages[len(messages)-1].Content))
}

func (m *routingLLM) GetModel() string { return "routing" }

func TestSummarizeEmptyContents(t *testing.T) {
	client := &routingLLM{}
	mr := New(Config{LLM: client})
	assert.NotNil(t, mr)

	out, err := mr.Summarize(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, emptyContentSummary, out)
	assert.Equal(t, 0, client.mapCalls)
	assert.Equal(t, 0, client.reduceCalls)
}

func TestSummarizeUnderBudgetSkipsCollapse(t *testing.T) {
	client := &routingLLM{
		mapReply:    func(content string) string { return "summary of " + content[:4] },
		reduceReply: func() string { return "final summary" },
	}
	mr := New(Config{LLM: client})

	out, err := mr.Summarize(context.Background(), []string{"chunk one", "chunk two"})

	assert.NoError(t, err)
	assert.Equal(t, "final summary", out)
	assert.Equal(t, 2, client.mapCalls)
	// short summaries fit the budget, so only the final reduce runs
	assert.Equal(t, 1, client.reduceCalls)
}

func TestSummarizeCollapsesOverBudget(t *testing.T) {
	long := strings.Repeat("vendor payment record. ", 10)
	client := &routingLLM{
		mapReply:    func(content string) string { return long },
		reduceReply: func() string { return "condensed" },
	}
	mr := New(Config{LLM: client, TokenBudget: 30})

	out, err := mr.Summarize(context.Background(), []string{"a", "b", "c"})

	assert.NoError(t, err)
	assert.Equal(t, "condensed", out)
	assert.Equal(t, 3, client.mapCalls)
	// one reduce per over-budget group plus the final reduce
	assert.Equal(t, 4, client.reduceCalls)
}

func TestCollapseUnderBudgetIsNoOp(t *testing.T) {
	client := &routingLLM{}
	mr := New(Config{LLM: client, TokenBudget: 100})

	docs := []string{"short one", "short two"}
	out, err := mr.collapse(context.Background(), docs)

	assert.NoError(t, err)
	assert.Equal(t, docs, out)
	assert.Equal(t, 0, client.reduceCalls)
}

func TestSplitByBudgetKeepsOrder(t *testing.T) {
	mr := New(Config{LLM: &routingLLM{}, TokenBudget: 10})

	docs := []string{
		strings.Repeat("alpha ", 8),
		strings.Repeat("beta ", 8),
		"tiny",
	}
	groups := mr.splitByBudget(docs)

	var flat []string
	for _, g := range groups {
		flat = append(flat, g...)
	}
	assert.Equal(t, docs, flat)
	assert.GreaterOrEqual(t, len(groups), 2)
}
