package workers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.temporal.io/sdk/testsuite"

	"github.com/shopmindai/shopmind/ingest"
)

func newTestEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *Activities) {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	acts := &Activities{}
	env.RegisterActivity(acts)
	return env, acts
}

func TestIndexFileWorkflow(t *testing.T) {
	env, acts := newTestEnv(t)

	chunks := []ingest.Chunk{{ID: "c1", Text: "bill text", Source: "bill.pdf"}}

	env.OnActivity(acts.ExtractDocument, mock.Anything, "bill.pdf").Return("# Bill\n\nbill text", nil)
	env.OnActivity(acts.ChunkDocument, mock.Anything, "bill.pdf", "# Bill\n\nbill text").Return(chunks, nil)
	env.OnActivity(acts.EmbedAndStoreChunks, mock.Anything, chunks).Return(1, nil)

	env.ExecuteWorkflow(IndexFileWorkflow, IndexFileState{InputFile: "bill.pdf"})

	assert.True(t, env.IsWorkflowCompleted())
	assert.NoError(t, env.GetWorkflowError())

	var state IndexFileState
	assert.NoError(t, env.GetWorkflowResult(&state))
	assert.Equal(t, 1, state.Inserted)
	assert.Len(t, state.Chunks, 1)
}

func TestIndexFileWorkflowResumesAfterExtraction(t *testing.T) {
	env, acts := newTestEnv(t)

	chunks := []ingest.Chunk{{ID: "c1", Text: "already extracted", Source: "bill.pdf"}}

	// no extraction expectation; a call would fail the suite
	env.OnActivity(acts.ChunkDocument, mock.Anything, "bill.pdf", "already extracted").Return(chunks, nil)
	env.OnActivity(acts.EmbedAndStoreChunks, mock.Anything, chunks).Return(1, nil)

	env.ExecuteWorkflow(IndexFileWorkflow, IndexFileState{
		InputFile: "bill.pdf",
		Markdown:  "already extracted",
	})

	assert.True(t, env.IsWorkflowCompleted())
	assert.NoError(t, env.GetWorkflowError())
	env.AssertExpectations(t)
}

func TestIndexFileWorkflowPropagatesExtractionFailure(t *testing.T) {
	env, acts := newTestEnv(t)

	env.OnActivity(acts.ExtractDocument, mock.Anything, "broken.pdf").
		Return("", errors.New("failed to extract document: unreadable"))

	env.ExecuteWorkflow(IndexFileWorkflow, IndexFileState{InputFile: "broken.pdf"})

	assert.True(t, env.IsWorkflowCompleted())
	assert.Error(t, env.GetWorkflowError())
}

func TestSummarizeFileWorkflow(t *testing.T) {
	env, acts := newTestEnv(t)

	chunks := []ingest.Chunk{
		{ID: "c1", Text: "sales were up", Source: "report.pdf"},
		{ID: "c2", Text: "costs were flat", Source: "report.pdf"},
	}

	env.OnActivity(acts.ExtractDocument, mock.Anything, "report.pdf").Return("report body", nil)
	env.OnActivity(acts.ChunkDocument, mock.Anything, "report.pdf", "report body").Return(chunks, nil)
	env.OnActivity(acts.SummarizeChunks, mock.Anything, chunks).Return("sales up, costs flat", nil)

	env.ExecuteWorkflow(SummarizeFileWorkflow, SummarizeFileState{InputFile: "report.pdf"})

	assert.True(t, env.IsWorkflowCompleted())
	assert.NoError(t, env.GetWorkflowError())

	var state SummarizeFileState
	assert.NoError(t, env.GetWorkflowResult(&state))
	assert.Equal(t, "sales up, costs flat", state.Summary)
}
