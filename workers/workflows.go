package workers

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// IndexFileWorkflow extracts a document, chunks it and stores embedded
// chunks. Each stage is skipped when its output is already in the state.
func IndexFileWorkflow(ctx workflow.Context, state IndexFileState) (IndexFileState, error) {
	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 10,
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	if state.Markdown == "" && state.InputFile != "" {
		err := workflow.ExecuteActivity(ctx, (*Activities).ExtractDocument, state.InputFile).Get(ctx, &state.Markdown)
		if err != nil {
			return state, err
		}
	}

	if len(state.Chunks) == 0 && state.Markdown != "" {
		err := workflow.ExecuteActivity(ctx, (*Activities).ChunkDocument, state.InputFile, state.Markdown).Get(ctx, &state.Chunks)
		if err != nil {
			return state, err
		}
	}

	if len(state.Chunks) != 0 {
		err := workflow.ExecuteActivity(ctx, (*Activities).EmbedAndStoreChunks, state.Chunks).Get(ctx, &state.Inserted)
		if err != nil {
			return state, err
		}
	}

	return state, nil
}

// SummarizeFileWorkflow extracts a document, chunks it and map-reduces the
// chunks into one summary.
func SummarizeFileWorkflow(ctx workflow.Context, state SummarizeFileState) (SummarizeFileState, error) {
	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 20,
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	if state.Markdown == "" && state.InputFile != "" {
		err := workflow.ExecuteActivity(ctx, (*Activities).ExtractDocument, state.InputFile).Get(ctx, &state.Markdown)
		if err != nil {
			return state, err
		}
	}

	if len(state.Chunks) == 0 && state.Markdown != "" {
		err := workflow.ExecuteActivity(ctx, (*Activities).ChunkDocument, state.InputFile, state.Markdown).Get(ctx, &state.Chunks)
		if err != nil {
			return state, err
		}
	}

	if state.Summary == "" && len(state.Chunks) != 0 {
		err := workflow.ExecuteActivity(ctx, (*Activities).SummarizeChunks, state.Chunks).Get(ctx, &state.Summary)
		if err != nil {
			return state, err
		}
	}

	return state, nil
}
