package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
)

// Runner owns the temporal connection: it polls the task queue as a worker
// and starts ingestion workflows for callers.
type Runner struct {
	tc         client.Client
	taskQueue  string
	activities *Activities
}

// NewRunner connects to temporal. Activities may be nil for callers that
// only start workflows and never poll.
func NewRunner(hostPort, taskQueue string, activities *Activities) (*Runner, error) {
	tc, err := client.Dial(client.Options{HostPort: hostPort})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to temporal: %w", err)
	}

	return &Runner{tc: tc, taskQueue: taskQueue, activities: activities}, nil
}

// Start registers the workflows and activities and polls until interrupted.
func (r *Runner) Start(ctx context.Context) error {
	if r.activities == nil {
		return fmt.Errorf("worker activities are not configured")
	}
	logger.Info("starting worker", zap.String("taskQueue", r.taskQueue))

	w := worker.New(r.tc, r.taskQueue, worker.Options{})
	w.RegisterWorkflow(IndexFileWorkflow)
	w.RegisterWorkflow(SummarizeFileWorkflow)
	w.RegisterActivity(r.activities)

	return w.Run(worker.InterruptCh())
}

// IndexFile runs IndexFileWorkflow to completion.
func (r *Runner) IndexFile(ctx context.Context, filePath string) (IndexFileState, error) {
	state := IndexFileState{InputFile: filePath}

	run, err := r.tc.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        fmt.Sprintf("index-file-%d", time.Now().UnixNano()),
		TaskQueue: r.taskQueue,
	}, IndexFileWorkflow, state)
	if err != nil {
		return state, err
	}

	err = run.Get(ctx, &state)
	return state, err
}

// SummarizeFile runs SummarizeFileWorkflow to completion.
func (r *Runner) SummarizeFile(ctx context.Context, filePath string) (SummarizeFileState, error) {
	state := SummarizeFileState{InputFile: filePath}

	run, err := r.tc.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        fmt.Sprintf("summarize-file-%d", time.Now().UnixNano()),
		TaskQueue: r.taskQueue,
	}, SummarizeFileWorkflow, state)
	if err != nil {
		return state, err
	}

	err = run.Get(ctx, &state)
	return state, err
}

func (r *Runner) Close() {
	r.tc.Close()
}
