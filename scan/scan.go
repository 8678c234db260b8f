// Package scan runs a complete scan against a manager: authenticate, ensure
// a target, create and start a task, wait for completion, fetch the report.
// It is the high-level layer above the protocol client.
package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	omp "github.com/pkjmesra/go-omp"
	"github.com/pkjmesra/go-omp/entity"
)

// Runner executes the scan workflow over an authenticated client session.
type Runner struct {
	client *omp.Client
	cfg    Config
	logger *slog.Logger
}

// Result is the outcome of one scan run.
type Result struct {
	// TaskID identifies the task that ran.
	TaskID string

	// TargetName is the target the task scanned.
	TargetName string

	// Report is the scan report when one could be resolved, otherwise the
	// final task status response.
	Report *entity.Entity
}

// NewRunner creates a runner. logger may be nil.
func NewRunner(client *omp.Client, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{client: client, cfg: cfg, logger: logger}
}

// Run performs the whole workflow and blocks until the task reaches a
// terminal state. Cancel ctx to abandon the wait.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := r.client.Authenticate(ctx, cfg.Username, cfg.Password); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	// The manager answers 503 while its backend is still starting.
	if _, err := r.client.UntilUp(ctx, func(ctx context.Context) (*entity.Entity, error) {
		return r.client.GetStatus(ctx, "", false)
	}); err != nil {
		return nil, fmt.Errorf("wait for manager: %w", err)
	}

	taskName := cfg.TaskName
	if taskName == "" {
		taskName = "scan-" + uuid.NewString()
	}
	targetName := cfg.TargetName
	if targetName == "" {
		targetName = taskName + "-target"
	}

	if err := r.client.CreateTarget(ctx, targetName, cfg.Hosts, cfg.Comment); err != nil {
		return nil, fmt.Errorf("create target %q: %w", targetName, err)
	}
	r.logger.Info("target created", "target", targetName, "hosts", cfg.Hosts)

	taskID, err := r.client.CreateTask(ctx, taskName, cfg.ConfigName, targetName, cfg.Comment)
	if err != nil {
		return nil, fmt.Errorf("create task %q: %w", taskName, err)
	}
	r.logger.Info("task created", "task", taskName, "id", taskID)

	if err := r.client.StartTask(ctx, taskID); err != nil {
		return nil, fmt.Errorf("start task %s: %w", taskID, err)
	}
	if err := r.client.WaitForTaskStart(ctx, taskID); err != nil {
		return nil, fmt.Errorf("wait for start: %w", err)
	}
	r.logger.Info("task running", "id", taskID)

	if err := r.client.WaitForTaskEnd(ctx, taskID); err != nil {
		return nil, fmt.Errorf("wait for end: %w", err)
	}
	r.logger.Info("task finished", "id", taskID)

	report, err := r.fetchReport(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return &Result{TaskID: taskID, TargetName: targetName, Report: report}, nil
}

// fetchReport resolves the task's report. Managers that announce a report
// element with an id get the full report fetched; otherwise the status
// response itself is returned.
func (r *Runner) fetchReport(ctx context.Context, taskID string) (*entity.Entity, error) {
	status, err := r.client.GetStatus(ctx, taskID, false)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	task := status.Child("task")
	if task == nil {
		return status, nil
	}
	report := task.Child("report")
	if report == nil {
		return status, nil
	}
	reportID, ok := report.Attribute("id")
	if !ok {
		return status, nil
	}

	full, err := r.client.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", reportID, err)
	}
	return full, nil
}
