// Package asclient job resources.
//
// Purpose:
//
//	Asynchronous workflow execution. A job references the workflow it
//	executes and advances through pending/running to a terminal status.
package asclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const jobsPath = "jobs"

// Job statuses.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// DefaultPollInterval is the default interval between job status polls.
const DefaultPollInterval = 5 * time.Second

// Job is an asynchronous workflow execution.
type Job struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowid"`
	Debug      bool   `json:"debug"`
	Status     string `json:"status"`
}

// Finished reports whether the job has reached a terminal status.
func (j *Job) Finished() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// jobPayload is the creation form of a job.
type jobPayload struct {
	WorkflowID string `json:"workflowid"`
	Debug      bool   `json:"debug"`
}

// CreateJob creates a job executing the workflow with the given ID.
func (c *Client) CreateJob(ctx context.Context, workflowID string, opts RunOptions) (*Job, error) {
	if workflowID == "" {
		return nil, errors.New("workflow id is required")
	}

	payload := jobPayload{
		WorkflowID: workflowID,
		Debug:      opts.Debug,
	}

	var job Job
	if err := c.sendJSON(ctx, http.MethodPost, nil, payload, &job, jobsPath); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return &job, nil
}

// GetJob gets a specific job by ID.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	if id == "" {
		return nil, errors.New("job id is required")
	}

	var job Job
	if err := c.getJSON(ctx, nil, &job, jobsPath, id); err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &job, nil
}

// WaitForJob polls a job until it reaches a terminal status or ctx is done.
// A pollInterval of 0 uses DefaultPollInterval.
func (c *Client) WaitForJob(ctx context.Context, id string, pollInterval time.Duration) (*Job, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	for {
		job, err := c.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Finished() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
