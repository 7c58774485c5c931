// Package commands provides job commands.
//
// Purpose:
//
//	Asynchronous workflow execution: create jobs, inspect their status, and
//	wait for completion with heartbeat progress pulses and a timeout.
package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/audit"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/output"
	"github.com/eratosio/as-client-go/internal/progress"
)

// JobCommand creates the job command group.
func JobCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
		Long:  "Manage asynchronous workflow executions: create, get, wait",
	}

	cmd.AddCommand(jobCreateCommand())
	cmd.AddCommand(jobGetCommand())
	cmd.AddCommand(jobWaitCommand())

	return cmd
}

func jobCreateCommand() *cobra.Command {
	var flagWorkflowID string
	var flagDebug bool
	var flagWait bool
	var flagTimeout time.Duration
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job",
		Long:  "Create a job executing a workflow asynchronously",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobCreate(cmd, args, flagWorkflowID, flagDebug, flagWait, flagTimeout,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagWorkflowID, "workflow-id", "", "Workflow to execute (required)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Run in debug mode")
	cmd.Flags().BoolVar(&flagWait, "wait", false, "Wait for the job to finish")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Give up waiting after this duration (requires --wait)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runJobCreate(cmd *cobra.Command, args []string, flagWorkflowID string, flagDebug, flagWait bool, flagTimeout time.Duration,
	flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
	startTime := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return errors.NewOperationError(
			fmt.Sprintf("failed to load configuration: %v", err),
			"Check your configuration file or environment variables.",
		)
	}

	// Apply flag overrides
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagFormat != "" {
		cfg.OutputFormat = flagFormat
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagQuiet {
		cfg.Quiet = true
	}

	// Validate configuration
	if cfg.BaseURL == "" {
		return errors.NewValidationError(
			"API base URL is required",
			"Set via --api-url flag or AS_CLIENT_API_BASE_URL environment variable",
		)
	}

	// Validate required fields
	if flagWorkflowID == "" {
		return errors.NewValidationError(
			"--workflow-id is required",
			"Provide the workflow to execute with --workflow-id",
		)
	}
	if flagTimeout > 0 && !flagWait {
		return errors.NewUsageError("--timeout requires --wait")
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	auditLogger, closeAudit, err := newAuditLogger(cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	job, err := client.CreateJob(cmd.Context(), flagWorkflowID, asclient.RunOptions{Debug: flagDebug})
	if err != nil {
		logAudit(auditLogger, audit.Operation{
			Type:       "job_create",
			Command:    fmt.Sprintf("job create --workflow-id=%s", flagWorkflowID),
			Parameters: map[string]interface{}{"workflowId": flagWorkflowID},
			Outcome:    "failure",
			Duration:   time.Since(startTime),
			Error:      err,
		})
		return wrapAPIError("create job", cfg.BaseURL, err)
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "job_create",
		Command:    fmt.Sprintf("job create --workflow-id=%s", flagWorkflowID),
		Parameters: map[string]interface{}{"workflowId": flagWorkflowID, "jobId": job.ID, "debug": flagDebug},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	if flagWait {
		waited, err := waitForJob(cmd.Context(), client, cfg, job.ID, flagTimeout, 0)
		if err != nil {
			return wrapWaitError(job.ID, cfg.BaseURL, err)
		}
		job = waited
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(job)
	}

	if !cfg.Quiet {
		fmt.Println("Job created successfully:")
		printJob(job)
	}
	return nil
}

func jobGetCommand() *cobra.Command {
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "get <job-id>",
		Short: "Show job status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobGet(cmd, args, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runJobGet(cmd *cobra.Command, args []string, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return errors.NewOperationError(
			fmt.Sprintf("failed to load configuration: %v", err),
			"Check your configuration file or environment variables.",
		)
	}

	// Apply flag overrides
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagFormat != "" {
		cfg.OutputFormat = flagFormat
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagQuiet {
		cfg.Quiet = true
	}

	// Validate configuration
	if cfg.BaseURL == "" {
		return errors.NewValidationError(
			"API base URL is required",
			"Set via --api-url flag or AS_CLIENT_API_BASE_URL environment variable",
		)
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	job, err := client.GetJob(cmd.Context(), args[0])
	if err != nil {
		return wrapAPIError("get job", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(job)
	}

	printJob(job)
	return nil
}

func jobWaitCommand() *cobra.Command {
	var flagTimeout time.Duration
	var flagPollInterval time.Duration
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "wait <job-id>",
		Short: "Wait for a job to finish",
		Long:  "Poll a job until it reaches a terminal status, showing progress pulses for long waits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobWait(cmd, args, flagTimeout, flagPollInterval,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Give up waiting after this duration")
	cmd.Flags().DurationVar(&flagPollInterval, "poll-interval", 0, "Interval between status polls (default from config)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runJobWait(cmd *cobra.Command, args []string, flagTimeout, flagPollInterval time.Duration,
	flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return errors.NewOperationError(
			fmt.Sprintf("failed to load configuration: %v", err),
			"Check your configuration file or environment variables.",
		)
	}

	// Apply flag overrides
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagFormat != "" {
		cfg.OutputFormat = flagFormat
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagQuiet {
		cfg.Quiet = true
	}

	// Validate configuration
	if cfg.BaseURL == "" {
		return errors.NewValidationError(
			"API base URL is required",
			"Set via --api-url flag or AS_CLIENT_API_BASE_URL environment variable",
		)
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	job, err := waitForJob(cmd.Context(), client, cfg, args[0], flagTimeout, flagPollInterval)
	if err != nil {
		return wrapWaitError(args[0], cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(job)
	}

	printJob(job)
	return nil
}

// waitForJob polls a job until it reaches a terminal status, emitting
// heartbeat pulses once the wait exceeds the indicator threshold. A timeout
// of 0 waits indefinitely; a pollInterval of 0 uses the configured default.
func waitForJob(ctx context.Context, client *asclient.Client, cfg *config.Config, jobID string, timeout, pollInterval time.Duration) (*asclient.Job, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if pollInterval <= 0 {
		pollInterval = time.Duration(cfg.JobPollInterval) * time.Second
	}

	format := "table"
	if cfg.OutputFormat == "json" {
		format = "json"
	}
	indicator := progress.NewIndicator(nil, format)
	if !cfg.Progress || cfg.Quiet {
		indicator.Disable()
	}

	started := time.Now()
	for {
		job, err := client.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		elapsed := time.Since(started)
		if job.Finished() {
			if indicator.ShouldShow(elapsed) {
				_ = indicator.Complete("job "+jobID, 0, elapsed)
			}
			return job, nil
		}
		if indicator.ShouldShow(elapsed) {
			_ = indicator.Pulse("job "+jobID, job.Status, elapsed)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// wrapWaitError gives timeouts a dedicated message; other errors go through
// the usual mapping.
func wrapWaitError(jobID, endpoint string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewOperationError(
			fmt.Sprintf("timed out waiting for job %s", jobID),
			"Increase --timeout, or check on the job later with 'as-client job get'.",
		)
	}
	return wrapAPIError("wait for job", endpoint, err)
}

func printJob(job *asclient.Job) {
	fmt.Printf("Job: %s\n", job.ID)
	fmt.Printf("  Workflow: %s\n", job.WorkflowID)
	fmt.Printf("  Status: %s\n", job.Status)
	if job.Debug {
		fmt.Println("  Debug: true")
	}
}
