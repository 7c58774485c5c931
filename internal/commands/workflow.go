// Package commands provides workflow commands.
//
// Purpose:
//
//	Workflow lifecycle: list, get, upload definitions from JSON/YAML files,
//	run synchronously (by ID or run-or-create from a file) with optional
//	debug log capture, and delete with confirmation flags.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/audit"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/logging"
	"github.com/eratosio/as-client-go/internal/output"
)

// WorkflowCommand creates the workflow command group.
func WorkflowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage workflows",
		Long:  "Manage workflows: list, get, upload, run, delete",
	}

	cmd.AddCommand(workflowListCommand())
	cmd.AddCommand(workflowGetCommand())
	cmd.AddCommand(workflowUploadCommand())
	cmd.AddCommand(workflowRunCommand())
	cmd.AddCommand(workflowDeleteCommand())

	return cmd
}

func workflowListCommand() *cobra.Command {
	var flagSkip int
	var flagLimit int
	var flagAll bool
	var flagPageSize int
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflows",
		Long:  "List workflows with structured output (table, json, csv)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowList(cmd, args, flagSkip, flagLimit, flagAll, flagPageSize,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().IntVar(&flagSkip, "skip", 0, "Number of results to skip")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of results to return")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Fetch every page of results")
	cmd.Flags().IntVar(&flagPageSize, "page-size", 0, "Page size when fetching every page (requires --all)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runWorkflowList(cmd *cobra.Command, args []string, flagSkip, flagLimit int, flagAll bool, flagPageSize int,
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

	// Paging flags: --all walks every page, --skip/--limit select one page.
	if flagAll && (flagSkip > 0 || flagLimit > 0) {
		return errors.NewUsageError("--all cannot be combined with --skip or --limit")
	}
	if flagPageSize > 0 && !flagAll {
		return errors.NewUsageError("--page-size requires --all")
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	var workflows []asclient.Workflow
	if flagAll {
		err = client.ForEachWorkflow(cmd.Context(), flagPageSize, func(wf asclient.Workflow) error {
			workflows = append(workflows, wf)
			return nil
		})
	} else {
		workflows, _, err = client.ListWorkflows(cmd.Context(), asclient.ListOptions{Skip: flagSkip, Limit: flagLimit})
	}
	if err != nil {
		return wrapAPIError("list workflows", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(workflows)
	} else if cfg.OutputFormat == "csv" {
		headers := []string{"id", "name", "modelid", "organisationid"}
		var rows [][]string
		for _, wf := range workflows {
			rows = append(rows, []string{wf.ID, wf.Name, wf.ModelID, wf.OrganisationID})
		}
		return output.PrintCSV(headers, rows)
	} else {
		headers := []string{"ID", "Name", "Model", "Organisation"}
		var rows [][]string
		for _, wf := range workflows {
			rows = append(rows, []string{wf.ID, wf.Name, wf.ModelID, wf.OrganisationID})
		}
		if len(rows) == 0 && !cfg.Quiet {
			fmt.Println("No workflows found.")
			return nil
		}
		return output.PrintTable(headers, rows)
	}
}

func workflowGetCommand() *cobra.Command {
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "get <workflow-id>",
		Short: "Show workflow details",
		Long:  "Show the detail of a workflow including its ports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowGet(cmd, args, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runWorkflowGet(cmd *cobra.Command, args []string, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
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

	wf, err := client.GetWorkflow(cmd.Context(), args[0])
	if err != nil {
		return wrapAPIError("get workflow", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		// Ports are lifted out of the wire envelope, so marshal them back
		// in explicitly.
		return output.PrintJSON(map[string]interface{}{
			"id":             wf.ID,
			"name":           wf.Name,
			"description":    wf.Description,
			"modelid":        wf.ModelID,
			"organisationid": wf.OrganisationID,
			"groupids":       wf.GroupIDs,
			"ports":          wf.Ports,
		})
	}

	fmt.Printf("Workflow: %s\n", wf.ID)
	fmt.Printf("  Name: %s\n", wf.Name)
	if wf.Description != "" {
		fmt.Printf("  Description: %s\n", wf.Description)
	}
	fmt.Printf("  Model: %s\n", wf.ModelID)
	if wf.OrganisationID != "" {
		fmt.Printf("  Organisation: %s\n", wf.OrganisationID)
	}

	if len(wf.Ports) > 0 {
		fmt.Println()
		headers := []string{"Port", "Direction", "Type", "Required"}
		var rows [][]string
		for _, p := range wf.Ports {
			rows = append(rows, []string{
				p.Name,
				p.Direction,
				p.Type,
				fmt.Sprintf("%t", p.Required),
			})
		}
		return output.PrintTable(headers, rows)
	}
	return nil
}

func workflowUploadCommand() *cobra.Command {
	var flagFile string
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a workflow",
		Long:  "Upload a workflow definition from a JSON or YAML file; definitions carrying an ID overwrite the existing workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowUpload(cmd, args, flagFile, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFile, "file", "", "File path (JSON/YAML) containing the workflow definition (required)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

// loadWorkflowFile parses a workflow definition, trying JSON first, then
// YAML. YAML keys use the same all-lowercase names as the JSON wire format.
func loadWorkflowFile(path string) (*asclient.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("failed to read file: %v", err),
			"Verify the file path is correct and readable.",
		)
	}

	var wf asclient.Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		if err := yaml.Unmarshal(data, &wf); err != nil {
			return nil, errors.NewValidationError(
				fmt.Sprintf("failed to parse file: %v", err),
				"File must be valid JSON or YAML format.",
			)
		}
	}

	if wf.Name == "" && wf.ID == "" {
		return nil, errors.NewValidationError(
			"workflow definition is empty",
			"The file must define at least a workflow name.",
		)
	}
	return &wf, nil
}

func runWorkflowUpload(cmd *cobra.Command, args []string, flagFile, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
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
	if flagFile == "" {
		return errors.NewValidationError(
			"--file is required",
			"Provide a workflow definition file with --file",
		)
	}

	wf, err := loadWorkflowFile(flagFile)
	if err != nil {
		return err
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

	if err := client.UploadWorkflow(cmd.Context(), wf); err != nil {
		logAudit(auditLogger, audit.Operation{
			Type:       "workflow_upload",
			Command:    fmt.Sprintf("workflow upload --file=%s", flagFile),
			Parameters: map[string]interface{}{"file": flagFile},
			Outcome:    "failure",
			Duration:   time.Since(startTime),
			Error:      err,
		})
		return wrapAPIError("upload workflow", cfg.BaseURL, err)
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "workflow_upload",
		Command:    fmt.Sprintf("workflow upload --file=%s", flagFile),
		Parameters: map[string]interface{}{"file": flagFile, "workflowId": wf.ID},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(map[string]interface{}{
			"success":    true,
			"workflowId": wf.ID,
			"name":       wf.Name,
		})
	}

	if !cfg.Quiet {
		fmt.Println("Workflow uploaded successfully:")
		fmt.Printf("  Workflow ID: %s\n", wf.ID)
		fmt.Printf("  Name: %s\n", wf.Name)
	}
	return nil
}

func workflowRunCommand() *cobra.Command {
	var flagFile string
	var flagDebug bool
	var flagOutput string
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "run [workflow-id]",
		Short: "Run a workflow",
		Long:  "Run a workflow synchronously by ID, or from a definition file (creating it first when it does not exist)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowRun(cmd, args, flagFile, flagDebug, flagOutput,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFile, "file", "", "File path (JSON/YAML) containing the workflow to run or create")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Run in debug mode, returning the execution log")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write result ports to a CSV file")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runWorkflowRun(cmd *cobra.Command, args []string, flagFile string, flagDebug bool, flagOutput string,
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
	if len(args) == 0 && flagFile == "" {
		return errors.NewValidationError(
			"workflow ID or --file is required",
			"Run an existing workflow by ID, or provide a definition file with --file",
		)
	}
	if len(args) > 0 && flagFile != "" {
		return errors.NewUsageError("a workflow ID and --file cannot both be given")
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

	opts := asclient.RunOptions{Debug: flagDebug}

	var workflowID string
	var results *asclient.WorkflowResults
	if flagFile != "" {
		wf, err := loadWorkflowFile(flagFile)
		if err != nil {
			return err
		}
		results, err = client.RunOrCreateWorkflow(cmd.Context(), wf, opts)
		if err != nil {
			logAudit(auditLogger, audit.Operation{
				Type:       "workflow_run",
				Command:    fmt.Sprintf("workflow run --file=%s", flagFile),
				Parameters: map[string]interface{}{"file": flagFile},
				Outcome:    "failure",
				Duration:   time.Since(startTime),
				Error:      err,
			})
			return wrapAPIError("run workflow", cfg.BaseURL, err)
		}
		workflowID = wf.ID
	} else {
		workflowID = args[0]
		results, err = client.RunWorkflow(cmd.Context(), workflowID, opts)
		if err != nil {
			logAudit(auditLogger, audit.Operation{
				Type:       "workflow_run",
				Command:    fmt.Sprintf("workflow run %s", workflowID),
				Parameters: map[string]interface{}{"workflowId": workflowID},
				Outcome:    "failure",
				Duration:   time.Since(startTime),
				Error:      err,
			})
			return wrapAPIError("run workflow", cfg.BaseURL, err)
		}
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "workflow_run",
		Command:    fmt.Sprintf("workflow run %s", workflowID),
		Parameters: map[string]interface{}{"workflowId": workflowID, "debug": flagDebug},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	if flagOutput != "" {
		if err := writeResultsCSV(flagOutput, workflowID, results); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Printf("Results written to %s\n", flagOutput)
		}
	}

	// Format output
	if cfg.OutputFormat == "json" {
		out := map[string]interface{}{
			"workflowid": workflowID,
			"status":     results.Status,
			"ports":      results.Ports,
		}
		if flagDebug && len(results.Log) > 0 {
			out["log"] = results.Log
		}
		return output.PrintJSON(out)
	} else if cfg.OutputFormat == "csv" {
		headers := []string{"portname", "type", "direction", "value"}
		var rows [][]string
		for _, p := range results.Ports {
			rows = append(rows, []string{p.Name, p.Type, p.Direction, fmt.Sprintf("%v", p.Value)})
		}
		return output.PrintCSV(headers, rows)
	}

	if !cfg.Quiet {
		fmt.Printf("Workflow %s finished: %s\n", workflowID, results.Status)
	}
	if len(results.Ports) > 0 {
		fmt.Println()
		headers := []string{"Port", "Direction", "Type", "Value"}
		var rows [][]string
		for _, p := range results.Ports {
			rows = append(rows, []string{p.Name, p.Direction, p.Type, fmt.Sprintf("%v", p.Value)})
		}
		if err := output.PrintTable(headers, rows); err != nil {
			return err
		}
	}
	if flagDebug && len(results.Log) > 0 && !cfg.Quiet {
		// Execution logs can echo model environment, so mask credentials.
		fmt.Println()
		fmt.Println("Execution log:")
		fmt.Println(logging.RedactString(string(results.Log)))
	}
	return nil
}

// writeResultsCSV exports result ports to a CSV file with run metadata.
func writeResultsCSV(path, workflowID string, results *asclient.WorkflowResults) error {
	f, err := output.NewCSVFileFormatter(path)
	if err != nil {
		return errors.NewOperationError(
			fmt.Sprintf("failed to create output file: %v", err),
			"Verify the output path is writable.",
		)
	}
	defer f.Close()

	if err := f.WriteSchemaComment("Workflow results"); err != nil {
		return err
	}
	if err := f.WriteHeader([]string{"portname", "type", "direction", "value"}); err != nil {
		return err
	}
	for _, p := range results.Ports {
		if err := f.WriteRow([]string{p.Name, p.Type, p.Direction, fmt.Sprintf("%v", p.Value)}); err != nil {
			return err
		}
	}
	return f.WriteMetadata(map[string]interface{}{
		"workflow": workflowID,
		"status":   results.Status,
	})
}

func workflowDeleteCommand() *cobra.Command {
	var flagConfirm bool
	var flagForce bool
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "delete <workflow-id>",
		Short: "Delete a workflow",
		Long:  "Delete a workflow with confirmation and force flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowDelete(cmd, args, flagConfirm, flagForce,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().BoolVar(&flagConfirm, "confirm", false, "Confirm deletion (required unless --force)")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Force deletion without confirmation")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runWorkflowDelete(cmd *cobra.Command, args []string, flagConfirm, flagForce bool,
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

	workflowID := args[0]

	// Confirmation check (non-interactive mode: require --confirm or --force)
	if !flagForce && !flagConfirm {
		return errors.NewValidationError(
			"confirmation required for destructive operation",
			"Use --confirm to confirm deletion or --force to skip confirmation.",
		)
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

	// Show what is being deleted (unless forced or quiet)
	if !flagForce && !cfg.Quiet {
		if wf, err := client.GetWorkflow(cmd.Context(), workflowID); err == nil {
			fmt.Printf("Deleting workflow %s (%s)\n", workflowID, wf.Name)
		} else {
			fmt.Printf("Deleting workflow %s\n", workflowID)
		}
	}

	if err := client.DeleteWorkflow(cmd.Context(), workflowID); err != nil {
		logAudit(auditLogger, audit.Operation{
			Type:       "workflow_delete",
			Command:    fmt.Sprintf("workflow delete %s", workflowID),
			Parameters: map[string]interface{}{"workflowId": workflowID},
			Outcome:    "failure",
			Duration:   time.Since(startTime),
			Error:      err,
		})
		return wrapAPIError("delete workflow", cfg.BaseURL, err)
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "workflow_delete",
		Command:    fmt.Sprintf("workflow delete %s --confirm", workflowID),
		Parameters: map[string]interface{}{"workflowId": workflowID},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(map[string]interface{}{
			"success":    true,
			"workflowId": workflowID,
			"message":    "Workflow deleted successfully",
		})
	}

	if !cfg.Quiet {
		fmt.Printf("Workflow deleted successfully: %s\n", workflowID)
	}
	return nil
}
