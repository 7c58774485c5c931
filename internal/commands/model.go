// Package commands provides model commands.
//
// Purpose:
//
//	Model lifecycle: list installed models with group filtering and
//	semver-aware sorting, show model detail including ports, and install a
//	model from a directory or pre-built archive with manifest override.
package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/audit"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/output"
	"github.com/eratosio/as-client-go/internal/semver"
)

// ModelCommand creates the model command group.
func ModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage models",
		Long:  "Manage models: list, get, install",
	}

	cmd.AddCommand(modelListCommand())
	cmd.AddCommand(modelGetCommand())
	cmd.AddCommand(modelInstallCommand())

	return cmd
}

func modelListCommand() *cobra.Command {
	var flagSkip int
	var flagLimit int
	var flagAll bool
	var flagPageSize int
	var flagGroups []string
	var flagSort string
	var flagVersion string
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List models",
		Long:  "List installed models with structured output (table, json, csv)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelList(cmd, args, flagSkip, flagLimit, flagAll, flagPageSize,
				flagGroups, flagSort, flagVersion,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().IntVar(&flagSkip, "skip", 0, "Number of results to skip")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of results to return")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Fetch every page of results")
	cmd.Flags().IntVar(&flagPageSize, "page-size", 0, "Page size when fetching every page (requires --all)")
	cmd.Flags().StringSliceVar(&flagGroups, "groups", nil, "Restrict to models in the given group IDs")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort order: name, version")
	cmd.Flags().StringVar(&flagVersion, "version", "", "Semver constraint to filter versions, e.g. '>=1.2.0'")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runModelList(cmd *cobra.Command, args []string, flagSkip, flagLimit int, flagAll bool, flagPageSize int,
	flagGroups []string, flagSort, flagVersion string,
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

	switch flagSort {
	case "", "name", "version":
	default:
		return errors.NewUsageError(fmt.Sprintf("unknown sort order %q (expected name or version)", flagSort))
	}

	var constraint semver.Constraint
	haveConstraint := false
	if flagVersion != "" {
		constraint, err = semver.ParseConstraint(flagVersion)
		if err != nil {
			return errors.NewUsageError(fmt.Sprintf("invalid version constraint: %v", err))
		}
		haveConstraint = true
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	var models []asclient.Model
	if flagAll {
		err = client.ForEachModel(cmd.Context(), flagPageSize, flagGroups, func(m asclient.Model) error {
			models = append(models, m)
			return nil
		})
	} else {
		models, _, err = client.ListModels(cmd.Context(), asclient.ListModelsOptions{
			ListOptions: asclient.ListOptions{Skip: flagSkip, Limit: flagLimit},
			GroupIDs:    flagGroups,
		})
	}
	if err != nil {
		return wrapAPIError("list models", cfg.BaseURL, err)
	}

	if haveConstraint {
		filtered := models[:0]
		for _, m := range models {
			if semver.SatisfiesString(m.Version, constraint) {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}

	switch flagSort {
	case "name":
		sort.SliceStable(models, func(i, j int) bool {
			return models[i].Name < models[j].Name
		})
	case "version":
		sort.SliceStable(models, func(i, j int) bool {
			return semver.CompareStrings(models[i].Version, models[j].Version) < 0
		})
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(models)
	} else if cfg.OutputFormat == "csv" {
		headers := []string{"id", "name", "version", "organisationid", "groupids"}
		var rows [][]string
		for _, m := range models {
			rows = append(rows, []string{
				m.ID,
				m.Name,
				m.Version,
				m.OrganisationID,
				strings.Join(m.GroupIDs, " "),
			})
		}
		return output.PrintCSV(headers, rows)
	} else {
		headers := []string{"ID", "Name", "Version", "Organisation", "Groups"}
		var rows [][]string
		for _, m := range models {
			rows = append(rows, []string{
				m.ID,
				m.Name,
				m.Version,
				m.OrganisationID,
				strings.Join(m.GroupIDs, " "),
			})
		}
		if len(rows) == 0 && !cfg.Quiet {
			fmt.Println("No models found.")
			return nil
		}
		return output.PrintTable(headers, rows)
	}
}

func modelGetCommand() *cobra.Command {
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "get <model-id>",
		Short: "Show model details",
		Long:  "Show the detail of an installed model including its ports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelGet(cmd, args, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runModelGet(cmd *cobra.Command, args []string, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
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

	model, err := client.GetModel(cmd.Context(), args[0])
	if err != nil {
		return wrapAPIError("get model", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		// Ports are lifted out of the wire envelope, so marshal them back
		// in explicitly.
		return output.PrintJSON(map[string]interface{}{
			"id":             model.ID,
			"name":           model.Name,
			"version":        model.Version,
			"description":    model.Description,
			"organisationid": model.OrganisationID,
			"groupids":       model.GroupIDs,
			"ports":          model.Ports,
		})
	}

	fmt.Printf("Model: %s\n", model.ID)
	fmt.Printf("  Name: %s\n", model.Name)
	if model.Version != "" {
		fmt.Printf("  Version: %s\n", model.Version)
	}
	if model.Description != "" {
		fmt.Printf("  Description: %s\n", model.Description)
	}
	if model.OrganisationID != "" {
		fmt.Printf("  Organisation: %s\n", model.OrganisationID)
	}
	if len(model.GroupIDs) > 0 {
		fmt.Printf("  Groups: %s\n", strings.Join(model.GroupIDs, ", "))
	}

	if len(model.Ports) > 0 {
		fmt.Println()
		headers := []string{"Port", "Direction", "Type", "Required"}
		var rows [][]string
		for _, p := range model.Ports {
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

func modelInstallCommand() *cobra.Command {
	var flagManifest string
	var flagIncludeHidden bool
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "install <path>",
		Short: "Install a model",
		Long:  "Install a model from a directory, zip file or tar/gzip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelInstall(cmd, args, flagManifest, flagIncludeHidden,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagManifest, "manifest", "", "Manifest file overriding the one in the model directory")
	cmd.Flags().BoolVar(&flagIncludeHidden, "include-hidden", false, "Include hidden files when packing a directory")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runModelInstall(cmd *cobra.Command, args []string, flagManifest string, flagIncludeHidden bool,
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

	path := args[0]
	opts := asclient.InstallOptions{IncludeHidden: flagIncludeHidden}

	if flagManifest != "" {
		manifest, err := os.ReadFile(flagManifest)
		if err != nil {
			return errors.NewValidationError(
				fmt.Sprintf("failed to read manifest: %v", err),
				"Verify the manifest path is correct and readable.",
			)
		}
		opts.Manifest = manifest
	}

	if cfg.Verbose && !cfg.Quiet {
		opts.OnFile = func(relPath string) {
			fmt.Fprintf(os.Stderr, "  adding %s\n", relPath)
		}
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

	if !cfg.Quiet {
		fmt.Printf("Installing model from %s\n", path)
	}

	result, err := client.InstallModel(cmd.Context(), path, opts)
	if err != nil {
		logAudit(auditLogger, audit.Operation{
			Type:       "model_install",
			Command:    fmt.Sprintf("model install %s", path),
			Parameters: map[string]interface{}{"path": path},
			Outcome:    "failure",
			Duration:   time.Since(startTime),
			Error:      err,
		})
		return wrapAPIError("install model", cfg.BaseURL, err)
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "model_install",
		Command:    fmt.Sprintf("model install %s", path),
		Parameters: map[string]interface{}{"path": path, "modelId": result.ModelID},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(result)
	}

	if !cfg.Quiet {
		fmt.Println("Model installed successfully:")
		fmt.Printf("  Model ID: %s\n", result.ModelID)
		if result.Status != "" {
			fmt.Printf("  Status: %s\n", result.Status)
		}
		if result.Model != nil {
			fmt.Printf("  Name: %s\n", result.Model.Name)
			if result.Model.Version != "" {
				fmt.Printf("  Version: %s\n", result.Model.Version)
			}
		}
	}
	return nil
}
