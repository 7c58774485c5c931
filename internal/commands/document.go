// Package commands provides document commands.
//
// Purpose:
//
//	Document access: read a document's metadata and value, export the raw
//	value to a file for piping into other tools, and create or update
//	document values with ownership for newly created documents.
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/audit"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/output"
)

// DocumentCommand creates the document command group.
func DocumentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Manage documents",
		Long:  "Manage documents: get, set",
	}

	cmd.AddCommand(documentGetCommand())
	cmd.AddCommand(documentSetCommand())

	return cmd
}

func documentGetCommand() *cobra.Command {
	var flagRaw bool
	var flagOutput string
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "get <document-id>",
		Short: "Show a document",
		Long:  "Show a document's metadata and value, print the raw value, or write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentGet(cmd, args, flagRaw, flagOutput,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().BoolVar(&flagRaw, "raw", false, "Print only the document value")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the raw value to a file")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runDocumentGet(cmd *cobra.Command, args []string, flagRaw bool, flagOutput string,
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

	if flagRaw && flagOutput != "" {
		return errors.NewUsageError("--raw and --output cannot both be given")
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	documentID := args[0]

	// Raw value paths skip the metadata fetch.
	if flagRaw || flagOutput != "" {
		value, err := client.GetDocumentValue(cmd.Context(), documentID)
		if err != nil {
			return wrapAPIError("get document", cfg.BaseURL, err)
		}

		if flagOutput != "" {
			// Document values may hold credentials or private data.
			if err := os.WriteFile(flagOutput, []byte(value), 0600); err != nil {
				return errors.NewOperationError(
					fmt.Sprintf("failed to write output file: %v", err),
					"Verify the output path is writable.",
				)
			}
			if !cfg.Quiet {
				fmt.Printf("Document value written to %s\n", flagOutput)
			}
			return nil
		}

		fmt.Print(value)
		return nil
	}

	doc, err := client.GetDocument(cmd.Context(), documentID)
	if err != nil {
		return wrapAPIError("get document", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(doc)
	}

	fmt.Printf("Document: %s\n", doc.ID)
	if doc.OrganisationID != "" {
		fmt.Printf("  Organisation: %s\n", doc.OrganisationID)
	}
	if len(doc.GroupIDs) > 0 {
		fmt.Printf("  Groups: %s\n", strings.Join(doc.GroupIDs, ", "))
	}
	fmt.Printf("  Value: %s\n", doc.Value)
	return nil
}

func documentSetCommand() *cobra.Command {
	var flagValue string
	var flagFile string
	var flagOrganisation string
	var flagGroups []string
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "set <document-id>",
		Short: "Set a document value",
		Long:  "Set a document's value from a flag or file, creating the document when it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentSet(cmd, args, flagValue, flagFile, flagOrganisation, flagGroups,
				flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagValue, "value", "", "Document value")
	cmd.Flags().StringVar(&flagFile, "file", "", "File to read the document value from")
	cmd.Flags().StringVar(&flagOrganisation, "organisation", "", "Owning organisation for a newly created document")
	cmd.Flags().StringSliceVar(&flagGroups, "groups", nil, "Owning group IDs for a newly created document")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runDocumentSet(cmd *cobra.Command, args []string, flagValue, flagFile, flagOrganisation string, flagGroups []string,
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
	if flagValue == "" && flagFile == "" {
		return errors.NewValidationError(
			"--value or --file is required",
			"Provide the document value inline with --value, or from a file with --file",
		)
	}
	if flagValue != "" && flagFile != "" {
		return errors.NewUsageError("--value and --file cannot both be given")
	}

	value := flagValue
	if flagFile != "" {
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return errors.NewValidationError(
				fmt.Sprintf("failed to read file: %v", err),
				"Verify the file path is correct and readable.",
			)
		}
		value = string(data)
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

	documentID := args[0]

	doc, err := client.SetDocumentValue(cmd.Context(), documentID, value, asclient.SetDocumentOptions{
		OrganisationID: flagOrganisation,
		GroupIDs:       flagGroups,
	})
	if err != nil {
		logAudit(auditLogger, audit.Operation{
			Type:       "document_set",
			Command:    fmt.Sprintf("document set %s", documentID),
			Parameters: map[string]interface{}{"documentId": documentID},
			Outcome:    "failure",
			Duration:   time.Since(startTime),
			Error:      err,
		})
		return wrapAPIError("set document value", cfg.BaseURL, err)
	}

	// Audit logging
	logAudit(auditLogger, audit.Operation{
		Type:       "document_set",
		Command:    fmt.Sprintf("document set %s", documentID),
		Parameters: map[string]interface{}{"documentId": documentID, "bytes": len(value)},
		Outcome:    "success",
		Duration:   time.Since(startTime),
	})

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(doc)
	}

	if !cfg.Quiet {
		fmt.Println("Document updated successfully:")
		fmt.Printf("  Document ID: %s\n", doc.ID)
		if doc.OrganisationID != "" {
			fmt.Printf("  Organisation: %s\n", doc.OrganisationID)
		}
		if len(doc.GroupIDs) > 0 {
			fmt.Printf("  Groups: %s\n", strings.Join(doc.GroupIDs, ", "))
		}
	}
	return nil
}
