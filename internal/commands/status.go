// Package commands provides the status command.
//
// Purpose:
//
//	Connectivity check: pings the configured Analysis Services endpoint and
//	reports reachability plus the configuration source in use, so operators
//	can verify credentials and endpoint resolution before running workflows.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/output"
)

// StatusCommand creates the status command.
func StatusCommand() *cobra.Command {
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check API reachability",
		Long:  "Ping the Analysis Services API and report reachability and configuration source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
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

	configSource := cfg.ConfigFile
	if configSource == "" {
		configSource = "defaults and environment"
	}

	if err := client.Ping(cmd.Context()); err != nil {
		return wrapAPIError("reach the API", client.BaseURL(), err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(map[string]interface{}{
			"endpoint":  client.BaseURL(),
			"reachable": true,
			"config":    configSource,
		})
	}

	if !cfg.Quiet {
		fmt.Println("Analysis Services API reachable")
		fmt.Printf("  Endpoint: %s\n", client.BaseURL())
		fmt.Printf("  Config:   %s\n", configSource)
	}
	return nil
}
