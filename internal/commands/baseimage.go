// Package commands provides base image commands.
//
// Purpose:
//
//	Base image inspection: list the runtime environments models can be
//	installed on, and show the detail of a single image including its
//	entrypoint template and host environment.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/output"
)

// BaseImageCommand creates the base-image command group.
func BaseImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base-image",
		Short: "Inspect base images",
		Long:  "Inspect base images: list, get",
	}

	cmd.AddCommand(baseImageListCommand())
	cmd.AddCommand(baseImageGetCommand())

	return cmd
}

func baseImageListCommand() *cobra.Command {
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
		Short: "List base images",
		Long:  "List base images with structured output (table, json, csv)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaseImageList(cmd, args, flagSkip, flagLimit, flagAll, flagPageSize,
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

func runBaseImageList(cmd *cobra.Command, args []string, flagSkip, flagLimit int, flagAll bool, flagPageSize int,
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

	var images []asclient.BaseImage
	if flagAll {
		err = client.ForEachBaseImage(cmd.Context(), flagPageSize, func(img asclient.BaseImage) error {
			images = append(images, img)
			return nil
		})
	} else {
		images, _, err = client.ListBaseImages(cmd.Context(), asclient.ListOptions{Skip: flagSkip, Limit: flagLimit})
	}
	if err != nil {
		return wrapAPIError("list base images", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(images)
	} else if cfg.OutputFormat == "csv" {
		headers := []string{"id", "name", "runtimetype", "tags"}
		var rows [][]string
		for _, img := range images {
			rows = append(rows, []string{
				img.ID,
				img.Name,
				img.RuntimeType,
				strings.Join(img.Tags, " "),
			})
		}
		return output.PrintCSV(headers, rows)
	} else {
		headers := []string{"ID", "Name", "Runtime Type", "Tags"}
		var rows [][]string
		for _, img := range images {
			rows = append(rows, []string{
				img.ID,
				img.Name,
				img.RuntimeType,
				strings.Join(img.Tags, " "),
			})
		}
		if len(rows) == 0 && !cfg.Quiet {
			fmt.Println("No base images found.")
			return nil
		}
		return output.PrintTable(headers, rows)
	}
}

func baseImageGetCommand() *cobra.Command {
	var flagFormat string
	var flagVerbose bool
	var flagQuiet bool
	var flagAPIURL string
	var flagAPIKey string

	cmd := &cobra.Command{
		Use:   "get <image-id>",
		Short: "Show base image details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaseImageGet(cmd, args, flagFormat, flagVerbose, flagQuiet, flagAPIURL, flagAPIKey)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format: table, json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Analysis Services API base URL (overrides config)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for authentication (overrides config)")

	return cmd
}

func runBaseImageGet(cmd *cobra.Command, args []string, flagFormat string, flagVerbose, flagQuiet bool, flagAPIURL, flagAPIKey string) error {
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

	image, err := client.GetBaseImage(cmd.Context(), args[0])
	if err != nil {
		return wrapAPIError("get base image", cfg.BaseURL, err)
	}

	// Format output
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(image)
	}

	fmt.Printf("Base image: %s\n", image.ID)
	fmt.Printf("  Name: %s\n", image.Name)
	if image.Description != "" {
		fmt.Printf("  Description: %s\n", image.Description)
	}
	fmt.Printf("  Runtime type: %s\n", image.RuntimeType)
	if image.ModelRoot != "" {
		fmt.Printf("  Model root: %s\n", image.ModelRoot)
	}
	if image.ModelUser != "" {
		fmt.Printf("  Model user: %s\n", image.ModelUser)
	}
	if image.EntrypointTemplate != "" {
		fmt.Printf("  Entrypoint template: %s\n", image.EntrypointTemplate)
	}
	if len(image.SupportedProviders) > 0 {
		fmt.Printf("  Supported providers: %s\n", strings.Join(image.SupportedProviders, ", "))
	}
	if image.HostEnvironment != nil {
		fmt.Printf("  Host environment: %s/%s\n", image.HostEnvironment.OperatingSystem, image.HostEnvironment.Architecture)
	}
	if len(image.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(image.Tags, ", "))
	}
	return nil
}
