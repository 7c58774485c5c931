// Command as-client is the command-line client for the Analysis Services API.
//
// Purpose:
//
//	This binary lets operators and modellers work with Analysis Services
//	from the shell: inspect base images, install and inspect models, upload
//	and run workflows, submit and wait on jobs, and read or write documents.
//	All operations support structured output (table/JSON/CSV) and exit codes
//	suitable for scripting.
//
// Dependencies:
//   - internal/commands: Cobra command implementations
//   - internal/config: Configuration loading from flags/environment/config files
//   - internal/errors: Structured errors with stable exit codes
//
// Key Responsibilities:
//   - Initialize CLI root command with Cobra
//   - Register all command subcommands (status, version, base-image, model, workflow, job, document)
//   - Map structured errors onto process exit codes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/commands"
	"github.com/eratosio/as-client-go/internal/errors"
)

// Overridden at link time via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if version == "dev" {
		version = asclient.Version
	}

	rootCmd := &cobra.Command{
		Use:   "as-client",
		Short: "Client for the Analysis Services API",
		Long: `as-client is a command-line client for the Analysis Services API:
inspect base images, install and inspect models, upload and run workflows,
submit jobs, and read or write documents.`,
		Version: version,

		// Errors are printed once, below, with their recovery suggestions.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Register subcommands
	rootCmd.AddCommand(commands.StatusCommand())
	rootCmd.AddCommand(commands.VersionCommand(commands.BuildInfo{
		Version:   version,
		BuildTime: buildTime,
		GitCommit: gitCommit,
	}))
	rootCmd.AddCommand(commands.BaseImageCommand())
	rootCmd.AddCommand(commands.ModelCommand())
	rootCmd.AddCommand(commands.WorkflowCommand())
	rootCmd.AddCommand(commands.JobCommand())
	rootCmd.AddCommand(commands.DocumentCommand())

	if err := rootCmd.Execute(); err != nil {
		// Handle structured CLI errors with exit codes
		if cliErr, ok := err.(*errors.CLIError); ok {
			fmt.Fprintf(os.Stderr, "%v\n", cliErr)
			os.Exit(cliErr.ExitCode)
		}

		// Default to exit code 1 for unknown errors
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
