// Package commands provides the version command.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/output"
)

// BuildInfo carries build metadata injected at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// VersionCommand creates the version command.
func VersionCommand(build BuildInfo) *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(build, flagFormat)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "table", "Output format: table, json")

	return cmd
}

func runVersion(build BuildInfo, flagFormat string) error {
	if build.Version == "" || build.Version == "dev" {
		build.Version = asclient.Version
	}

	if flagFormat == "json" {
		return output.PrintJSON(map[string]interface{}{
			"version":   build.Version,
			"buildTime": build.BuildTime,
			"gitCommit": build.GitCommit,
		})
	}

	fmt.Printf("as-client version %s\n", build.Version)
	if build.BuildTime != "" && build.BuildTime != "unknown" {
		fmt.Printf("  Build time: %s\n", build.BuildTime)
	}
	if build.GitCommit != "" && build.GitCommit != "unknown" {
		fmt.Printf("  Git commit: %s\n", build.GitCommit)
	}
	return nil
}
