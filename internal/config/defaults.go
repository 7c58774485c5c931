package config

import (
	"github.com/spf13/viper"
)

// ApplyDefaults sets default configuration values in the provided Viper instance.
func ApplyDefaults(v *viper.Viper) {
	// API endpoint (no default host: the API base URL must be supplied)
	v.SetDefault("api.base-url", "")

	// Output settings
	v.SetDefault("defaults.output-format", "table") // table, json, csv
	v.SetDefault("defaults.verbose", false)
	v.SetDefault("defaults.quiet", false)

	// Retry settings
	v.SetDefault("retry.max-attempts", 3)
	v.SetDefault("retry.initial-delay", 1) // seconds
	v.SetDefault("retry.max-delay", 4)     // seconds

	// Timeouts
	v.SetDefault("timeouts.request", 30)          // seconds
	v.SetDefault("timeouts.job-poll-interval", 5) // seconds

	// Progress indicators
	v.SetDefault("progress.enabled", true)

	// Audit log (disabled unless a path is configured)
	v.SetDefault("audit.log", "")
}
