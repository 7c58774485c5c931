// Package config provides configuration management for the as-client CLI.
//
// Purpose:
//
//	Load configuration from multiple sources: environment variables, config
//	files (YAML), and command-line flags. Uses Viper for configuration
//	management with clear precedence: flags > environment variables > config
//	file > defaults.
//
// Dependencies:
//   - github.com/spf13/viper: Configuration management
//
// Configuration Sources:
//   - Environment variables: AS_CLIENT_* prefix (e.g. AS_CLIENT_API_BASE_URL);
//     SENAPS_API_KEY is accepted as an alias for the API key
//   - Config file: ~/.as-client/config.yaml or ./config.yaml
//   - Command-line flags: take precedence over all other sources
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all CLI configuration.
type Config struct {
	// API endpoint
	BaseURL string

	// Authentication
	APIKey   string
	Username string
	Password string

	// Output settings
	OutputFormat string // table, json, csv
	Verbose      bool
	Quiet        bool

	// Retry settings
	MaxRetries   int
	InitialDelay int // seconds
	MaxDelay     int // seconds

	// Timeouts
	RequestTimeout  int // seconds
	JobPollInterval int // seconds

	// Progress indicators
	Progress bool

	// Audit log file path (audit logging disabled when empty)
	AuditLog string

	// Config file path (for discovery)
	ConfigFile string
}

// Load loads configuration from all sources with proper precedence.
func Load() (*Config, error) {
	v := viper.New()

	ApplyDefaults(v)

	v.SetEnvPrefix("AS_CLIENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// SENAPS_API_KEY is the conventional environment variable for Analysis
	// Services credentials; accept it alongside the prefixed form.
	if err := v.BindEnv("auth.api-key", "AS_CLIENT_AUTH_API_KEY", "SENAPS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	// Config file discovery
	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".as-client"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Read config file (optional - ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:         v.GetString("api.base-url"),
		APIKey:          v.GetString("auth.api-key"),
		Username:        v.GetString("auth.username"),
		Password:        v.GetString("auth.password"),
		OutputFormat:    v.GetString("defaults.output-format"),
		Verbose:         v.GetBool("defaults.verbose"),
		Quiet:           v.GetBool("defaults.quiet"),
		MaxRetries:      v.GetInt("retry.max-attempts"),
		InitialDelay:    v.GetInt("retry.initial-delay"),
		MaxDelay:        v.GetInt("retry.max-delay"),
		RequestTimeout:  v.GetInt("timeouts.request"),
		JobPollInterval: v.GetInt("timeouts.job-poll-interval"),
		Progress:        v.GetBool("progress.enabled"),
		AuditLog:        v.GetString("audit.log"),
		ConfigFile:      v.ConfigFileUsed(),
	}

	return cfg, nil
}
