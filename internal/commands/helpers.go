// Package commands implements the as-client command tree.
//
// Purpose:
//
//	Shared plumbing for all command groups: API client construction from
//	resolved configuration, mapping client errors onto structured CLI errors
//	with distinct exit codes, and audit log setup.
//
// Dependencies:
//   - asclient: Analysis Services API client
//   - internal/config: configuration loading
//   - internal/errors: structured CLI errors with exit codes
//   - internal/logging: zap logger construction with credential redaction
package commands

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/audit"
	"github.com/eratosio/as-client-go/internal/config"
	"github.com/eratosio/as-client-go/internal/errors"
	"github.com/eratosio/as-client-go/internal/logging"
)

// newAPIClient builds an Analysis Services client from resolved
// configuration. The caller has already validated that cfg.BaseURL is set.
func newAPIClient(cfg *config.Config) (*asclient.Client, error) {
	logLevel := "warn"
	if cfg.Verbose {
		logLevel = "debug"
	}
	if cfg.Quiet {
		logLevel = "error"
	}

	logger, err := logging.New(logging.Config{AppName: "as-client", LogLevel: logLevel})
	if err != nil {
		return nil, errors.NewOperationError(
			fmt.Sprintf("failed to initialise logging: %v", err),
			"Check the LOG_LEVEL environment variable.",
		)
	}

	if cfg.Verbose {
		logger.Debug("resolved configuration",
			zap.Any("config", logging.RedactFields(map[string]interface{}{
				"base_url":    cfg.BaseURL,
				"api_key":     cfg.APIKey,
				"username":    cfg.Username,
				"format":      cfg.OutputFormat,
				"config_file": cfg.ConfigFile,
			})))
	}

	opts := []asclient.Option{
		asclient.WithTimeout(time.Duration(cfg.RequestTimeout) * time.Second),
		asclient.WithRetry(asclient.RetryConfig{
			MaxAttempts:  cfg.MaxRetries,
			InitialDelay: time.Duration(cfg.InitialDelay) * time.Second,
			MaxDelay:     time.Duration(cfg.MaxDelay) * time.Second,
		}),
		asclient.WithLogger(logger.Logger),
	}
	if cfg.APIKey != "" {
		opts = append(opts, asclient.WithAPIKey(cfg.APIKey))
	}
	if cfg.Username != "" || cfg.Password != "" {
		opts = append(opts, asclient.WithBasicAuth(cfg.Username, cfg.Password))
	}

	client, err := asclient.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("invalid API base URL: %v", err),
			"The base URL must be absolute, e.g. https://senaps.io/api/analysis.",
		)
	}
	return client, nil
}

// wrapAPIError maps a client error onto a structured CLI error so scripts
// can branch on the exit code: authentication failures and unreachable
// endpoints get dedicated codes, everything else is an operation failure.
func wrapAPIError(action, endpoint string, err error) error {
	var reqErr *asclient.RequestError
	if stderrors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewAuthenticationError(reqErr.Message)
		}
		return errors.NewOperationError(
			fmt.Sprintf("failed to %s: %v", action, err),
			"Verify the resource ID is correct and you have permission to access it.",
		)
	}

	var srvErr *asclient.ServerError
	if stderrors.As(err, &srvErr) {
		switch srvErr.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailableError(endpoint)
		}
		return errors.NewOperationError(
			fmt.Sprintf("failed to %s: %v", action, err),
			"The service reported an internal error. Retry, or check the service status.",
		)
	}

	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return errors.NewServiceUnavailableError(endpoint)
	}

	return errors.NewOperationError(fmt.Sprintf("failed to %s: %v", action, err), "")
}

// newAuditLogger opens the configured audit log. Auditing is disabled when
// no log path is configured; logAudit treats the nil logger as a no-op. The
// returned close function flushes the log file.
func newAuditLogger(cfg *config.Config) (*audit.Logger, func(), error) {
	if cfg.AuditLog == "" {
		return nil, func() {}, nil
	}

	f, err := audit.OpenLog(cfg.AuditLog)
	if err != nil {
		return nil, nil, errors.NewOperationError(
			fmt.Sprintf("failed to open audit log: %v", err),
			"Check the audit.log path in your configuration file.",
		)
	}
	return audit.NewLogger(f), func() { f.Close() }, nil
}

// logAudit writes an audit entry when auditing is enabled.
func logAudit(logger *audit.Logger, op audit.Operation) {
	if logger == nil {
		return
	}
	_ = logger.LogOperation(op)
}
