// Package commands provides tests for command tree structure and error
// mapping.
package commands

import (
	"fmt"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eratosio/as-client-go/asclient"
	"github.com/eratosio/as-client-go/internal/errors"
)

func TestStatusCommand(t *testing.T) {
	cmd := StatusCommand()
	require.NotNil(t, cmd, "StatusCommand() returned nil")

	assert.Equal(t, "status", cmd.Use)
	assert.NotNil(t, cmd.RunE, "command should have RunE handler")

	apiURLFlag := cmd.Flags().Lookup("api-url")
	assert.NotNil(t, apiURLFlag, "api-url flag should exist")

	apiKeyFlag := cmd.Flags().Lookup("api-key")
	assert.NotNil(t, apiKeyFlag, "api-key flag should exist")
}

func TestVersionCommand(t *testing.T) {
	cmd := VersionCommand(BuildInfo{Version: "1.2.3"})
	require.NotNil(t, cmd, "VersionCommand() returned nil")

	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE, "command should have RunE handler")
}

func TestBaseImageCommand(t *testing.T) {
	cmd := BaseImageCommand()
	require.NotNil(t, cmd, "BaseImageCommand() returned nil")

	assert.Equal(t, "base-image", cmd.Use)

	listCmd, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err, "list command should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("skip"), "skip flag should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("limit"), "limit flag should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("all"), "all flag should exist")

	getCmd, _, err := cmd.Find([]string{"get"})
	require.NoError(t, err, "get command should exist")
	assert.NotNil(t, getCmd.RunE, "get command should have RunE handler")
}

func TestWrapAPIError_Authentication(t *testing.T) {
	apiErr := &asclient.RequestError{APIError: asclient.APIError{
		StatusCode: 401,
		Message:    "invalid api key",
	}}

	err := wrapAPIError("list models", "https://senaps.io/api/analysis", fmt.Errorf("list models: %w", apiErr))

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeAuthenticationFailed, cliErr.Code)
	assert.Equal(t, 1, cliErr.ExitCode)
}

func TestWrapAPIError_NotFound(t *testing.T) {
	apiErr := &asclient.RequestError{APIError: asclient.APIError{
		StatusCode: 404,
		Message:    "no such model",
	}}

	err := wrapAPIError("get model", "https://senaps.io/api/analysis", fmt.Errorf("get model m-1: %w", apiErr))

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeOperationFailed, cliErr.Code)
	assert.Equal(t, 1, cliErr.ExitCode)
	assert.Contains(t, cliErr.Details, "get model")
}

func TestWrapAPIError_GatewayStatusesAreUnavailable(t *testing.T) {
	apiErr := &asclient.ServerError{APIError: asclient.APIError{StatusCode: 503}}

	err := wrapAPIError("list models", "https://senaps.io/api/analysis", fmt.Errorf("list models: %w", apiErr))

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeServiceUnavailable, cliErr.Code)
	assert.Equal(t, 3, cliErr.ExitCode)
}

func TestWrapAPIError_InternalServerError(t *testing.T) {
	apiErr := &asclient.ServerError{APIError: asclient.APIError{StatusCode: 500}}

	err := wrapAPIError("run workflow", "https://senaps.io/api/analysis", fmt.Errorf("run workflow wf-1: %w", apiErr))

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeOperationFailed, cliErr.Code)
	assert.Equal(t, 1, cliErr.ExitCode)
}

func TestWrapAPIError_TransportFailure(t *testing.T) {
	transportErr := &url.Error{Op: "Get", URL: "http://localhost:9", Err: io.EOF}

	err := wrapAPIError("list models", "http://localhost:9", fmt.Errorf("request failed: %w", transportErr))

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeServiceUnavailable, cliErr.Code)
	assert.Equal(t, 3, cliErr.ExitCode)
	assert.Contains(t, cliErr.Details, "http://localhost:9")
}
