// Package commands provides tests for job commands.
package commands

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eratosio/as-client-go/internal/errors"
)

func TestJobCommand(t *testing.T) {
	cmd := JobCommand()
	require.NotNil(t, cmd, "JobCommand() returned nil")

	assert.Equal(t, "job", cmd.Use)

	createCmd, _, err := cmd.Find([]string{"create"})
	require.NoError(t, err, "create command should exist")
	assert.NotNil(t, createCmd.Flags().Lookup("workflow-id"), "workflow-id flag should exist")
	assert.NotNil(t, createCmd.Flags().Lookup("wait"), "wait flag should exist")

	waitCmd, _, err := cmd.Find([]string{"wait"})
	require.NoError(t, err, "wait command should exist")
	assert.NotNil(t, waitCmd.Flags().Lookup("timeout"), "timeout flag should exist")
	assert.NotNil(t, waitCmd.Flags().Lookup("poll-interval"), "poll-interval flag should exist")
}

func TestJobCreateCommand_RequiresWorkflowID(t *testing.T) {
	cmd := JobCommand()
	cmd.SetArgs([]string{"create", "--api-url", "http://localhost:9"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeValidationFailed, cliErr.Code)
	assert.Equal(t, 2, cliErr.ExitCode)
}

func TestJobCreateCommand_TimeoutRequiresWait(t *testing.T) {
	cmd := JobCommand()
	cmd.SetArgs([]string{"create", "--workflow-id", "wf-1", "--timeout", "1m", "--api-url", "http://localhost:9"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeUsage, cliErr.Code)
}
