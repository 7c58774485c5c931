// Package commands provides tests for model commands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eratosio/as-client-go/internal/errors"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data), runErr
}

func TestModelCommand(t *testing.T) {
	cmd := ModelCommand()
	require.NotNil(t, cmd, "ModelCommand() returned nil")

	assert.Equal(t, "model", cmd.Use)

	listCmd, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err, "list command should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("groups"), "groups flag should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("sort"), "sort flag should exist")
	assert.NotNil(t, listCmd.Flags().Lookup("version"), "version flag should exist")

	installCmd, _, err := cmd.Find([]string{"install"})
	require.NoError(t, err, "install command should exist")
	assert.NotNil(t, installCmd.Flags().Lookup("manifest"), "manifest flag should exist")
	assert.NotNil(t, installCmd.Flags().Lookup("include-hidden"), "include-hidden flag should exist")
}

func TestModelListCommand_Execute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"_embedded": {"models": [
				{"id": "m1", "name": "Beta", "version": "2.0.0"},
				{"id": "m2", "name": "Alpha", "version": "1.0.0"}
			]},
			"count": 2, "totalcount": 2
		}`)
	}))
	defer srv.Close()

	cmd := ModelCommand()
	cmd.SetArgs([]string{"list", "--api-url", srv.URL, "--format", "json", "--sort", "name"})

	out, err := captureStdout(t, cmd.Execute)
	require.NoError(t, err)

	var payload struct {
		Success bool `json:"success"`
		Data    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.True(t, payload.Success)
	require.Len(t, payload.Data, 2)
	assert.Equal(t, "Alpha", payload.Data[0].Name)
	assert.Equal(t, "Beta", payload.Data[1].Name)
}

func TestModelListCommand_VersionSortAndFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"_embedded": {"models": [
				{"id": "m1", "name": "Rainfall", "version": "1.10.0"},
				{"id": "m2", "name": "Rainfall", "version": "1.9.0"},
				{"id": "m3", "name": "Rainfall", "version": "0.4.0"}
			]},
			"count": 3, "totalcount": 3
		}`)
	}))
	defer srv.Close()

	cmd := ModelCommand()
	cmd.SetArgs([]string{"list", "--api-url", srv.URL, "--format", "json",
		"--sort", "version", "--version", ">=1.0.0"})

	out, err := captureStdout(t, cmd.Execute)
	require.NoError(t, err)

	var payload struct {
		Data []struct {
			Version string `json:"version"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Data, 2, "0.4.0 should be filtered out")
	assert.Equal(t, "1.9.0", payload.Data[0].Version)
	assert.Equal(t, "1.10.0", payload.Data[1].Version, "1.10.0 sorts after 1.9.0 numerically")
}

func TestModelListCommand_RejectsSkipWithAll(t *testing.T) {
	cmd := ModelCommand()
	cmd.SetArgs([]string{"list", "--api-url", "http://localhost:9", "--all", "--skip", "5"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeUsage, cliErr.Code)
	assert.Equal(t, 2, cliErr.ExitCode)
}

func TestModelListCommand_RejectsUnknownSort(t *testing.T) {
	cmd := ModelCommand()
	cmd.SetArgs([]string{"list", "--api-url", "http://localhost:9", "--sort", "size"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeUsage, cliErr.Code)
	assert.Equal(t, 2, cliErr.ExitCode)
}
