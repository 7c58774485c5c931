// Package commands provides tests for document commands.
package commands

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eratosio/as-client-go/internal/errors"
)

func TestDocumentCommand(t *testing.T) {
	cmd := DocumentCommand()
	require.NotNil(t, cmd, "DocumentCommand() returned nil")

	assert.Equal(t, "document", cmd.Use)

	getCmd, _, err := cmd.Find([]string{"get"})
	require.NoError(t, err, "get command should exist")
	assert.NotNil(t, getCmd.Flags().Lookup("raw"), "raw flag should exist")
	assert.NotNil(t, getCmd.Flags().Lookup("output"), "output flag should exist")

	setCmd, _, err := cmd.Find([]string{"set"})
	require.NoError(t, err, "set command should exist")
	assert.NotNil(t, setCmd.Flags().Lookup("value"), "value flag should exist")
	assert.NotNil(t, setCmd.Flags().Lookup("file"), "file flag should exist")
	assert.NotNil(t, setCmd.Flags().Lookup("organisation"), "organisation flag should exist")
	assert.NotNil(t, setCmd.Flags().Lookup("groups"), "groups flag should exist")
}

func TestDocumentGetCommand_Raw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/doc-1/value" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "plain document value")
	}))
	defer srv.Close()

	cmd := DocumentCommand()
	cmd.SetArgs([]string{"get", "doc-1", "--raw", "--api-url", srv.URL})

	out, err := captureStdout(t, cmd.Execute)
	require.NoError(t, err)
	assert.Equal(t, "plain document value", out)
}

func TestDocumentGetCommand_Output(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "exported value")
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "doc.txt")

	cmd := DocumentCommand()
	cmd.SetArgs([]string{"get", "doc-1", "--output", outPath, "--quiet", "--api-url", srv.URL})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "exported value", string(data))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDocumentGetCommand_RejectsRawWithOutput(t *testing.T) {
	cmd := DocumentCommand()
	cmd.SetArgs([]string{"get", "doc-1", "--raw", "--output", "x.txt", "--api-url", "http://localhost:9"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeUsage, cliErr.Code)
}

func TestDocumentSetCommand_RequiresValue(t *testing.T) {
	cmd := DocumentCommand()
	cmd.SetArgs([]string{"set", "doc-1", "--api-url", "http://localhost:9"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	var cliErr *errors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, errors.ErrCodeValidationFailed, cliErr.Code)
	assert.Equal(t, 2, cliErr.ExitCode)
}
