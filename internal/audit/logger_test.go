// Package audit provides tests for audit logging.
package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	err := logger.LogOperation(Operation{
		Type:    "workflow_delete",
		Command: "workflow delete wf-1 --confirm",
		Parameters: map[string]interface{}{
			"workflow_id": "wf-1",
			"api_key":     "abcdef123456",
		},
		Outcome:  "success",
		Duration: 1200 * time.Millisecond,
	})
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "workflow_delete", entry.Operation)
	assert.Equal(t, "workflow delete wf-1 --confirm", entry.Command)
	assert.Equal(t, "success", entry.Outcome)
	assert.Equal(t, "1.2s", entry.Duration)
	assert.NotEmpty(t, entry.Timestamp)

	assert.Equal(t, "wf-1", entry.Parameters["workflow_id"])
	assert.Equal(t, "***3456", entry.Parameters["api_key"])
}

func TestLogger_EmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	require.NoError(t, logger.LogOperation(Operation{Type: "model_install", Outcome: "success"}))
	require.NoError(t, logger.LogOperation(Operation{Type: "job_create", Outcome: "failure"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "one JSON object per line")

	for _, line := range lines {
		var entry LogEntry
		assert.NoError(t, json.Unmarshal([]byte(line), &entry))
	}
}

func TestLogger_MasksShortSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	err := logger.LogOperation(Operation{
		Type: "document_set",
		Parameters: map[string]interface{}{
			"password": "abc",
			"attempts": 2,
		},
		Outcome: "success",
	})
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "***", entry.Parameters["password"])
	assert.Equal(t, float64(2), entry.Parameters["attempts"])
}

func TestLogger_RecordsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	err := logger.LogOperation(Operation{
		Type:    "model_install",
		Outcome: "failure",
		Error:   os.ErrNotExist,
	})
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "file does not exist", entry.Error)
}

func TestOpenLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	f, err := OpenLog(path)
	require.NoError(t, err)
	require.NoError(t, NewLogger(f).LogOperation(Operation{Type: "job_create", Outcome: "success"}))
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Appends rather than truncating.
	f, err = OpenLog(path)
	require.NoError(t, err)
	require.NoError(t, NewLogger(f).LogOperation(Operation{Type: "job_create", Outcome: "success"}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "job_create"))
}
