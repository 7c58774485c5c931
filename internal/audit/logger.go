// Package audit provides audit logging for mutating operations.
//
// Purpose:
//
//	Emit structured audit entries for mutating operations (model installs,
//	workflow uploads and deletions, job submissions, document writes) with
//	timestamp, command, parameters (masked where sensitive) and outcome.
//	Entries are JSON lines suitable for ingestion by log aggregation systems.
//
// Dependencies:
//   - encoding/json: Structured JSON log output
package audit

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

// Logger emits audit entries for mutating operations.
type Logger struct {
	output   *json.Encoder
	maskFunc func(string) string
}

// NewLogger creates a new audit logger writing JSON lines to w.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}

	return &Logger{
		output: json.NewEncoder(w),
		maskFunc: func(s string) string {
			// Mask credentials: show only last 4 characters or ***
			if len(s) <= 4 {
				return "***"
			}
			return "***" + s[len(s)-4:]
		},
	}
}

// OpenLog opens (or creates) an audit log file for appending. Audit entries
// may hold operation parameters, so the file is restricted to the owner.
func OpenLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

// LogEntry represents an audit log entry.
type LogEntry struct {
	Timestamp  string                 `json:"timestamp"`
	Operation  string                 `json:"operation"`
	Command    string                 `json:"command"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Outcome    string                 `json:"outcome"` // success, failure
	Duration   string                 `json:"duration,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// Operation represents an operation to be logged.
type Operation struct {
	Type       string                 // model_install, workflow_delete, job_create, etc.
	Command    string                 // Full command executed
	Parameters map[string]interface{} // Command parameters (will be masked)
	Outcome    string                 // success, failure
	Duration   time.Duration          // Operation duration
	Error      error                  // Error if operation failed
}

// LogOperation logs an operation with all required fields.
func (l *Logger) LogOperation(op Operation) error {
	entry := LogEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Operation:  op.Type,
		Command:    op.Command,
		Parameters: l.maskParameters(op.Parameters),
		Outcome:    op.Outcome,
	}

	if op.Duration > 0 {
		entry.Duration = op.Duration.String()
	}

	if op.Error != nil {
		entry.Error = op.Error.Error()
	}

	return l.output.Encode(entry)
}

// maskParameters masks sensitive values in parameters.
func (l *Logger) maskParameters(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}

	masked := make(map[string]interface{})
	sensitiveKeys := []string{"api_key", "apikey", "token", "password", "secret", "credential"}

	for k, v := range params {
		isSensitive := false
		lowerKey := strings.ToLower(k)
		for _, sensitive := range sensitiveKeys {
			if strings.Contains(lowerKey, sensitive) {
				isSensitive = true
				break
			}
		}

		if isSensitive && v != nil {
			if str, ok := v.(string); ok {
				masked[k] = l.maskFunc(str)
			} else {
				masked[k] = "***"
			}
		} else {
			masked[k] = v
		}
	}

	return masked
}
