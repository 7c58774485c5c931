// Package output provides tests for JSON output formatting.
package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	data := map[string]interface{}{
		"id": "wf-1",
	}

	if err := formatter.WriteSuccess("workflow get", data, nil); err != nil {
		t.Fatalf("WriteSuccess() failed: %v", err)
	}

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to unmarshal JSON output: %v", err)
	}

	if output["success"] != true {
		t.Error("expected success=true")
	}
	if output["command"] != "workflow get" {
		t.Errorf("expected command field, got %v", output["command"])
	}
	if output["timestamp"] == nil {
		t.Error("expected timestamp field")
	}
}

func TestJSONFormatterError(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	if err := formatter.WriteError("model get", &testError{msg: "no such model"}, "Check the model ID."); err != nil {
		t.Fatalf("WriteError() failed: %v", err)
	}

	var output map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to unmarshal JSON output: %v", err)
	}

	if output["success"] != false {
		t.Error("expected success=false")
	}

	errOut, ok := output["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", output["error"])
	}
	if errOut["message"] != "no such model" {
		t.Errorf("expected error message, got %v", errOut["message"])
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
