// Package output provides tests for CSV output formatting.
package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.WriteSchemaComment("Workflow results"); err != nil {
		t.Fatalf("WriteSchemaComment() failed: %v", err)
	}
	if err := formatter.WriteHeader([]string{"port", "type", "value"}); err != nil {
		t.Fatalf("WriteHeader() failed: %v", err)
	}
	if err := formatter.WriteRow([]string{"prediction", "document", "42"}); err != nil {
		t.Fatalf("WriteRow() failed: %v", err)
	}
	if err := formatter.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	got := buf.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected comment, header and row, got %q", got)
	}
	if lines[0] != "# Workflow results" {
		t.Errorf("expected schema comment first, got %q", lines[0])
	}
	if lines[1] != "port,type,value" {
		t.Errorf("expected header row, got %q", lines[1])
	}
	if lines[2] != "prediction,document,42" {
		t.Errorf("expected data row, got %q", lines[2])
	}
}

func TestCSVFileFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	formatter, err := NewCSVFileFormatter(path)
	if err != nil {
		t.Fatalf("NewCSVFileFormatter() failed: %v", err)
	}
	if err := formatter.WriteHeader([]string{"id", "status"}); err != nil {
		t.Fatalf("WriteHeader() failed: %v", err)
	}
	if err := formatter.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}
	if !strings.Contains(string(data), "id,status") {
		t.Errorf("expected header in file, got %q", string(data))
	}
}

func TestCSVFormatter_WriteMetadata(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	err := formatter.WriteMetadata(map[string]interface{}{
		"workflow": "wf-1",
		"debug":    true,
	})
	if err != nil {
		t.Fatalf("WriteMetadata() failed: %v", err)
	}

	got := buf.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected two metadata comments plus export date, got %q", got)
	}

	// Keys are emitted in sorted order.
	if lines[0] != "# debug: true" {
		t.Errorf("expected sorted metadata, got %q", lines[0])
	}
	if lines[1] != "# workflow: wf-1" {
		t.Errorf("expected sorted metadata, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "# Export Date: ") {
		t.Errorf("expected export date comment, got %q", lines[2])
	}
}
