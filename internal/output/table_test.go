// Package output provides tests for table output formatting.
package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)

	if err := formatter.WriteHeader("ID", "Name", "Status"); err != nil {
		t.Fatalf("WriteHeader() failed: %v", err)
	}

	if err := formatter.WriteRow("model-1", "Rainfall", "installed"); err != nil {
		t.Fatalf("WriteRow() failed: %v", err)
	}

	if err := formatter.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	got := buf.String()
	if got == "" {
		t.Fatal("expected non-empty output")
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, separator and one row, got %d lines: %q", len(lines), got)
	}

	// The separator row carries one marker per column.
	if strings.Count(lines[1], "---") != 3 {
		t.Errorf("expected 3 separator markers, got %q", lines[1])
	}

	if !strings.Contains(lines[2], "model-1") || !strings.Contains(lines[2], "Rainfall") {
		t.Errorf("row values missing from output: %q", lines[2])
	}
}
