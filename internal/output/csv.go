// Package output provides CSV output formatting for the as-client CLI.
//
// Purpose:
//
//	Format list and result output as CSV with column headers and schema
//	comments. Used for exports of resource listings and workflow results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// CSVFormatter formats output as CSV with schema comments.
type CSVFormatter struct {
	writer *csv.Writer
	raw    io.Writer
	file   *os.File
}

// NewCSVFormatter creates a new CSV formatter writing to w.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
		raw:    w,
	}
}

// NewCSVFileFormatter creates a CSV formatter writing to the specified file.
// Export files may hold resource data, so they are restricted to the owner.
func NewCSVFileFormatter(filePath string) (*CSVFormatter, error) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	f := NewCSVFormatter(file)
	f.file = file
	return f, nil
}

// WriteSchemaComment writes a schema comment as a CSV comment line.
func (c *CSVFormatter) WriteSchemaComment(comment string) error {
	c.writer.Flush()
	_, err := fmt.Fprintf(c.raw, "# %s\n", comment)
	return err
}

// WriteHeader writes CSV column headers.
func (c *CSVFormatter) WriteHeader(headers []string) error {
	return c.writer.Write(headers)
}

// WriteRow writes a CSV data row.
func (c *CSVFormatter) WriteRow(row []string) error {
	return c.writer.Write(row)
}

// WriteMetadata writes export metadata as CSV comments in key order.
func (c *CSVFormatter) WriteMetadata(metadata map[string]interface{}) error {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.WriteSchemaComment(fmt.Sprintf("%s: %v", key, metadata[key])); err != nil {
			return err
		}
	}
	return c.WriteSchemaComment(fmt.Sprintf("Export Date: %s", time.Now().UTC().Format(time.RFC3339)))
}

// Flush flushes the CSV writer.
func (c *CSVFormatter) Flush() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Close flushes the CSV writer and closes the underlying file, if any.
func (c *CSVFormatter) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// PrintCSV is a convenience function to print CSV output to stdout.
func PrintCSV(headers []string, rows [][]string) error {
	formatter := NewCSVFormatter(os.Stdout)
	if err := formatter.WriteHeader(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := formatter.WriteRow(row); err != nil {
			return err
		}
	}
	return formatter.Flush()
}
