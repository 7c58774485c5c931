// Package progress provides progress indicators for long-running operations.
//
// Purpose:
//
//	Display progress for operations exceeding 30 seconds: percentage and
//	estimated time remaining when the total is known (archive packing),
//	heartbeat pulses when it is not (job polling). Emits progress events
//	suitable for monitoring systems and CI logs.
//
// Dependencies:
//   - encoding/json: Structured progress event output
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Indicator displays progress for long-running operations.
type Indicator struct {
	writer      io.Writer
	minDuration time.Duration
	format      string // table, json
	enabled     bool
}

// NewIndicator creates a new progress indicator.
func NewIndicator(w io.Writer, format string) *Indicator {
	if w == nil {
		w = os.Stderr
	}
	return &Indicator{
		writer:      w,
		minDuration: 30 * time.Second,
		format:      format,
		enabled:     true,
	}
}

// Disable turns the indicator off (quiet mode).
func (p *Indicator) Disable() {
	p.enabled = false
}

// ProgressEvent represents a progress event for monitoring systems.
type ProgressEvent struct {
	Timestamp       string  `json:"timestamp"`
	Operation       string  `json:"operation"`
	State           string  `json:"state,omitempty"`
	PercentComplete float64 `json:"percent_complete"`
	ItemsProcessed  int     `json:"items_processed,omitempty"`
	TotalItems      int     `json:"total_items,omitempty"`
	Elapsed         string  `json:"elapsed"`
	Remaining       string  `json:"remaining,omitempty"`
}

// Update updates progress display for an operation with a known total.
func (p *Indicator) Update(op string, processed, total int, elapsed time.Duration) error {
	if !p.enabled || total == 0 {
		return nil
	}

	percent := float64(processed) / float64(total) * 100
	remaining := time.Duration(0)
	if processed > 0 {
		avgTimePerItem := elapsed / time.Duration(processed)
		remaining = avgTimePerItem * time.Duration(total-processed)
	}

	if p.format == "json" {
		event := ProgressEvent{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			Operation:       op,
			PercentComplete: percent,
			ItemsProcessed:  processed,
			TotalItems:      total,
			Elapsed:         elapsed.String(),
			Remaining:       remaining.String(),
		}
		return json.NewEncoder(p.writer).Encode(event)
	}

	// Table format: single-line update
	fmt.Fprintf(p.writer, "\r%s: %.1f%% (%d/%d) [elapsed: %s, remaining: %s]",
		op, percent, processed, total, elapsed.Round(time.Second), remaining.Round(time.Second))

	return nil
}

// Pulse updates progress display for an operation with no known total, such
// as waiting on a job. The state carries the last observed status.
func (p *Indicator) Pulse(op, state string, elapsed time.Duration) error {
	if !p.enabled {
		return nil
	}

	if p.format == "json" {
		event := ProgressEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Operation: op,
			State:     state,
			Elapsed:   elapsed.String(),
		}
		return json.NewEncoder(p.writer).Encode(event)
	}

	fmt.Fprintf(p.writer, "\r%s: %s [elapsed: %s]", op, state, elapsed.Round(time.Second))

	return nil
}

// Complete marks progress as complete.
func (p *Indicator) Complete(op string, total int, elapsed time.Duration) error {
	if !p.enabled {
		return nil
	}

	if p.format == "json" {
		event := ProgressEvent{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			Operation:       op,
			PercentComplete: 100,
			ItemsProcessed:  total,
			TotalItems:      total,
			Elapsed:         elapsed.String(),
			Remaining:       "0s",
		}
		return json.NewEncoder(p.writer).Encode(event)
	}

	// Table format: final update with newline
	fmt.Fprintf(p.writer, "\r%s: done [completed in %s]\n", op, elapsed.Round(time.Second))

	return nil
}

// ShouldShow determines if progress should be shown based on elapsed time.
func (p *Indicator) ShouldShow(elapsed time.Duration) bool {
	return p.enabled && elapsed > p.minDuration
}
