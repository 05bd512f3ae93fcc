// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// delimiterWidth matches the summary rule width used by benchmark_app's
// own log output, so the two read as one transcript.
const delimiterWidth = 62

// =============================================================================
// RUN REPORT
// =============================================================================

// RunReport is the aggregated result of one full orchestration run.
type RunReport struct {
	// Model is the model path the run was invoked with.
	Model string
	// Successes hold valid throughput outcomes, sorted by device id.
	Successes []Outcome
	// Failures hold failed outcomes in completion-assembly order.
	Failures []Outcome
	// TotalFPS is the sum of successful throughputs. Meaningful only when
	// HasTotal is true.
	TotalFPS float64
	// HasTotal is set when more than one device succeeded.
	HasTotal bool
	// StartedAt is when the run began. Zero when the caller did not set it.
	StartedAt time.Time
	// Duration is the requested per-device benchmark duration in seconds.
	Duration int
}

// Empty reports whether the run produced no outcomes at all.
func (r *RunReport) Empty() bool {
	return len(r.Successes) == 0 && len(r.Failures) == 0
}

// BuildReport partitions outcomes into successes and failures and computes
// the aggregate. Successes are sorted by device identifier ascending;
// failures keep their input order. The total is present only when more
// than one device succeeded, since a single figure already tells the whole
// story.
func BuildReport(model string, outcomes []Outcome) *RunReport {
	r := &RunReport{Model: model}

	for _, o := range outcomes {
		if o.Success() {
			r.Successes = append(r.Successes, o)
		} else {
			r.Failures = append(r.Failures, o)
		}
	}

	sort.Slice(r.Successes, func(i, j int) bool {
		return r.Successes[i].Device < r.Successes[j].Device
	})

	if len(r.Successes) > 1 {
		for _, o := range r.Successes {
			r.TotalFPS += o.FPS
		}
		r.HasTotal = true
	}

	return r
}

// =============================================================================
// RENDERING
// =============================================================================

// Formatter carries the two tone renderers the summary uses. The CLI wires
// lipgloss styles in; tests use PlainFormatter for byte-stable output.
type Formatter struct {
	// Positive renders success lines (model, per-device FPS, total).
	Positive func(string) string
	// Negative renders failure lines.
	Negative func(string) string
}

// PlainFormatter returns a Formatter that applies no styling.
func PlainFormatter() Formatter {
	identity := func(s string) string { return s }
	return Formatter{Positive: identity, Negative: identity}
}

// Render produces the consolidated summary. The layout mirrors the
// benchmark tool's own log framing: a blank line, a dashed rule, the model
// line, per-device throughput lines, the optional total, a failure block
// set off by a blank line, and a closing rule followed by a blank line.
// An empty report renders as the empty string so scripted callers can
// test for output.
func (r *RunReport) Render(f Formatter) string {
	if r.Empty() {
		return ""
	}
	if f.Positive == nil || f.Negative == nil {
		plain := PlainFormatter()
		if f.Positive == nil {
			f.Positive = plain.Positive
		}
		if f.Negative == nil {
			f.Negative = plain.Negative
		}
	}

	rule := strings.Repeat("-", delimiterWidth)

	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')
	b.WriteString(f.Positive(fmt.Sprintf("\t Model: %s", r.Model)))
	b.WriteByte('\n')

	for _, o := range r.Successes {
		b.WriteString(f.Positive(fmt.Sprintf("\t %s: %.2f FPS", o.Device, o.FPS)))
		b.WriteByte('\n')
	}

	if r.HasTotal {
		b.WriteString(f.Positive(fmt.Sprintf("\t Total: %.2f FPS", r.TotalFPS)))
		b.WriteByte('\n')
	}

	if len(r.Failures) > 0 {
		b.WriteByte('\n')
		b.WriteString(f.Negative("[ FAILED ] Devices:"))
		b.WriteByte('\n')
		for _, o := range r.Failures {
			b.WriteString(f.Negative(fmt.Sprintf("\t %s: %s", o.Device, o.Reason())))
			b.WriteByte('\n')
		}
	}

	b.WriteString(rule)
	b.WriteString("\n\n")

	return b.String()
}
