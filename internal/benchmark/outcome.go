// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

// =============================================================================
// OUTCOME
// =============================================================================

// FailureReason classifies why a benchmark task produced no throughput.
type FailureReason int

const (
	// FailureNone means the task succeeded and FPS is valid.
	FailureNone FailureReason = iota
	// FailureParse means the process completed but no throughput figure
	// was found in its output.
	FailureParse
	// FailureTimeout means the process exceeded its deadline and was killed.
	FailureTimeout
	// FailureNotFound means the benchmark executable is not on PATH.
	FailureNotFound
	// FailureOther covers any other invocation error; Message carries the
	// underlying error text.
	FailureOther
)

// String returns the string representation of the failure reason.
func (r FailureReason) String() string {
	switch r {
	case FailureNone:
		return "none"
	case FailureParse:
		return "parse_failed"
	case FailureTimeout:
		return "timeout"
	case FailureNotFound:
		return "executable_not_found"
	case FailureOther:
		return "other"
	default:
		return "unknown"
	}
}

// Outcome is the result of one benchmark task on one device.
type Outcome struct {
	// Device is the runtime device identifier (e.g. "GPU.0").
	Device string
	// FPS is the measured throughput. Valid only when Err is FailureNone.
	FPS float64
	// Err classifies the failure. FailureNone on success.
	Err FailureReason
	// Message carries error detail for FailureOther.
	Message string
}

// Success reports whether the task produced a valid throughput.
func (o Outcome) Success() bool {
	return o.Err == FailureNone
}

// Reason returns a human-readable failure description for the summary.
func (o Outcome) Reason() string {
	switch o.Err {
	case FailureParse:
		return "failed to parse FPS from output"
	case FailureTimeout:
		return "benchmark timed out"
	case FailureNotFound:
		return "benchmark executable not found in PATH"
	case FailureOther:
		if o.Message != "" {
			return o.Message
		}
		return "benchmark failed"
	default:
		return ""
	}
}
