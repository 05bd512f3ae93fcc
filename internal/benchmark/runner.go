// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strconv"
	"time"
)

// DefaultExecutable is the benchmark tool shipped with the inference
// runtime.
const DefaultExecutable = "benchmark_app"

// DefaultGrace is how much longer than the requested benchmark duration a
// process may live before it is killed. Covers model compilation and
// device warm-up, which benchmark_app does not count toward -t.
const DefaultGrace = 60 * time.Second

// =============================================================================
// TASK RUNNER
// =============================================================================

// Runner executes one benchmark_app process per call and classifies the
// result. The zero value is not usable; set Executable or use NewRunner.
type Runner struct {
	// Executable is the benchmark binary to invoke.
	Executable string
	// Grace is added to the benchmark duration to form the kill deadline.
	Grace time.Duration
}

// NewRunner returns a Runner with the default executable and grace period.
func NewRunner() *Runner {
	return &Runner{
		Executable: DefaultExecutable,
		Grace:      DefaultGrace,
	}
}

// Run executes the benchmark for one device and blocks until the process
// exits or the deadline fires. The deadline is durationSecs plus the grace
// period.
//
// A nonzero exit does not short-circuit parsing: benchmark_app exits
// nonzero on device errors while still printing diagnostics, and sometimes
// prints a throughput line before failing a teardown step.
func (r *Runner) Run(ctx context.Context, device, modelPath string, durationSecs int) Outcome {
	grace := r.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	deadline := time.Duration(durationSecs)*time.Second + grace

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Executable,
		"-m", modelPath,
		"-d", device,
		"-t", strconv.Itoa(durationSecs),
	)

	// Throughput may land on either stream depending on the runtime's log
	// configuration, so capture both.
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return Outcome{Device: device, Err: FailureTimeout}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// PATH lookup misses surface as exec.ErrNotFound; a missing
			// path-form executable surfaces as fs.ErrNotExist. Both mean
			// the binary cannot be located.
			if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
				return Outcome{Device: device, Err: FailureNotFound}
			}
			return Outcome{Device: device, Err: FailureOther, Message: err.Error()}
		}
		// Nonzero exit falls through to parsing.
	}

	fps, ok := ParseThroughput(string(output))
	if !ok {
		return Outcome{Device: device, Err: FailureParse}
	}

	return Outcome{Device: device, FPS: fps}
}
