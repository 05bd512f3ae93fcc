// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jeranaias/ovbench/internal/benchmark"
	"github.com/jeranaias/ovbench/internal/config"
)

// stubEnumerator returns a fixed device list.
type stubEnumerator struct {
	devices []string
}

func (s *stubEnumerator) AvailableDevices(ctx context.Context) ([]string, error) {
	return s.devices, nil
}

// countingRunner records invocations and reports every device successful.
type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRunner) Run(ctx context.Context, device, modelPath string, durationSecs int) benchmark.Outcome {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return benchmark.Outcome{Device: device, FPS: 100}
}

// captureStderr runs fn with stderr redirected to a pipe and returns what
// was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	rp, wp, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stderr = wp

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(rp)
		done <- string(data)
	}()

	fn()

	wp.Close()
	os.Stderr = old
	return <-done
}

func TestRunBenchmarksZeroDevices(t *testing.T) {
	cfg := config.Default()
	cfg.History.Enabled = false

	args := NewArgParser([]string{"-m", "model.xml"})
	enum := &stubEnumerator{devices: []string{"CPU", "NPU"}}
	runner := &countingRunner{}

	var code int
	stderr := captureStderr(t, func() {
		code = runBenchmarks(args, cfg, enum, runner)
	})

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if runner.calls != 0 {
		t.Errorf("runner invoked %d times, want 0", runner.calls)
	}
	if !strings.Contains(stderr, "No GPU devices found") {
		t.Errorf("diagnostic missing from stderr: %q", stderr)
	}
	// The full unfiltered device list is part of the diagnostic
	for _, d := range []string{"CPU", "NPU"} {
		if !strings.Contains(stderr, d) {
			t.Errorf("device %s missing from diagnostic: %q", d, stderr)
		}
	}
}

func TestRunBenchmarksMissingModelFlag(t *testing.T) {
	cfg := config.Default()
	cfg.History.Enabled = false

	args := NewArgParser([]string{})
	enum := &stubEnumerator{devices: []string{"GPU.0"}}
	runner := &countingRunner{}

	var code int
	stderr := captureStderr(t, func() {
		code = runBenchmarks(args, cfg, enum, runner)
	})

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if runner.calls != 0 {
		t.Errorf("runner invoked %d times, want 0", runner.calls)
	}
	if !strings.Contains(stderr, "-m") {
		t.Errorf("usage hint missing from stderr: %q", stderr)
	}
}

func TestRunBenchmarksNonPositiveDuration(t *testing.T) {
	cfg := config.Default()
	cfg.History.Enabled = false

	args := NewArgParser([]string{"-m", "model.xml", "-t", "-5"})
	enum := &stubEnumerator{devices: []string{"GPU.0"}}
	runner := &countingRunner{}

	var code int
	captureStderr(t, func() {
		code = runBenchmarks(args, cfg, enum, runner)
	})

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if runner.calls != 0 {
		t.Errorf("runner invoked %d times, want 0", runner.calls)
	}
}
