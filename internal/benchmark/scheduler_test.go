// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/ovbench/internal/detect"
)

// fakeRunner records every invocation and returns canned outcomes.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	delay   time.Duration
	outcome func(device string) Outcome
}

func (f *fakeRunner) Run(ctx context.Context, device, modelPath string, durationSecs int) Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, device)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.outcome != nil {
		return f.outcome(device)
	}
	return Outcome{Device: device, FPS: 100}
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestScheduleExactlyOncePerDevice(t *testing.T) {
	devices := []string{"GPU.0", "GPU.1", "GPU.2", "GPU.3"}
	runner := &fakeRunner{}
	sched := &Scheduler{Runner: runner, Topology: detect.TopologyUniform}

	report := sched.Schedule(context.Background(), "model.xml", devices, 30)

	if runner.callCount() != len(devices) {
		t.Fatalf("runner invoked %d times, want %d", runner.callCount(), len(devices))
	}
	if got := len(report.Successes) + len(report.Failures); got != len(devices) {
		t.Fatalf("report holds %d outcomes, want %d", got, len(devices))
	}

	seen := make(map[string]bool)
	for _, d := range runner.calls {
		if seen[d] {
			t.Errorf("device %s benchmarked twice", d)
		}
		seen[d] = true
	}
}

func TestScheduleZeroDevices(t *testing.T) {
	runner := &fakeRunner{}
	sched := &Scheduler{Runner: runner, Topology: detect.TopologyUniform}

	report := sched.Schedule(context.Background(), "model.xml", nil, 30)

	if runner.callCount() != 0 {
		t.Errorf("runner invoked %d times for zero devices", runner.callCount())
	}
	if !report.Empty() {
		t.Error("report for zero devices should be empty")
	}
	if out := report.Render(PlainFormatter()); out != "" {
		t.Errorf("zero-device report rendered %q", out)
	}
}

func TestScheduleStagedBarrier(t *testing.T) {
	devices := []string{"GPU.0", "GPU.1", "GPU.2"}
	runner := &fakeRunner{delay: 20 * time.Millisecond}

	var mu sync.Mutex
	var primaryDone time.Time
	starts := make(map[string]time.Time)

	sched := &Scheduler{
		Runner:        runner,
		Topology:      detect.TopologyStaged,
		PrimaryDevice: "GPU.0",
		OnStart: func(device string) {
			mu.Lock()
			starts[device] = time.Now()
			mu.Unlock()
		},
		OnDone: func(o Outcome) {
			if o.Device == "GPU.0" {
				mu.Lock()
				primaryDone = time.Now()
				mu.Unlock()
			}
		},
	}

	sched.Schedule(context.Background(), "model.xml", devices, 30)

	mu.Lock()
	defer mu.Unlock()
	if primaryDone.IsZero() {
		t.Fatal("primary device never completed")
	}
	for _, d := range []string{"GPU.1", "GPU.2"} {
		start, ok := starts[d]
		if !ok {
			t.Fatalf("device %s never started", d)
		}
		if start.Before(primaryDone) {
			t.Errorf("device %s started before primary completed", d)
		}
	}
}

func TestScheduleStagedPrimaryFailureDoesNotCancel(t *testing.T) {
	devices := []string{"GPU.0", "GPU.1"}
	runner := &fakeRunner{
		outcome: func(device string) Outcome {
			if device == "GPU.0" {
				return Outcome{Device: device, Err: FailureTimeout}
			}
			return Outcome{Device: device, FPS: 75}
		},
	}
	sched := &Scheduler{
		Runner:        runner,
		Topology:      detect.TopologyStaged,
		PrimaryDevice: "GPU.0",
	}

	report := sched.Schedule(context.Background(), "model.xml", devices, 30)

	if runner.callCount() != 2 {
		t.Fatalf("runner invoked %d times, want 2", runner.callCount())
	}
	if len(report.Successes) != 1 || report.Successes[0].Device != "GPU.1" {
		t.Errorf("expected GPU.1 success, got %+v", report.Successes)
	}
	if len(report.Failures) != 1 || report.Failures[0].Device != "GPU.0" {
		t.Errorf("expected GPU.0 failure, got %+v", report.Failures)
	}
}

func TestScheduleStagedSingleDeviceSkipsBarrier(t *testing.T) {
	runner := &fakeRunner{}
	sched := &Scheduler{
		Runner:        runner,
		Topology:      detect.TopologyStaged,
		PrimaryDevice: "GPU.0",
	}

	report := sched.Schedule(context.Background(), "model.xml", []string{"GPU.0"}, 30)

	if runner.callCount() != 1 {
		t.Fatalf("runner invoked %d times, want 1", runner.callCount())
	}
	if len(report.Successes) != 1 {
		t.Errorf("expected one success, got %+v", report.Successes)
	}
}

func TestScheduleStagedMissingPrimaryFallsBackToUniform(t *testing.T) {
	devices := []string{"GPU.1", "GPU.2"}
	runner := &fakeRunner{}
	sched := &Scheduler{
		Runner:        runner,
		Topology:      detect.TopologyStaged,
		PrimaryDevice: "GPU.0",
	}

	report := sched.Schedule(context.Background(), "model.xml", devices, 30)

	if runner.callCount() != 2 {
		t.Fatalf("runner invoked %d times, want 2", runner.callCount())
	}
	if got := len(report.Successes); got != 2 {
		t.Errorf("expected 2 successes, got %d", got)
	}
}

func TestScheduleUniformRunsConcurrently(t *testing.T) {
	devices := []string{"GPU.0", "GPU.1", "GPU.2", "GPU.3"}
	delay := 50 * time.Millisecond
	runner := &fakeRunner{delay: delay}
	sched := &Scheduler{Runner: runner, Topology: detect.TopologyUniform}

	start := time.Now()
	sched.Schedule(context.Background(), "model.xml", devices, 30)
	elapsed := time.Since(start)

	// Sequential execution would take len(devices)*delay.
	if elapsed > time.Duration(len(devices))*delay {
		t.Errorf("uniform schedule took %v, expected concurrent execution", elapsed)
	}
}
