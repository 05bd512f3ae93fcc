// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"sync"

	"github.com/jeranaias/ovbench/internal/detect"
)

// DefaultPrimaryDevice is the device warmed up alone in staged runs.
const DefaultPrimaryDevice = "GPU.0"

// =============================================================================
// SCHEDULER
// =============================================================================

// TaskRunner runs one benchmark task. Satisfied by *Runner; tests inject
// fakes.
type TaskRunner interface {
	Run(ctx context.Context, device, modelPath string, durationSecs int) Outcome
}

// Scheduler fans one benchmark task per device out according to the host
// topology.
type Scheduler struct {
	// Runner executes individual tasks.
	Runner TaskRunner
	// Topology selects uniform or staged execution.
	Topology detect.TopologyMode
	// PrimaryDevice runs alone first in staged mode. Empty means
	// DefaultPrimaryDevice.
	PrimaryDevice string
	// OnStart is called just before a device's task starts. May be nil.
	OnStart func(device string)
	// OnDone is called with each task's outcome as it completes. May be nil.
	OnDone func(o Outcome)
}

// Schedule runs one benchmark per device and returns the aggregated report.
//
// Uniform topology (or fewer than two devices) runs everything in a single
// concurrent batch. Staged topology runs the primary device alone and to
// completion first, then fans the remaining devices out concurrently.
//
// Every requested device produces exactly one outcome. A device's failure
// never cancels its siblings; Schedule itself cannot fail.
func (s *Scheduler) Schedule(ctx context.Context, modelPath string, devices []string, durationSecs int) *RunReport {
	results := make(map[string]Outcome, len(devices))
	var mu sync.Mutex

	record := func(o Outcome) {
		mu.Lock()
		results[o.Device] = o
		mu.Unlock()
		if s.OnDone != nil {
			s.OnDone(o)
		}
	}

	runOne := func(device string) {
		if s.OnStart != nil {
			s.OnStart(device)
		}
		record(s.Runner.Run(ctx, device, modelPath, durationSecs))
	}

	batch := devices
	if s.Topology == detect.TopologyStaged && len(devices) >= 2 {
		primary := s.PrimaryDevice
		if primary == "" {
			primary = DefaultPrimaryDevice
		}
		if rest, found := splitOut(devices, primary); found {
			// Hard barrier: the primary must finish before anything
			// else touches the hardware.
			runOne(primary)
			batch = rest
		}
	}

	var wg sync.WaitGroup
	for _, device := range batch {
		wg.Add(1)
		go func(device string) {
			defer wg.Done()
			runOne(device)
		}(device)
	}
	wg.Wait()

	// Assemble in discovery order so reports are deterministic regardless
	// of completion order.
	outcomes := make([]Outcome, 0, len(devices))
	for _, device := range devices {
		if o, ok := results[device]; ok {
			outcomes = append(outcomes, o)
		}
	}

	return BuildReport(modelPath, outcomes)
}

// splitOut returns devices without the target, and whether it was present.
func splitOut(devices []string, target string) ([]string, bool) {
	rest := make([]string, 0, len(devices))
	found := false
	for _, d := range devices {
		if d == target && !found {
			found = true
			continue
		}
		rest = append(rest, d)
	}
	return rest, found
}
