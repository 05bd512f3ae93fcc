// run.go - The default benchmark command.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/ovbench/internal/benchmark"
	"github.com/jeranaias/ovbench/internal/config"
	"github.com/jeranaias/ovbench/internal/detect"
	"github.com/jeranaias/ovbench/internal/history"
)

// =============================================================================
// RUN COMMAND
// =============================================================================

// HandleRun executes the full orchestration: discovery, scheduling,
// reporting, history. Returns the process exit code.
//
// Exit code is 1 only for usage errors and for a host with zero devices of
// the target class. Per-device benchmark failures still exit 0; the
// summary is the place to read them.
func HandleRun(args *ArgParser) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	enum := &detect.QueryToolEnumerator{Tool: cfg.Devices.QueryTool}
	runner := &benchmark.Runner{
		Executable: cfg.Benchmark.Executable,
		Grace:      time.Duration(cfg.Benchmark.GraceSecs) * time.Second,
	}

	return runBenchmarks(args, cfg, enum, runner)
}

// runBenchmarks carries the run command's logic with its collaborators
// injected, so tests can drive discovery and task execution with fakes.
func runBenchmarks(args *ArgParser, cfg *config.Config, enum detect.Enumerator, runner benchmark.TaskRunner) int {
	modelPath := args.Flag("m")
	if modelPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -m <model.xml> is required")
		fmt.Fprintln(os.Stderr, "Usage: ovbench -m <model.xml> [-t <seconds>]")
		return 1
	}

	duration := args.FlagIntOrDefault("t", cfg.Benchmark.DefaultDuration)
	if duration <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -t must be a positive number of seconds")
		return 1
	}

	ctx := context.Background()

	// Discovery
	devices, all, err := detect.Discover(ctx, enum, cfg.Devices.ClassPrefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if len(devices) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ErrorStyle.Render(
			fmt.Sprintf("No %s devices found.", cfg.Devices.ClassPrefix)))
		fmt.Fprintln(os.Stderr, "Available devices:")
		for _, d := range all {
			fmt.Fprintf(os.Stderr, "  %s\n", d)
		}
		return 1
	}

	// Topology decides whether a cold concurrent start is safe
	topology := detect.DetectTopology(cfg.Devices.TopologyCounter)
	fmt.Printf("Found %d %s device(s), scheduling: %s\n",
		len(devices), cfg.Devices.ClassPrefix, topology)

	sched := &benchmark.Scheduler{
		Runner:        runner,
		Topology:      topology,
		PrimaryDevice: cfg.Devices.Primary,
		OnStart: func(device string) {
			fmt.Println(InfoStyle.Render(fmt.Sprintf("[ INFO ] Starting benchmark on %s...", device)))
		},
		OnDone: func(o benchmark.Outcome) {
			if o.Success() {
				fmt.Println(SuccessStyle.Render(fmt.Sprintf("[ COMPLETED ] %s: %.2f FPS", o.Device, o.FPS)))
			} else {
				fmt.Println(ErrorStyle.Render(fmt.Sprintf("[ FAILED ] %s: %s", o.Device, o.Reason())))
			}
		},
	}

	startedAt := time.Now()
	report := sched.Schedule(ctx, modelPath, devices, duration)
	report.StartedAt = startedAt
	report.Duration = duration

	fmt.Print(report.Render(summaryFormatter()))

	saveHistory(cfg, report)

	return 0
}

// summaryFormatter wires the CLI styles into the report renderer.
func summaryFormatter() benchmark.Formatter {
	return benchmark.Formatter{
		Positive: func(s string) string { return SuccessStyle.Render(s) },
		Negative: func(s string) string { return ErrorStyle.Render(s) },
	}
}

// saveHistory persists the run when history is enabled. Persistence
// failures warn and continue; a benchmark run is never aborted for a
// bookkeeping problem.
func saveHistory(cfg *config.Config, report *benchmark.RunReport) {
	if !cfg.History.Enabled {
		return
	}

	dir := cfg.History.Dir
	if dir == "" {
		d, err := config.ConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
			return
		}
		dir = d
	}

	store, err := history.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Save(report); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save run history: %v\n", err)
	}
}
