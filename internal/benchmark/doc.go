// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package benchmark orchestrates benchmark_app runs across devices.
//
// It provides the subprocess runner that executes one benchmark per device
// with a bounded deadline, the throughput parser, the scheduler that fans
// tasks out uniformly or in two stages, and the report builder that turns
// per-device outcomes into the consolidated summary.
//
// # Key Types
//
//   - Runner: executes benchmark_app for one device and classifies the result
//   - Outcome: per-device result with a tagged failure reason
//   - Scheduler: runs one task per device with uniform or staged concurrency
//   - RunReport: aggregated, render-ready summary of a full run
//
// # Usage
//
//	sched := &benchmark.Scheduler{
//		Runner:        &benchmark.Runner{Executable: "benchmark_app"},
//		Topology:      detect.TopologyUniform,
//		PrimaryDevice: "GPU.0",
//	}
//	report := sched.Schedule(ctx, "model.xml", devices, 30)
//	fmt.Print(report.Render(benchmark.PlainFormatter()))
package benchmark
