// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect provides accelerator device discovery for ovbench.
//
// The package enumerates the compute devices visible to the inference
// runtime, filters them to the device class being benchmarked, and reads
// the host topology signal that decides whether devices may be exercised
// concurrently from a cold start.
//
// # Key Types
//
//   - Enumerator: interface over the runtime's device enumeration
//   - QueryToolEnumerator: production enumerator backed by an external query tool
//   - TopologyMode: whether scheduling is uniform or staged
//
// # Usage
//
//	ctx := context.Background()
//	enum := &detect.QueryToolEnumerator{Tool: "hello_query_device"}
//	gpus, all, err := detect.Discover(ctx, enum, "GPU")
//	if err != nil {
//		log.Fatal(err)
//	}
//	mode := detect.DetectTopology(detect.DefaultTopologyCounterPath)
package detect
