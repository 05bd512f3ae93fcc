// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the ovbench command-line interface.
//
// The package owns argument parsing, command routing, terminal and color
// handling, and the command handlers themselves. main.go stays a thin
// shell that routes the parsed command here.
//
// Commands:
//
//	ovbench -m <model.xml> [-t secs]   run benchmarks on every target device
//	ovbench devices                    list devices visible to the runtime
//	ovbench history [--limit N]        show recent persisted runs
//	ovbench version                    print version information
//	ovbench help                       print usage
package cli
