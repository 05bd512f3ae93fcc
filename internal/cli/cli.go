// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
)

// Version information, synced from main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMAND ROUTING
// =============================================================================

// Command identifies the top-level command to run.
type Command int

const (
	// CmdRun benchmarks every target-class device (the default command).
	CmdRun Command = iota
	// CmdDevices lists all devices visible to the runtime.
	CmdDevices
	// CmdHistory shows recent persisted runs.
	CmdHistory
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
)

// Parse reads os.Args and returns the command plus its parsed arguments.
func Parse() (Command, *ArgParser) {
	return ParseFrom(os.Args[1:])
}

// ParseFrom parses an explicit argument slice. Split out from Parse so
// tests can exercise routing without touching os.Args.
//
// A leading flag (or no arguments at all) selects the run command; a
// leading bare word selects the named subcommand.
func ParseFrom(argv []string) (Command, *ArgParser) {
	args := NewArgParser(argv)

	switch args.Subcommand() {
	case "devices":
		return CmdDevices, args
	case "history":
		return CmdHistory, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	case "run", "":
		return CmdRun, args
	default:
		// Unknown subcommand falls through to help with a complaint.
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Subcommand())
		return CmdHelp, args
	}
}

const usageText = `ovbench - parallel multi-GPU benchmark orchestrator for OpenVINO models

Usage:
  ovbench -m <model.xml> [-t <seconds>]   Benchmark every GPU device
  ovbench devices                         List devices visible to the runtime
  ovbench history [--limit N]             Show recent benchmark runs
  ovbench version                         Print version information
  ovbench help                            Show this help

Flags (run):
  -m <path>      Model file to benchmark (required)
  -t <seconds>   Per-device benchmark duration (default 30)

Configuration is read from ~/.ovbench/config.toml and OVBENCH_* environment
variables. Run behavior, device filtering, and history storage are all
configurable there.
`

// HandleHelp prints usage to stdout.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("ovbench %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
}
