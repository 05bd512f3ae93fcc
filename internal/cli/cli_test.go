// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseFromRouting(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"run flags only", []string{"-m", "model.xml"}, CmdRun},
		{"run with duration", []string{"-m", "model.xml", "-t", "60"}, CmdRun},
		{"explicit run", []string{"run", "-m", "model.xml"}, CmdRun},
		{"no args defaults to run", []string{}, CmdRun},
		{"devices", []string{"devices"}, CmdDevices},
		{"history", []string{"history", "--limit", "5"}, CmdHistory},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseFrom(tt.argv)
			if cmd != tt.want {
				t.Errorf("ParseFrom(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
		})
	}
}

func TestArgParserFlags(t *testing.T) {
	args := NewArgParser([]string{"-m", "model.xml", "-t", "60", "--json", "--limit=5"})

	if got := args.Flag("m"); got != "model.xml" {
		t.Errorf("Flag(m) = %q", got)
	}
	if got := args.FlagIntOrDefault("t", 30); got != 60 {
		t.Errorf("FlagIntOrDefault(t) = %d", got)
	}
	if got := args.FlagIntOrDefault("limit", 10); got != 5 {
		t.Errorf("FlagIntOrDefault(limit) = %d", got)
	}
	if !args.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if args.BoolFlag("missing") {
		t.Error("BoolFlag(missing) = true")
	}
}

func TestArgParserDefaults(t *testing.T) {
	args := NewArgParser([]string{"-m", "model.xml"})

	if got := args.FlagIntOrDefault("t", 30); got != 30 {
		t.Errorf("FlagIntOrDefault(t) = %d, want default 30", got)
	}
	if got := args.FlagIntOrDefault("t", 30); got != 30 {
		t.Errorf("second read differs: %d", got)
	}
	if got := args.Flag("missing"); got != "" {
		t.Errorf("Flag(missing) = %q", got)
	}
}

func TestArgParserMalformedInt(t *testing.T) {
	args := NewArgParser([]string{"-t", "sixty"})

	if got := args.FlagIntOrDefault("t", 30); got != 30 {
		t.Errorf("FlagIntOrDefault with malformed value = %d, want 30", got)
	}
}

func TestArgParserNegativeValue(t *testing.T) {
	args := NewArgParser([]string{"-t", "-5"})

	if got := args.Flag("t"); got != "-5" {
		t.Errorf("Flag(t) = %q, want -5", got)
	}
	if got := args.FlagIntOrDefault("t", 30); got != -5 {
		t.Errorf("FlagIntOrDefault(t) = %d, want -5", got)
	}
	if args.BoolFlag("5") {
		t.Error("negative value misread as boolean flag")
	}
}

func TestArgParserSubcommandAndPositional(t *testing.T) {
	args := NewArgParser([]string{"history", "--limit", "5"})

	if got := args.Subcommand(); got != "history" {
		t.Errorf("Subcommand() = %q", got)
	}
	if got := args.Positional(0); got != "history" {
		t.Errorf("Positional(0) = %q", got)
	}
	if got := args.Positional(9); got != "" {
		t.Errorf("Positional(9) = %q, want empty", got)
	}
}

func TestArgParserEqualsForm(t *testing.T) {
	args := NewArgParser([]string{"--since=2024-01-01", "--verbose=true", "--quiet=false"})

	if got := args.Flag("since"); got != "2024-01-01" {
		t.Errorf("Flag(since) = %q", got)
	}
	if !args.BoolFlag("verbose") {
		t.Error("BoolFlag(verbose) = false")
	}
	if args.BoolFlag("quiet") {
		t.Error("BoolFlag(quiet) = true")
	}
}
