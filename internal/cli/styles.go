// styles.go - Shared lipgloss styles for ovbench CLI output.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	// Respect NO_COLOR and non-TTY output before any style renders.
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// STYLES
// =============================================================================

var (
	// SuccessStyle renders throughput figures and passing devices.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	// ErrorStyle renders failure lines.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// InfoStyle renders progress lines during a run.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")) // Light blue

	// DimStyle renders secondary detail such as timestamps.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Gray
)
