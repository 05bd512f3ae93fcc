// history_cmd.go - Show recent persisted benchmark runs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/ovbench/internal/config"
	"github.com/jeranaias/ovbench/internal/history"
)

// HandleHistory prints the most recent persisted runs, newest first.
func HandleHistory(args *ArgParser) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	limit := args.FlagIntOrDefault("limit", 10)

	dir := cfg.History.Dir
	if dir == "" {
		dir, err = config.ConfigDir()
		if err != nil {
			return err
		}
	}

	store, err := history.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No benchmark runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s (%ds)\n",
			DimStyle.Render(run.StartedAt.Format("2006-01-02 15:04:05")),
			run.Model, run.Duration)
		for _, res := range run.Results {
			if res.Reason == "none" {
				fmt.Printf("  %s\n", SuccessStyle.Render(fmt.Sprintf("%s: %.2f FPS", res.Device, res.FPS)))
			} else {
				fmt.Printf("  %s\n", ErrorStyle.Render(fmt.Sprintf("%s: %s", res.Device, res.Reason)))
			}
		}
		if run.HasTotal {
			fmt.Printf("  %s\n", SuccessStyle.Render(fmt.Sprintf("Total: %.2f FPS", run.TotalFPS)))
		}
		fmt.Println()
	}

	return nil
}
