// devices_cmd.go - List devices visible to the inference runtime.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/ovbench/internal/config"
	"github.com/jeranaias/ovbench/internal/detect"
)

// HandleDevices lists every enumerated device, marking the ones in the
// target class that a run would benchmark.
func HandleDevices(args *ArgParser) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	enum := &detect.QueryToolEnumerator{Tool: cfg.Devices.QueryTool}
	devices, err := enum.AvailableDevices(context.Background())
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		return nil
	}

	fmt.Printf("Devices visible to the runtime (target class: %s):\n", cfg.Devices.ClassPrefix)
	for _, d := range devices {
		if strings.HasPrefix(d, cfg.Devices.ClassPrefix) {
			fmt.Printf("  %s  %s\n", SuccessStyle.Render("*"), d)
		} else {
			fmt.Printf("     %s\n", DimStyle.Render(d))
		}
	}

	return nil
}
