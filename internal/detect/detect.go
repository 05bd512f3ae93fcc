// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// deviceQueryTimeout bounds device enumeration so a wedged query tool
// cannot hang the run.
const deviceQueryTimeout = 10 * time.Second

// DefaultQueryTool is the device enumeration sample shipped with the
// inference runtime.
const DefaultQueryTool = "hello_query_device"

// =============================================================================
// ENUMERATOR
// =============================================================================

// Enumerator lists the compute devices visible to the inference runtime.
// Implementations return identifiers in the runtime's class+index notation
// (e.g. "CPU", "GPU.0", "GPU.1").
type Enumerator interface {
	AvailableDevices(ctx context.Context) ([]string, error)
}

// deviceIDPattern matches runtime device identifiers such as "CPU",
// "GPU.0" or "NPU".
var deviceIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*(\.[0-9]+)?$`)

// QueryToolEnumerator enumerates devices by running an external query tool
// and scanning its output for device identifiers. The tool prints one
// "[ INFO ] <DEVICE>" line per device interleaved with property dumps,
// which are skipped.
type QueryToolEnumerator struct {
	// Tool is the executable to invoke. Empty means DefaultQueryTool.
	Tool string
}

// AvailableDevices runs the query tool and returns every device identifier
// found in its output, in output order, deduplicated.
func (e *QueryToolEnumerator) AvailableDevices(ctx context.Context) ([]string, error) {
	tool := e.Tool
	if tool == "" {
		tool = DefaultQueryTool
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deviceQueryTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, tool)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("device query via %s failed: %w", tool, err)
	}

	return ParseDeviceList(string(output)), nil
}

// ParseDeviceList extracts device identifiers from query tool output.
// Lines may carry a bracketed log-level prefix; anything after it that is
// not a bare device identifier is ignored.
func ParseDeviceList(output string) []string {
	seen := make(map[string]bool)
	devices := make([]string, 0)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Strip a "[ INFO ]"-style prefix if present
		if strings.HasPrefix(line, "[") {
			if idx := strings.Index(line, "]"); idx >= 0 {
				line = line[idx+1:]
			}
		}

		token := strings.TrimSpace(line)
		if token == "" || !deviceIDPattern.MatchString(token) {
			continue
		}
		if !seen[token] {
			seen[token] = true
			devices = append(devices, token)
		}
	}

	return devices
}

// =============================================================================
// DISCOVERY
// =============================================================================

// Discover queries the enumerator and filters the result to the target
// device class by identifier prefix. The full unfiltered list is returned
// alongside so callers can print a diagnostic when no device of the class
// exists.
//
// An empty filtered list is a valid result, not an error. The caller
// decides how to treat a host without matching devices.
func Discover(ctx context.Context, enum Enumerator, classPrefix string) (matched, all []string, err error) {
	all, err = enum.AvailableDevices(ctx)
	if err != nil {
		return nil, nil, err
	}

	matched = make([]string, 0, len(all))
	for _, device := range all {
		if strings.HasPrefix(device, classPrefix) {
			matched = append(matched, device)
		}
	}

	return matched, all, nil
}
