// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"regexp"
	"strconv"
)

// =============================================================================
// OUTPUT PARSING
// =============================================================================

// throughputPattern matches the summary line benchmark_app prints on
// completion, e.g. "[ INFO ] Throughput:   142.33 FPS". Only the literal
// marker is anchored so surrounding log decoration does not matter.
var throughputPattern = regexp.MustCompile(`Throughput:\s*([0-9]+(?:\.[0-9]+)?)\s*FPS`)

// ParseThroughput extracts the first throughput figure from combined
// process output. It returns false when no throughput line is present or
// the captured number does not parse.
func ParseThroughput(output string) (float64, bool) {
	m := throughputPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}

	fps, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return fps, true
}
