// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// TOPOLOGY SIGNAL
// =============================================================================

// TopologyMode selects how the scheduler groups devices.
type TopologyMode int

const (
	// TopologyUniform runs every device concurrently in a single batch.
	TopologyUniform TopologyMode = iota
	// TopologyStaged runs the primary device alone and to completion
	// before the remaining devices fan out. Used on hosts where device
	// partitioning makes a cold concurrent start unsafe.
	TopologyStaged
)

// String returns the string representation of the topology mode.
func (m TopologyMode) String() string {
	switch m {
	case TopologyStaged:
		return "staged"
	case TopologyUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// DefaultTopologyCounterPath is the SR-IOV virtual function counter for the
// first render device. A value greater than zero means the GPU is
// partitioned and the primary device must be warmed up in isolation.
const DefaultTopologyCounterPath = "/sys/class/drm/card0/device/sriov_numvfs"

// DetectTopology reads the numeric counter at counterPath and maps it to a
// topology mode. Any read or parse failure means TopologyUniform; an
// unreadable counter is never a fatal condition.
func DetectTopology(counterPath string) TopologyMode {
	data, err := os.ReadFile(counterPath)
	if err != nil {
		return TopologyUniform
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n <= 0 {
		return TopologyUniform
	}

	return TopologyStaged
}
