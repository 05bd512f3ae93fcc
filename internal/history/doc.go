// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists completed benchmark runs to a local SQLite
// database so past throughput figures can be compared across driver and
// model changes.
package history
