// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages ovbench configuration.
//
// Configuration is loaded in layers: built-in defaults, then the TOML file
// at ~/.ovbench/config.toml, then OVBENCH_* environment variables. Every
// load path validates the result before handing it to callers.
package config
