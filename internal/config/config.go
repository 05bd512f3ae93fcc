// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the top-level ovbench configuration.
type Config struct {
	Benchmark BenchmarkConfig `toml:"benchmark"`
	Devices   DevicesConfig   `toml:"devices"`
	History   HistoryConfig   `toml:"history"`
}

// BenchmarkConfig controls how individual benchmark processes run.
type BenchmarkConfig struct {
	// Executable is the benchmark binary to invoke.
	Executable string `toml:"executable"`
	// DefaultDuration is the per-device benchmark duration in seconds when
	// -t is not given.
	DefaultDuration int `toml:"default_duration"`
	// GraceSecs is added to the duration to form the kill deadline.
	GraceSecs int `toml:"grace_secs"`
}

// DevicesConfig controls discovery and scheduling.
type DevicesConfig struct {
	// QueryTool enumerates the runtime's visible devices.
	QueryTool string `toml:"query_tool"`
	// ClassPrefix selects the device class to benchmark (e.g. "GPU").
	ClassPrefix string `toml:"class_prefix"`
	// Primary is the device warmed up alone in staged runs.
	Primary string `toml:"primary"`
	// TopologyCounter is the counter file whose positive value forces
	// staged scheduling.
	TopologyCounter string `toml:"topology_counter"`
}

// HistoryConfig controls run history persistence.
type HistoryConfig struct {
	// Enabled turns history persistence on.
	Enabled bool `toml:"enabled"`
	// Dir overrides the database directory. Empty means the config dir.
	Dir string `toml:"dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Benchmark: BenchmarkConfig{
			Executable:      "benchmark_app",
			DefaultDuration: 30,
			GraceSecs:       60,
		},
		Devices: DevicesConfig{
			QueryTool:       "hello_query_device",
			ClassPrefix:     "GPU",
			Primary:         "GPU.0",
			TopologyCounter: "/sys/class/drm/card0/device/sriov_numvfs",
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the ovbench configuration directory (~/.ovbench).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ovbench"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies environment overrides, and validates.
// A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from an explicit path. Used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides applies OVBENCH_* environment variables on top of the
// loaded values. Malformed numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("OVBENCH_EXECUTABLE"); v != "" {
		c.Benchmark.Executable = v
	}
	if v := os.Getenv("OVBENCH_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Benchmark.DefaultDuration = n
		}
	}
	if v := os.Getenv("OVBENCH_GRACE_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Benchmark.GraceSecs = n
		}
	}
	if v := os.Getenv("OVBENCH_QUERY_TOOL"); v != "" {
		c.Devices.QueryTool = v
	}
	if v := os.Getenv("OVBENCH_DEVICE_PREFIX"); v != "" {
		c.Devices.ClassPrefix = v
	}
	if v := os.Getenv("OVBENCH_PRIMARY_DEVICE"); v != "" {
		c.Devices.Primary = v
	}
	if v := os.Getenv("OVBENCH_TOPOLOGY_COUNTER"); v != "" {
		c.Devices.TopologyCounter = v
	}
	if v := os.Getenv("OVBENCH_HISTORY"); v != "" {
		c.History.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("OVBENCH_HISTORY_DIR"); v != "" {
		c.History.Dir = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s=%v (%s)", e.Field, e.Value, e.Message)
}

// Validate checks the configuration for values that would make a run
// nonsensical.
func (c *Config) Validate() error {
	if c.Benchmark.Executable == "" {
		return &ValidationError{"benchmark.executable", c.Benchmark.Executable, "must not be empty"}
	}
	if c.Benchmark.DefaultDuration <= 0 {
		return &ValidationError{"benchmark.default_duration", c.Benchmark.DefaultDuration, "must be positive"}
	}
	if c.Benchmark.GraceSecs <= 0 {
		return &ValidationError{"benchmark.grace_secs", c.Benchmark.GraceSecs, "must be positive"}
	}
	if c.Devices.QueryTool == "" {
		return &ValidationError{"devices.query_tool", c.Devices.QueryTool, "must not be empty"}
	}
	if c.Devices.ClassPrefix == "" {
		return &ValidationError{"devices.class_prefix", c.Devices.ClassPrefix, "must not be empty"}
	}
	if c.Devices.Primary == "" {
		return &ValidationError{"devices.primary", c.Devices.Primary, "must not be empty"}
	}
	if !strings.HasPrefix(c.Devices.Primary, c.Devices.ClassPrefix) {
		return &ValidationError{"devices.primary", c.Devices.Primary, "must belong to the configured device class"}
	}
	if c.Devices.TopologyCounter == "" {
		return &ValidationError{"devices.topology_counter", c.Devices.TopologyCounter, "must not be empty"}
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path, creating the config
// directory if needed.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration as TOML to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("# ovbench configuration\n\n"); err != nil {
		return err
	}

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
