// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Burrow binaries.
//
// Configuration comes from a single YAML file specified by the
// BURROW_CONFIG environment variable or a --config flag. There are no
// fallbacks or automatic discovery; a missing path just means defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the shared configuration for the engine and the bridge.
type Config struct {
	// SandboxRoot is the confinement root directory. Relative paths
	// are resolved against the process working directory at startup.
	SandboxRoot string `yaml:"sandbox_root"`

	// AuditLog is the append-only command log file.
	AuditLog string `yaml:"audit_log"`

	// ListenAddress is the bridge's HTTP listen address.
	ListenAddress string `yaml:"listen_address"`

	// EngineBinary is the command the bridge spawns on the PTY slave
	// side for each session. Resolved via PATH when not absolute.
	EngineBinary string `yaml:"engine_binary"`

	// MonitorTopProcesses is how many processes the monitor command
	// lists, ordered by CPU share.
	MonitorTopProcesses int `yaml:"monitor_top_processes"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the configuration file at path. An empty path returns the
// defaults. Unset fields in the file fall back to their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BURROW_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.SandboxRoot == "" {
		c.SandboxRoot = "sandbox"
	}
	if c.AuditLog == "" {
		c.AuditLog = "logs/commands.log"
	}
	if c.ListenAddress == "" {
		c.ListenAddress = ":8022"
	}
	if c.EngineBinary == "" {
		c.EngineBinary = "burrow"
	}
	if c.MonitorTopProcesses == 0 {
		c.MonitorTopProcesses = 8
	}
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	if c.SandboxRoot == "" {
		return fmt.Errorf("sandbox_root must not be empty")
	}
	if c.MonitorTopProcesses < 1 {
		return fmt.Errorf("monitor_top_processes must be at least 1, got %d", c.MonitorTopProcesses)
	}
	return nil
}
