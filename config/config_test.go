// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.SandboxRoot != "sandbox" {
		t.Errorf("SandboxRoot = %q, want \"sandbox\"", config.SandboxRoot)
	}
	if config.ListenAddress != ":8022" {
		t.Errorf("ListenAddress = %q, want \":8022\"", config.ListenAddress)
	}
	if config.MonitorTopProcesses != 8 {
		t.Errorf("MonitorTopProcesses = %d, want 8", config.MonitorTopProcesses)
	}
}

func TestLoadFileWithPartialFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrow.yaml")
	content := "sandbox_root: /srv/pen\nlisten_address: \"127.0.0.1:9000\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.SandboxRoot != "/srv/pen" {
		t.Errorf("SandboxRoot = %q, want \"/srv/pen\"", config.SandboxRoot)
	}
	if config.ListenAddress != "127.0.0.1:9000" {
		t.Errorf("ListenAddress = %q", config.ListenAddress)
	}
	// Unset fields keep their defaults.
	if config.EngineBinary != "burrow" {
		t.Errorf("EngineBinary = %q, want \"burrow\"", config.EngineBinary)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrow.yaml")
	if err := os.WriteFile(path, []byte("monitor_top_processes: -3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted negative monitor_top_processes")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing config path")
	}
}
