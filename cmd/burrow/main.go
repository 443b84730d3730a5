// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Burrow is the sandboxed interactive shell. It confines every file
// operation to a root directory, dispatches a fixed set of commands,
// and records each executed line to an append-only audit log.
//
// Run it directly for a local session, or let burrow-bridge spawn it
// on the slave side of a PTY for remote sessions.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/burrowterm/burrow/audit"
	"github.com/burrowterm/burrow/config"
	"github.com/burrowterm/burrow/sandbox"
	"github.com/burrowterm/burrow/shell"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		rootDir    string
		auditPath  string
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML configuration file (default: $BURROW_CONFIG)")
	flag.StringVar(&rootDir, "root", "", "sandbox root directory (overrides configuration)")
	flag.StringVar(&auditPath, "audit-log", "", "audit log file (overrides configuration)")
	flag.Parse()

	configuration, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if rootDir != "" {
		configuration.SandboxRoot = rootDir
	}
	if auditPath != "" {
		configuration.AuditLog = auditPath
	}

	rootAbsolute, err := filepath.Abs(configuration.SandboxRoot)
	if err != nil {
		return fmt.Errorf("resolve sandbox root %q: %w", configuration.SandboxRoot, err)
	}
	sb, err := sandbox.New(rootAbsolute)
	if err != nil {
		return fmt.Errorf("prepare sandbox: %w", err)
	}

	auditLog, err := audit.Open(configuration.AuditLog)
	if err != nil {
		// The session still runs; it just goes unrecorded.
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer auditLog.Close()

	engine := shell.New(sb, shell.Options{
		Audit:               auditLog,
		MonitorTopProcesses: configuration.MonitorTopProcesses,
	})
	return engine.Run()
}
