// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Burrow-bridge serves remote burrow sessions over websockets. Each
// connection gets its own burrow engine process attached to a fresh
// pseudo-terminal; the bridge relays terminal bytes in both directions
// and applies resize control messages to the PTY.
//
// It also serves a browser terminal page at / so a sandbox can be used
// with nothing but a websocket-capable browser.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/burrowterm/burrow/bridge"
	"github.com/burrowterm/burrow/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath    string
		listenAddress string
		engineBinary  string
		verbose       bool
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML configuration file (default: $BURROW_CONFIG)")
	flag.StringVar(&listenAddress, "listen", "", "HTTP listen address (overrides configuration)")
	flag.StringVar(&engineBinary, "engine", "", "engine binary to spawn per session (overrides configuration)")
	flag.BoolVar(&verbose, "verbose", false, "enable per-session debug logging")
	flag.Parse()

	configuration, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddress != "" {
		configuration.ListenAddress = listenAddress
	}
	if engineBinary != "" {
		configuration.EngineBinary = engineBinary
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	server := bridge.NewServer(configuration, logger)
	logger.Info("bridge listening",
		"address", configuration.ListenAddress,
		"engine", configuration.EngineBinary,
		"sandbox_root", configuration.SandboxRoot)
	if err := http.ListenAndServe(configuration.ListenAddress, server.Handler()); err != nil {
		return fmt.Errorf("serve %s: %w", configuration.ListenAddress, err)
	}
	return nil
}
