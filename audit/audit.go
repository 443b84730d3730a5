// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Package audit records every executed command line to an append-only
// log file. The logger is a pure collaborator: a failure to open or
// write the log never blocks or fails the command that triggered it.
package audit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger appends one structured record per executed command line.
type Logger struct {
	logger *slog.Logger
	file   io.Closer
}

// Open creates (or appends to) the audit log at path, creating parent
// directories as needed. If the file cannot be opened, a discard logger
// is returned along with the error so the caller can warn once and
// keep going without audit records.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Discard(), fmt.Errorf("create audit log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), fmt.Errorf("open audit log: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{logger: slog.New(handler), file: file}, nil
}

// Discard returns a logger that drops all records.
func Discard() *Logger {
	return &Logger{logger: slog.New(slog.DiscardHandler)}
}

// Record reports one executed command line and the session cursor at
// execution time. Write failures are swallowed by the slog handler;
// nothing here can fail the command.
func (l *Logger) Record(line, cwd string) {
	l.logger.Info("command", "line", line, "cwd", cwd)
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
