// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordAppendsLine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "commands.log")

	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Record("ls -la", "/sub")
	logger.Record("pwd", "/")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `line="ls -la"`) {
		t.Errorf("log missing command line, got:\n%s", content)
	}
	if !strings.Contains(content, "cwd=/sub") {
		t.Errorf("log missing cursor, got:\n%s", content)
	}
	if got := strings.Count(content, "\n"); got != 2 {
		t.Errorf("log has %d lines, want 2", got)
	}
}

func TestOpenFailureDegradesToDiscard(t *testing.T) {
	t.Parallel()
	// A directory where the log file should be makes OpenFile fail.
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.log")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	logger, err := Open(path)
	if err == nil {
		t.Fatal("Open succeeded on a directory path, want error")
	}
	// The returned logger must still be usable.
	logger.Record("echo hi", "/")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on discard logger: %v", err)
	}
}
