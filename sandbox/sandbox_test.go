// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newSandbox creates a sandbox rooted in a fresh temporary directory.
func newSandbox(t *testing.T) *Sandbox {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "root"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestResolveReadInsideRoot(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	resolved, err := s.ResolveRead("file.txt")
	if err != nil {
		t.Fatalf("ResolveRead: %v", err)
	}
	if want := filepath.Join(s.Root(), "file.txt"); resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveReadRejectsEscapes(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	escapes := []string{
		"..",
		"../..",
		"../outside.txt",
		"a/../../outside.txt",
		"a/b/../../../outside.txt",
		"/etc/passwd",
		filepath.Dir(s.Root()),
	}
	for _, token := range escapes {
		_, err := s.ResolveRead(token)
		var confinement *ConfinementError
		if !errors.As(err, &confinement) {
			t.Errorf("ResolveRead(%q) = %v, want ConfinementError", token, err)
		}
	}
}

func TestResolveReadDotDotWithinRoot(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)
	if err := os.MkdirAll(filepath.Join(s.Root(), "a", "b"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := s.SetCwd(filepath.Join(s.Root(), "a", "b")); err != nil {
		t.Fatalf("SetCwd: %v", err)
	}

	// ".." segments that cancel out inside the root are legal.
	resolved, err := s.ResolveRead("../../a")
	if err != nil {
		t.Fatalf("ResolveRead: %v", err)
	}
	if want := filepath.Join(s.Root(), "a"); resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveReadRejectsSymlinkEscape(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(s.Root(), "sneaky")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	_, err := s.ResolveRead("sneaky")
	var confinement *ConfinementError
	if !errors.As(err, &confinement) {
		t.Fatalf("ResolveRead through escaping symlink = %v, want ConfinementError", err)
	}

	// A path below the escaping symlink must also be rejected, even
	// when the target file does not exist (best-effort resolution
	// validates the deepest existing ancestor).
	_, err = s.ResolveRead("sneaky/ghost.txt")
	if !errors.As(err, &confinement) {
		t.Fatalf("ResolveRead below escaping symlink = %v, want ConfinementError", err)
	}
}

func TestResolveReadSymlinkInsideRoot(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	target := filepath.Join(s.Root(), "real")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(s.Root(), "alias")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	resolved, err := s.ResolveRead("alias")
	if err != nil {
		t.Fatalf("ResolveRead: %v", err)
	}
	if resolved != target {
		t.Errorf("resolved = %q, want %q", resolved, target)
	}
}

func TestResolveReadNonexistentInsideRoot(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	// Nonexistent paths are fine for read resolution as long as they
	// stay inside the root; existence is the command handler's concern.
	resolved, err := s.ResolveRead("not/yet/here.txt")
	if err != nil {
		t.Fatalf("ResolveRead: %v", err)
	}
	if want := filepath.Join(s.Root(), "not", "yet", "here.txt"); resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveWriteParentSemantics(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	// New file directly under the root: parent exists and is confined.
	resolved, err := s.ResolveWrite("new.txt")
	if err != nil {
		t.Fatalf("ResolveWrite: %v", err)
	}
	if want := filepath.Join(s.Root(), "new.txt"); resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}

	// Parent outside the root is rejected even though the final name
	// is harmless.
	_, err = s.ResolveWrite("../stray.txt")
	var confinement *ConfinementError
	if !errors.As(err, &confinement) {
		t.Errorf("ResolveWrite(../stray.txt) = %v, want ConfinementError", err)
	}

	// Absolute target outside the root.
	_, err = s.ResolveWrite("/tmp/stray.txt")
	if !errors.As(err, &confinement) {
		t.Errorf("ResolveWrite(/tmp/stray.txt) = %v, want ConfinementError", err)
	}
}

func TestResolveWriteThroughSymlinkedParent(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(s.Root(), "sneaky")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	// The parent is canonicalized before the containment check, so a
	// symlinked parent pointing outside the root is caught.
	_, err := s.ResolveWrite("sneaky/new.txt")
	var confinement *ConfinementError
	if !errors.As(err, &confinement) {
		t.Fatalf("ResolveWrite through escaping symlink parent = %v, want ConfinementError", err)
	}
}

func TestResolveWriteRejectsDotAndDotDotTargets(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	for _, token := range []string{".", "..", "a/.."} {
		if _, err := s.ResolveWrite(token); err == nil {
			t.Errorf("ResolveWrite(%q) succeeded, want rejection", token)
		}
	}
}

func TestSetCwdRejectsOutsideRoot(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	if err := s.SetCwd(filepath.Dir(s.Root())); err == nil {
		t.Error("SetCwd outside root succeeded, want error")
	}
	if s.Cwd() != s.Root() {
		t.Errorf("cursor moved to %q after rejected SetCwd", s.Cwd())
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()
	s := newSandbox(t)

	if got := s.Display(s.Root()); got != "/" {
		t.Errorf("Display(root) = %q, want \"/\"", got)
	}
	sub := filepath.Join(s.Root(), "a", "b")
	if got := s.Display(sub); got != "/a/b" {
		t.Errorf("Display = %q, want \"/a/b\"", got)
	}
	if got := s.Relative(sub); got != "a/b" {
		t.Errorf("Relative = %q, want \"a/b\"", got)
	}
}
