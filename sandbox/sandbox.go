// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sandbox holds the confinement root and the session's current logical
// directory. The root is established once and never changes; the cursor
// moves only through SetCwd after a successful directory change. One
// Sandbox belongs to exactly one engine instance and is never shared
// across sessions.
type Sandbox struct {
	// root is the absolute, symlink-resolved confinement root.
	root string

	// cwd is the session cursor, always root or a descendant of it.
	cwd string
}

// New creates the confinement root directory if needed and returns a
// Sandbox with the cursor positioned at the root. The root path is made
// absolute and symlink-resolved once here so that all later containment
// checks compare canonical paths.
func New(rootDirectory string) (*Sandbox, error) {
	absolute, err := filepath.Abs(rootDirectory)
	if err != nil {
		return nil, fmt.Errorf("resolve sandbox root %q: %w", rootDirectory, err)
	}
	if err := os.MkdirAll(absolute, 0o755); err != nil {
		return nil, fmt.Errorf("create sandbox root %q: %w", absolute, err)
	}
	resolved, err := filepath.EvalSymlinks(absolute)
	if err != nil {
		return nil, fmt.Errorf("canonicalize sandbox root %q: %w", absolute, err)
	}
	return &Sandbox{root: resolved, cwd: resolved}, nil
}

// Root returns the absolute confinement root.
func (s *Sandbox) Root() string { return s.root }

// Cwd returns the session cursor as an absolute path.
func (s *Sandbox) Cwd() string { return s.cwd }

// SetCwd moves the session cursor. The path must already be resolved
// (typically via ResolveRead); containment is still re-checked so a
// caller bug cannot park the cursor outside the root.
func (s *Sandbox) SetCwd(path string) error {
	if !s.contains(path) {
		return escapeError(path)
	}
	s.cwd = path
	return nil
}

// ResolveRead validates a user-supplied path token for a read operation.
// Absolute tokens are taken as-is; relative tokens are joined to the
// cursor. The candidate is canonicalized — symlinks and relative
// segments resolved, with best-effort semantics for paths that do not
// exist yet — and rejected with a ConfinementError unless the result is
// the root or a descendant of it.
func (s *Sandbox) ResolveRead(token string) (string, error) {
	candidate := s.join(token)
	resolved, err := resolveBestEffort(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", token, err)
	}
	if !s.contains(resolved) {
		return "", escapeError(token)
	}
	return resolved, nil
}

// ResolveWrite validates a user-supplied path token for a write or
// create operation. Only the parent directory of the target is
// canonicalized and checked, since the target itself may not exist.
// The final path segment is required to be a plain name after lexical
// cleaning, so a trailing "." or ".." cannot slip past the parent-only
// check.
func (s *Sandbox) ResolveWrite(token string) (string, error) {
	candidate := s.join(token)
	base := filepath.Base(candidate)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", parentEscapeError(token)
	}
	parent, err := resolveBestEffort(filepath.Dir(candidate))
	if err != nil {
		return "", fmt.Errorf("resolve parent of %q: %w", token, err)
	}
	if !s.contains(parent) {
		return "", parentEscapeError(token)
	}
	return filepath.Join(parent, base), nil
}

// Display renders an absolute path as a sandbox-relative path with a
// leading slash ("/" for the root itself). Paths outside the sandbox
// are returned unchanged; that only happens for diagnostics.
func (s *Sandbox) Display(path string) string {
	relative, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(relative, "..") {
		return path
	}
	if relative == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(relative)
}

// Relative renders an absolute path relative to the root without a
// leading slash, the form used by find and grep output. Paths outside
// the sandbox are returned unchanged.
func (s *Sandbox) Relative(path string) string {
	relative, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(relative, "..") {
		return path
	}
	return filepath.ToSlash(relative)
}

// join produces the absolute, lexically cleaned candidate for a token:
// absolute tokens pass through, relative tokens attach to the cursor.
func (s *Sandbox) join(token string) string {
	if filepath.IsAbs(token) {
		return filepath.Clean(token)
	}
	return filepath.Join(s.cwd, token)
}

// contains reports whether path equals the root or lies beneath it.
// Both sides must already be canonical.
func (s *Sandbox) contains(path string) bool {
	relative, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	if relative == "." {
		return true
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}

// resolveBestEffort canonicalizes an absolute path, following symlinks
// in every component that exists. For a path that does not fully exist,
// the deepest existing ancestor is resolved and the nonexistent suffix
// is re-attached, mirroring strict=false resolution: validation then
// applies to the most truthful form of the path available.
func resolveBestEffort(path string) (string, error) {
	suffix := ""
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Walked all the way to the filesystem root without
			// finding an existing ancestor.
			return filepath.Join(current, suffix), nil
		}
		suffix = filepath.Join(filepath.Base(current), suffix)
		current = parent
	}
}
