// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox implements Burrow's filesystem confinement: a single
// root directory outside of which no command may read, write, or list.
//
// The package is organized around the two resolution contracts:
//
//   - sandbox.go: the Sandbox type (confinement root + session cursor)
//     and the ResolveRead/ResolveWrite path validation entry points
//   - errors.go: the confinement error type and helpers for the shared
//     error taxonomy
//
// Read resolution fully canonicalizes a path (symlinks, "." and ".."
// segments) before checking containment, so escape attempts through
// symlinks or parent-directory chains are rejected rather than
// followed. Write resolution canonicalizes only the parent directory,
// since the target itself may not exist yet.
package sandbox
