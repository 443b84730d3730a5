// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell implements the confined command engine: parsing a line
// into a command and arguments, expanding glob patterns against the
// session cursor, and dispatching to the matching handler. Every path
// argument passes through the sandbox resolvers before any filesystem
// operation runs.
//
// The engine is single-threaded and synchronous per session; the only
// states are running and terminated, and the exit/quit directive is the
// only transition into terminated. Per-command errors are caught at the
// dispatch boundary, printed as one human-readable line, and never end
// the session.
package shell
