// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "fmt"

// ConfinementError reports a path that resolves outside the confinement
// root. When a resolver returns it, the caller must not perform the
// underlying filesystem operation.
type ConfinementError struct {
	// Requested is the path token as the user supplied it.
	Requested string

	// Reason describes which check failed (e.g. "path escapes sandbox").
	Reason string
}

func (e *ConfinementError) Error() string {
	return fmt.Sprintf("access denied: %s: %s", e.Reason, e.Requested)
}

// escapeError constructs the standard confinement rejection for a token.
func escapeError(token string) *ConfinementError {
	return &ConfinementError{Requested: token, Reason: "path escapes sandbox"}
}

// parentEscapeError constructs the rejection for a write target whose
// parent directory lies outside the root.
func parentEscapeError(token string) *ConfinementError {
	return &ConfinementError{Requested: token, Reason: "path escapes sandbox (parent)"}
}
