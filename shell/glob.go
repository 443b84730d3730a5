// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"path/filepath"
	"sort"
	"strings"
)

// expandGlobs expands wildcard tokens against the filesystem. A pattern
// is matched first relative to the session cursor; only if that yields
// nothing is it retried relative to the confinement root. A pattern
// with no matches in either attempt passes through as its literal text,
// matching conventional shell no-match behavior. Matches are sorted
// lexicographically and substituted in place, preserving the position
// of all other tokens.
//
// Tokens that are patterns by contract rather than filenames are never
// expanded: the operand of find's -name, and grep's leading regular
// expression (whose character classes would otherwise be taken for
// glob brackets).
func (e *Engine) expandGlobs(command string, tokens []string) []string {
	expanded := make([]string, 0, len(tokens))
	for i, token := range tokens {
		if isPatternOperand(command, tokens, i) || !strings.ContainsAny(token, "*?[") {
			expanded = append(expanded, token)
			continue
		}
		matches := e.globMatches(token)
		if len(matches) == 0 {
			expanded = append(expanded, token)
			continue
		}
		sort.Strings(matches)
		expanded = append(expanded, matches...)
	}
	return expanded
}

// isPatternOperand reports whether tokens[i] is a match pattern for the
// command itself and must reach the handler verbatim.
func isPatternOperand(command string, tokens []string, i int) bool {
	switch command {
	case "find":
		return i > 0 && tokens[i-1] == "-name"
	case "grep":
		return i == 0
	}
	return false
}

// globMatches runs the two sequential match attempts for one pattern.
// Absolute patterns get a single attempt, since they do not depend on
// the cursor. Matched paths are returned in absolute form; confinement
// of each match is enforced later when the handler resolves it.
func (e *Engine) globMatches(pattern string) []string {
	if filepath.IsAbs(pattern) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil
		}
		return matches
	}
	matches, err := filepath.Glob(filepath.Join(e.sandbox.Cwd(), pattern))
	if err != nil {
		return nil
	}
	if len(matches) > 0 {
		return matches
	}
	matches, err = filepath.Glob(filepath.Join(e.sandbox.Root(), pattern))
	if err != nil {
		return nil
	}
	return matches
}
