// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestGlobExpansionAgainstCursor(t *testing.T) {
	t.Parallel()
	engine, output := newTestEngine(t)
	root := engine.Sandbox().Root()

	run(t, engine, output, "touch b.txt a.txt c.log")

	expanded := engine.expandGlobs("ls", []string{"*.txt"})
	want := []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
	}
	if !reflect.DeepEqual(expanded, want) {
		t.Errorf("expandGlobs = %v, want sorted %v", expanded, want)
	}
}

func TestGlobFallbackToRoot(t *testing.T) {
	t.Parallel()
	engine, output := newTestEngine(t)
	root := engine.Sandbox().Root()

	run(t, engine, output, "touch top.txt")
	run(t, engine, output, "mkdir sub")
	run(t, engine, output, "cd sub")

	// No match under the cursor; the second attempt against the root
	// finds the file.
	expanded := engine.expandGlobs("ls", []string{"top.*"})
	want := []string{filepath.Join(root, "top.txt")}
	if !reflect.DeepEqual(expanded, want) {
		t.Errorf("expandGlobs = %v, want %v", expanded, want)
	}
}

func TestGlobNoMatchPassthrough(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	expanded := engine.expandGlobs("ls", []string{"nothing-*.here"})
	if !reflect.DeepEqual(expanded, []string{"nothing-*.here"}) {
		t.Errorf("expandGlobs = %v, want literal passthrough", expanded)
	}
}

func TestGlobPreservesNonPatternTokens(t *testing.T) {
	t.Parallel()
	engine, output := newTestEngine(t)
	root := engine.Sandbox().Root()

	run(t, engine, output, "touch m1.txt m2.txt")

	expanded := engine.expandGlobs("ls", []string{"-n", "m*.txt", "dest"})
	want := []string{
		"-n",
		filepath.Join(root, "m1.txt"),
		filepath.Join(root, "m2.txt"),
		"dest",
	}
	if !reflect.DeepEqual(expanded, want) {
		t.Errorf("expandGlobs = %v, want %v", expanded, want)
	}
}

func TestGlobExemptsPatternOperands(t *testing.T) {
	t.Parallel()
	engine, output := newTestEngine(t)
	root := engine.Sandbox().Root()

	run(t, engine, output, "touch a.txt")

	// find's -name operand stays literal even when it would match.
	expanded := engine.expandGlobs("find", []string{".", "-name", "*.txt"})
	if !reflect.DeepEqual(expanded, []string{".", "-name", "*.txt"}) {
		t.Errorf("find -name operand expanded: %v", expanded)
	}

	// grep's regular expression stays literal; its file operands expand.
	expanded = engine.expandGlobs("grep", []string{"ab[c]", "*.txt"})
	want := []string{"ab[c]", filepath.Join(root, "a.txt")}
	if !reflect.DeepEqual(expanded, want) {
		t.Errorf("grep expansion = %v, want %v", expanded, want)
	}
}
