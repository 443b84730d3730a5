// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import "testing"

func TestParseResizeValid(t *testing.T) {
	t.Parallel()
	rows, cols, ok := parseResize([]byte(`{"type":"resize","rows":50,"cols":120}`))
	if !ok {
		t.Fatal("well-formed resize not recognized")
	}
	if rows != 50 || cols != 120 {
		t.Errorf("geometry = %dx%d, want 50x120", rows, cols)
	}
}

func TestParseResizeDefaultsMissingDimensions(t *testing.T) {
	t.Parallel()
	rows, cols, ok := parseResize([]byte(`{"type":"resize"}`))
	if !ok {
		t.Fatal("resize without dimensions not recognized")
	}
	if rows != defaultRows || cols != defaultCols {
		t.Errorf("geometry = %dx%d, want defaults %dx%d", rows, cols, defaultRows, defaultCols)
	}

	// Nonsense dimensions also fall back rather than being applied.
	rows, cols, ok = parseResize([]byte(`{"type":"resize","rows":-4,"cols":999999}`))
	if !ok {
		t.Fatal("resize with bad dimensions not recognized as control")
	}
	if rows != defaultRows || cols != defaultCols {
		t.Errorf("geometry = %dx%d, want defaults", rows, cols)
	}
}

func TestParseResizeToleratesSurroundingWhitespace(t *testing.T) {
	t.Parallel()
	if _, _, ok := parseResize([]byte("  {\"type\":\"resize\",\"rows\":10,\"cols\":20}\n")); !ok {
		t.Error("resize with surrounding whitespace not recognized")
	}
}

func TestParseResizeRejectsNonControlPayloads(t *testing.T) {
	t.Parallel()
	// Everything here must be forwarded to the child as literal input.
	inputs := []string{
		"plain keystrokes",
		"{not json",
		`{"type":"greeting"}`,
		`{"rows":10,"cols":20}`,
		`["resize",10,20]`,
		"",
	}
	for _, payload := range inputs {
		if _, _, ok := parseResize([]byte(payload)); ok {
			t.Errorf("parseResize(%q) classified as control, want input", payload)
		}
	}
}
