// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"bytes"
	"encoding/json"
)

// resizeMessage is the only structured control message the bridge
// recognizes: {"type":"resize","rows":<int>,"cols":<int>}. Any other
// payload, structured or not, is treated as literal terminal input.
type resizeMessage struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// Default terminal geometry, used at session start and for resize
// messages that omit a dimension.
const (
	defaultRows = 24
	defaultCols = 80
)

// parseResize attempts to interpret a text payload as a resize control
// message. It returns ok=false for anything that is not a well-formed
// resize: such payloads must be forwarded to the child as input bytes,
// never interpreted.
func parseResize(payload []byte) (rows, cols uint16, ok bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, 0, false
	}
	var message resizeMessage
	if err := json.Unmarshal(trimmed, &message); err != nil {
		return 0, 0, false
	}
	if message.Type != "resize" {
		return 0, 0, false
	}
	// A resize-typed message is always consumed as control, never
	// forwarded as input. Missing or nonsense dimensions fall back to
	// the defaults rather than feeding garbage to the terminal driver.
	if message.Rows <= 0 || message.Rows > 0xffff {
		message.Rows = defaultRows
	}
	if message.Cols <= 0 || message.Cols > 0xffff {
		message.Cols = defaultCols
	}
	return uint16(message.Rows), uint16(message.Cols), true
}
