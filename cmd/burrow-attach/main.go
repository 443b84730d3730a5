// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Burrow-attach is a terminal client for burrow-bridge. It puts the
// local terminal into raw mode, opens a websocket session, and relays
// keystrokes and output so the remote burrow engine feels local. Window
// size changes are forwarded as resize control messages.
//
// Usage:
//
//	burrow-attach [--url ws://host:8022/ws]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/websocket"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resizeControl is the control message the bridge understands on text
// frames. Everything else the client sends travels as binary input.
type resizeControl struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

func run() error {
	var sessionURL string
	flag.StringVar(&sessionURL, "url", "ws://127.0.0.1:8022/ws", "bridge websocket endpoint")
	flag.Parse()

	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	connection, _, err := websocket.DefaultDialer.Dial(sessionURL, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", sessionURL, err)
	}
	defer connection.Close()

	previousState, err := term.MakeRaw(stdinFd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(stdinFd, previousState)

	// The websocket allows only one writer at a time; keystrokes and
	// resize messages come from different goroutines.
	writer := &sessionWriter{connection: connection}

	if err := writer.sendResize(stdinFd); err != nil {
		return fmt.Errorf("send initial terminal size: %w", err)
	}

	// SIGWINCH fires on local window size changes. A stale size after a
	// failed send is harmless; the next change resends.
	winchSignals := make(chan os.Signal, 1)
	signal.Notify(winchSignals, syscall.SIGWINCH)
	defer signal.Stop(winchSignals)
	go func() {
		for range winchSignals {
			_ = writer.sendResize(stdinFd)
		}
	}()

	// Keystrokes flow to the bridge as binary frames. The goroutine exits
	// when stdin closes or the connection goes away.
	go func() {
		inputBuffer := make([]byte, 4096)
		for {
			bytesRead, readErr := os.Stdin.Read(inputBuffer)
			if bytesRead > 0 {
				if writeErr := writer.sendInput(inputBuffer[:bytesRead]); writeErr != nil {
					return
				}
			}
			if readErr != nil {
				_ = connection.Close()
				return
			}
		}
	}()

	// Remote output flows to the local terminal until the session ends.
	for {
		_, payload, readErr := connection.ReadMessage()
		if readErr != nil {
			if websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if readErr == io.EOF {
				return nil
			}
			// Raw mode is restored by the deferred call before this
			// message prints.
			return fmt.Errorf("session ended: %w", readErr)
		}
		if _, writeErr := os.Stdout.Write(payload); writeErr != nil {
			return fmt.Errorf("write to terminal: %w", writeErr)
		}
	}
}

// sessionWriter serializes all outbound websocket writes.
type sessionWriter struct {
	mu         sync.Mutex
	connection *websocket.Conn
}

// sendInput forwards raw keystrokes as a binary frame.
func (w *sessionWriter) sendInput(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connection.WriteMessage(websocket.BinaryMessage, payload)
}

// sendResize reports the current local terminal geometry to the bridge.
func (w *sessionWriter) sendResize(fd int) error {
	columns, rows, err := term.GetSize(fd)
	if err != nil {
		return err
	}
	message, err := json.Marshal(resizeControl{Type: "resize", Rows: rows, Cols: columns})
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connection.WriteMessage(websocket.TextMessage, message)
}
