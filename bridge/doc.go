// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge implements Burrow's remote session bridge: for each
// accepted connection it allocates a pseudo-terminal, spawns one engine
// process attached to the slave side, and runs a full-duplex relay
// between the PTY master and the remote transport until teardown.
//
// The package is organized around the session data flow:
//
//   - protocol.go: classification of inbound frames into resize control
//     messages and raw input bytes
//   - session.go: PTY allocation, child process lifetime, the relay
//     loops, and the single idempotent teardown path
//   - server.go: the HTTP surface (websocket upgrade, embedded browser
//     page, health check)
//
// Teardown is triggered by remote disconnect, child exit (EOF on the
// master), or an unrecoverable I/O error, whichever fires first, and
// runs exactly once: it closes the transport, signals the child, and
// closes the master descriptor.
package bridge
