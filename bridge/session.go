// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// Transport is one remote duplex connection delivering frames. Frames
// written by the bridge carry raw terminal output; frames read from the
// remote side are either raw input bytes or, for text frames, possibly
// a resize control message.
//
// Close must be safe to call concurrently with a blocked ReadFrame or
// WriteFrame and must unblock both.
type Transport interface {
	// ReadFrame returns the next inbound payload and whether it
	// arrived as a text frame. Only text frames are eligible for
	// control-message classification.
	ReadFrame() (payload []byte, text bool, err error)

	// WriteFrame sends one outbound payload of terminal output.
	WriteFrame(payload []byte) error

	Close() error
}

// Options configures a session.
type Options struct {
	// Logger receives session lifecycle events. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Rows and Cols set the initial terminal geometry. Zero values
	// default to 24x80.
	Rows, Cols uint16
}

// Run spawns command as a child attached to a fresh pseudo-terminal and
// relays between the PTY master and the transport until the session
// ends. It blocks until teardown completes and the child is reaped.
//
// A PTY allocation or spawn failure is returned before any relay
// starts; the caller surfaces it as a connection-level failure. After a
// successful start, Run returns nil on every normal end condition:
// remote disconnect, child exit, or relay I/O error.
func Run(transport Transport, command *exec.Cmd, options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if options.Rows == 0 {
		options.Rows = defaultRows
	}
	if options.Cols == 0 {
		options.Cols = defaultCols
	}

	master, err := pty.StartWithSize(command, &pty.Winsize{Rows: options.Rows, Cols: options.Cols})
	if err != nil {
		return fmt.Errorf("allocate PTY for %q: %w", command.Path, err)
	}
	logger.Info("session started", "pid", command.Process.Pid)

	// done is closed when any activity finishes, triggering the single
	// teardown pass below. Both relay goroutines and the child waiter
	// converge here no matter which fires first.
	done := make(chan struct{})
	var doneOnce sync.Once
	triggerDone := func() { doneOnce.Do(func() { close(done) }) }

	var goroutineWait sync.WaitGroup

	// Goroutine: PTY master output → transport.
	goroutineWait.Add(1)
	go func() {
		defer goroutineWait.Done()
		defer triggerDone()
		readBuffer := make([]byte, 4096)
		for {
			bytesRead, readErr := master.Read(readBuffer)
			if bytesRead > 0 {
				if writeErr := transport.WriteFrame(readBuffer[:bytesRead]); writeErr != nil {
					// The remote side disconnected. Normal shutdown
					// trigger, not an error.
					return
				}
			}
			if readErr != nil {
				// EIO is the normal signal that the slave side closed
				// (the child exited). Any other read error also ends
				// the relay.
				return
			}
		}
	}()

	// Goroutine: transport → PTY master input or resize ioctl. Because
	// one goroutine consumes frames in order, a resize is fully applied
	// before any input bytes received after it reach the master.
	goroutineWait.Add(1)
	go func() {
		defer goroutineWait.Done()
		defer triggerDone()
		for {
			payload, isText, readErr := transport.ReadFrame()
			if readErr != nil {
				// Remote disconnect, or the transport was closed
				// during shutdown.
				return
			}
			if isText {
				if rows, columns, isResize := parseResize(payload); isResize {
					// Resize failure usually means the PTY is gone.
					if resizeErr := setWindowSize(int(master.Fd()), columns, rows); resizeErr != nil {
						return
					}
					continue
				}
			}
			if len(payload) > 0 {
				// Write failures are swallowed: the child may already
				// have exited, and EOF detection on the read side is
				// the authoritative teardown signal.
				_, _ = master.Write(payload)
			}
		}
	}()

	// Goroutine: reap the child when it exits on its own.
	childExited := make(chan error, 1)
	go func() {
		childExited <- command.Wait()
		triggerDone()
	}()

	<-done

	// Teardown, exactly once regardless of which trigger fired: close
	// the transport to unblock the frame reader, signal the child
	// (best effort, without waiting), and close the master to unblock
	// the PTY reader.
	transport.Close()
	_ = command.Process.Signal(syscall.SIGTERM)
	master.Close()

	goroutineWait.Wait()
	waitErr := <-childExited

	logger.Info("session ended", "pid", command.Process.Pid)

	if waitErr != nil && !isNormalChildExit(waitErr) {
		return fmt.Errorf("engine process exited: %w", waitErr)
	}
	return nil
}

// setWindowSize applies terminal dimensions to a PTY master descriptor
// with TIOCSWINSZ, propagating SIGWINCH to the child's foreground
// process group.
func setWindowSize(fd int, columns, rows uint16) error {
	winsize := &unix.Winsize{
		Col: columns,
		Row: rows,
	}
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, winsize)
}

// isNormalChildExit reports whether the child's exit is a normal end of
// session. During teardown the child can exit several ways: code 0
// (exit directive), killed by the SIGTERM sent during cleanup, or
// SIGHUP when its controlling PTY closes.
func isNormalChildExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if exitErr.ExitCode() == 0 {
		return true
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return false
	}
	return status.Signal() == syscall.SIGTERM || status.Signal() == syscall.SIGHUP
}
