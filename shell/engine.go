// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"io"
	"os"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/burrowterm/burrow/audit"
	"github.com/burrowterm/burrow/sandbox"
)

// handlerFunc executes one command against the already-expanded
// argument list. A returned error is formatted as a single line at the
// dispatch boundary; it never terminates the session.
type handlerFunc func(args []string) error

// Engine dispatches parsed command lines to command handlers. It owns
// the session's sandbox (confinement root plus cursor) and is strictly
// single-threaded: one Execute call at a time per session.
type Engine struct {
	sandbox *sandbox.Sandbox
	audit   *audit.Logger
	out     io.Writer

	topProcesses int
	handlers     map[string]handlerFunc
	terminated   bool
}

// Options configures an Engine.
type Options struct {
	// Output receives all command output. Defaults to os.Stdout.
	Output io.Writer

	// Audit receives one record per executed line. Defaults to a
	// discard logger.
	Audit *audit.Logger

	// MonitorTopProcesses is how many processes the monitor command
	// lists. Defaults to 8.
	MonitorTopProcesses int
}

// New builds an engine with its closed handler table. Unknown command
// names fall through to a single default case in Execute; nothing is
// dispatched by dynamic lookup outside this table.
func New(sb *sandbox.Sandbox, options Options) *Engine {
	if options.Output == nil {
		options.Output = os.Stdout
	}
	if options.Audit == nil {
		options.Audit = audit.Discard()
	}
	if options.MonitorTopProcesses == 0 {
		options.MonitorTopProcesses = 8
	}
	engine := &Engine{
		sandbox:      sb,
		audit:        options.Audit,
		out:          options.Output,
		topProcesses: options.MonitorTopProcesses,
	}
	engine.handlers = map[string]handlerFunc{
		"ls":      engine.commandList,
		"cd":      engine.commandChangeDir,
		"pwd":     engine.commandPrintCwd,
		"mkdir":   engine.commandMkdir,
		"rm":      engine.commandRemove,
		"touch":   engine.commandTouch,
		"cat":     engine.commandCat,
		"echo":    engine.commandEcho,
		"cp":      engine.commandCopy,
		"mv":      engine.commandMove,
		"head":    engine.commandHead,
		"tail":    engine.commandTail,
		"stat":    engine.commandStat,
		"chmod":   engine.commandChmod,
		"find":    engine.commandFind,
		"grep":    engine.commandGrep,
		"monitor": engine.commandMonitor,
		"ps":      engine.commandMonitor,
		"help":    engine.commandHelp,
	}
	return engine
}

// Sandbox returns the engine's sandbox, exposed for the interactive
// prompt and completion.
func (e *Engine) Sandbox() *sandbox.Sandbox { return e.sandbox }

// Terminated reports whether an exit directive has been executed.
func (e *Engine) Terminated() bool { return e.terminated }

// Execute runs one command line. It returns true when the line was an
// exit directive and the enclosing session should end. All other
// outcomes, including errors, return false and leave the session
// running.
func (e *Engine) Execute(line string) bool {
	tokens, err := shellquote.Split(line)
	if err != nil {
		e.printf("parse error: invalid quoting or tokenization\n")
		return false
	}
	if len(tokens) == 0 {
		return false
	}
	e.audit.Record(line, e.sandbox.Cwd())

	name := tokens[0]
	if name == "exit" || name == "quit" {
		e.terminated = true
		return true
	}

	handler, known := e.handlers[name]
	if !known {
		e.printf("Unknown command: %s. Type 'help'.\n", name)
		return false
	}

	args := e.expandGlobs(name, tokens[1:])
	if err := handler(args); err != nil {
		// The dispatch boundary: confinement violations and all other
		// per-command failures become one printed line.
		e.printf("%v\n", err)
	}
	return false
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *Engine) println(line string) {
	fmt.Fprintln(e.out, line)
}
