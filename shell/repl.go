// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// Run drives the interactive session: banner, prompt, line editing with
// history and completion, and the execute loop. It returns when an exit
// directive runs or input reaches end-of-file.
func (e *Engine) Run() error {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:          e.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &completer{engine: e},
	})
	if err != nil {
		return fmt.Errorf("initialize line editor: %w", err)
	}
	defer instance.Close()

	e.printf("Burrow sandboxed terminal\n")
	e.printf("Sandbox root: %s\n", e.sandbox.Root())
	e.printf("All operations restricted to the sandbox. Type 'help'.\n")

	for {
		line, err := instance.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			e.printf("\nExiting.\n")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if e.Execute(line) {
			return nil
		}
		instance.SetPrompt(e.prompt())
	}
}

func (e *Engine) prompt() string {
	return fmt.Sprintf("burrow:%s$ ", e.sandbox.Display(e.sandbox.Cwd()))
}

// completer implements readline.AutoCompleter over command names and
// sandbox-relative paths.
type completer struct {
	engine *Engine
}

func (c *completer) Do(line []rune, position int) ([][]rune, int) {
	typed := string(line[:position])
	wordStart := strings.LastIndexAny(typed, " \t") + 1
	word := typed[wordStart:]

	var candidates []string
	if wordStart == 0 {
		for _, name := range CommandNames {
			if strings.HasPrefix(name, word) {
				candidates = append(candidates, name)
			}
		}
	}
	candidates = append(candidates, c.pathCandidates(word)...)
	sort.Strings(candidates)

	completions := make([][]rune, 0, len(candidates))
	for _, candidate := range candidates {
		completions = append(completions, []rune(candidate[len(word):]))
	}
	return completions, len([]rune(word))
}

// pathCandidates lists sandbox entries completing the typed word.
func (c *completer) pathCandidates(word string) []string {
	directoryPart := ""
	base := word
	if slash := strings.LastIndex(word, "/"); slash >= 0 {
		directoryPart = word[:slash+1]
		base = word[slash+1:]
	}
	lookup := directoryPart
	if lookup == "" {
		lookup = "."
	}
	resolved, err := c.engine.sandbox.ResolveRead(lookup)
	if err != nil {
		return nil
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil
	}
	var candidates []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), base) {
			continue
		}
		candidate := directoryPart + entry.Name()
		if entry.IsDir() {
			candidate += "/"
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}
