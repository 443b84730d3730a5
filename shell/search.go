// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// commandFind walks depth-first from a read-resolved start path and
// prints every directory and file whose name matches the optional
// shell-style pattern. Invocation shapes, matching the conventional
// surface:
//
//	find
//	find <start>
//	find -name <pattern>
//	find <start> -name <pattern>
func (e *Engine) commandFind(args []string) error {
	start := "."
	pattern := ""
	switch {
	case len(args) >= 2 && args[0] == "-name":
		pattern = args[1]
	case len(args) >= 3 && args[1] == "-name":
		start = args[0]
		pattern = args[2]
	case len(args) >= 1:
		start = args[0]
	}

	startPath, err := e.sandbox.ResolveRead(start)
	if err != nil {
		return err
	}
	if _, err := os.Stat(startPath); err != nil {
		return fmt.Errorf("find: '%s': No such file or directory", start)
	}

	return filepath.WalkDir(startPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are reported and skipped, not fatal.
			e.printf("find: %s: %v\n", e.sandbox.Relative(path), walkErr)
			return fs.SkipDir
		}
		if path == startPath {
			return nil
		}
		if pattern != "" {
			matched, matchErr := filepath.Match(pattern, entry.Name())
			if matchErr != nil {
				return fmt.Errorf("find: invalid pattern '%s'", pattern)
			}
			if !matched {
				return nil
			}
		}
		e.println(e.sandbox.Relative(path))
		return nil
	})
}

// commandGrep prints line-numbered regular-expression matches across an
// explicit file list, one "path:line:content" line per match.
func (e *Engine) commandGrep(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("grep: usage: grep PATTERN FILE...")
	}
	expression, err := regexp.Compile(args[0])
	if err != nil {
		return fmt.Errorf("grep: invalid pattern")
	}
	for _, token := range args[1:] {
		target, resolveErr := e.sandbox.ResolveRead(token)
		if resolveErr != nil {
			e.printf("%v\n", resolveErr)
			continue
		}
		info, statErr := os.Stat(target)
		if statErr != nil || info.IsDir() {
			continue
		}
		if err := e.grepFile(expression, target); err != nil {
			e.printf("grep: %s: %v\n", e.sandbox.Relative(target), err)
		}
	}
	return nil
}

func (e *Engine) grepFile(expression *regexp.Regexp, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	display := e.sandbox.Relative(path)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if expression.MatchString(line) {
			e.printf("%s:%d:%s\n", display, lineNumber, strings.TrimRight(line, " \t\r"))
		}
	}
	return scanner.Err()
}
