// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// catSizeLimit bounds what cat will print to the terminal.
const catSizeLimit = 100 * 1024

func (e *Engine) commandCat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("cat: missing file operand")
	}
	for _, token := range args {
		target, err := e.sandbox.ResolveRead(token)
		if err != nil {
			e.printf("%v\n", err)
			continue
		}
		display := e.sandbox.Relative(target)
		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			e.printf("cat: %s: No such file\n", display)
			continue
		}
		if info.Size() > catSizeLimit {
			e.printf("cat: %s: File too large to display (%d bytes)\n", display, info.Size())
			continue
		}
		data, err := os.ReadFile(target)
		if err != nil {
			e.printf("cat: %s: %v\n", display, err)
			continue
		}
		e.out.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			e.printf("\n")
		}
	}
	return nil
}

// commandEcho prints its arguments, unless the argument sequence holds
// a redirection marker: then everything before the marker is written to
// the destination, truncating for ">" and appending for ">>", followed
// by one line terminator.
func (e *Engine) commandEcho(args []string) error {
	markerIndex := -1
	appendMode := false
	for i, token := range args {
		if token == ">>" {
			markerIndex = i
			appendMode = true
			break
		}
		if token == ">" {
			markerIndex = i
			break
		}
	}
	if markerIndex < 0 {
		e.println(strings.Join(args, " "))
		return nil
	}
	if markerIndex+1 >= len(args) {
		return fmt.Errorf("echo: no file specified for redirection")
	}
	text := strings.Join(args[:markerIndex], " ")
	target, err := e.sandbox.ResolveWrite(args[markerIndex+1])
	if err != nil {
		return err
	}
	openFlags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		openFlags |= os.O_APPEND
	} else {
		openFlags |= os.O_TRUNC
	}
	file, err := os.OpenFile(target, openFlags, 0o644)
	if err != nil {
		return fmt.Errorf("echo: cannot write '%s': %v", args[markerIndex+1], err)
	}
	defer file.Close()
	if _, err := file.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("echo: cannot write '%s': %v", args[markerIndex+1], err)
	}
	return nil
}

func (e *Engine) commandCopy(args []string) error {
	flags := newFlagSet("cp")
	recursive := flags.BoolP("recursive", "r", false, "copy directories recursively")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("cp: %v", err)
	}
	operands := flags.Args()
	if len(operands) < 2 {
		return fmt.Errorf("cp: missing operand")
	}
	sources := operands[:len(operands)-1]
	destination, err := e.sandbox.ResolveWrite(operands[len(operands)-1])
	if err != nil {
		return err
	}
	destinationInfo, statErr := os.Stat(destination)
	destinationIsDir := statErr == nil && destinationInfo.IsDir()

	// Multi-source copies require an existing directory destination.
	// This is validated up front so no partial transfer happens on a
	// bad destination; individual transfer failures after this point
	// are reported independently and the batch continues.
	if len(sources) > 1 && !destinationIsDir {
		return fmt.Errorf("cp: target '%s' is not a directory", e.sandbox.Relative(destination))
	}

	for _, token := range sources {
		source, err := e.sandbox.ResolveRead(token)
		if err != nil {
			e.printf("%v\n", err)
			continue
		}
		sourceInfo, err := os.Stat(source)
		if err != nil {
			e.printf("cp: cannot stat '%s': No such file or directory\n", e.sandbox.Relative(source))
			continue
		}
		target := destination
		if destinationIsDir {
			target = filepath.Join(destination, filepath.Base(source))
		}
		if sourceInfo.IsDir() {
			if !*recursive {
				e.printf("cp: -r not specified; omitting directory '%s'\n", e.sandbox.Relative(source))
				continue
			}
			if err := copyTree(source, target); err != nil {
				e.printf("cp: cannot copy '%s': %v\n", e.sandbox.Relative(source), err)
			}
			continue
		}
		if err := copyFile(source, target); err != nil {
			e.printf("cp: cannot copy '%s': %v\n", e.sandbox.Relative(source), err)
		}
	}
	return nil
}

func (e *Engine) commandMove(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("mv: missing operand")
	}
	sources := args[:len(args)-1]
	destination, err := e.sandbox.ResolveWrite(args[len(args)-1])
	if err != nil {
		return err
	}
	destinationInfo, statErr := os.Stat(destination)
	destinationIsDir := statErr == nil && destinationInfo.IsDir()

	if len(sources) > 1 && !destinationIsDir {
		return fmt.Errorf("mv: when moving multiple files, destination must be an existing directory")
	}

	for _, token := range sources {
		source, err := e.sandbox.ResolveRead(token)
		if err != nil {
			e.printf("%v\n", err)
			continue
		}
		if _, err := os.Stat(source); err != nil {
			e.printf("mv: cannot stat '%s': No such file or directory\n", e.sandbox.Relative(source))
			continue
		}
		target := destination
		if destinationIsDir {
			target = filepath.Join(destination, filepath.Base(source))
		}
		if err := os.Rename(source, target); err != nil {
			e.printf("mv: cannot move '%s': %v\n", e.sandbox.Relative(source), err)
		}
	}
	return nil
}

func (e *Engine) commandHead(args []string) error {
	lineCount, token, err := parseLineCountArgs("head", args)
	if err != nil {
		return err
	}
	target, err := e.sandbox.ResolveRead(token)
	if err != nil {
		return err
	}
	file, err := os.Open(target)
	if err != nil {
		return fmt.Errorf("head: %s: No such file", e.sandbox.Relative(target))
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for printed := 0; printed < lineCount && scanner.Scan(); printed++ {
		e.println(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("head: %s: %v", e.sandbox.Relative(target), err)
	}
	return nil
}

func (e *Engine) commandTail(args []string) error {
	lineCount, token, err := parseLineCountArgs("tail", args)
	if err != nil {
		return err
	}
	target, err := e.sandbox.ResolveRead(token)
	if err != nil {
		return err
	}
	file, err := os.Open(target)
	if err != nil {
		return fmt.Errorf("tail: %s: No such file", e.sandbox.Relative(target))
	}
	defer file.Close()

	// Keep only the last lineCount lines while scanning forward; the
	// window bounds memory for files with many lines.
	window := make([]string, 0, lineCount)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineCount > 0 && scanner.Scan() {
		if len(window) == lineCount {
			copy(window, window[1:])
			window = window[:lineCount-1]
		}
		window = append(window, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("tail: %s: %v", e.sandbox.Relative(target), err)
	}
	for _, line := range window {
		e.println(line)
	}
	return nil
}

// parseLineCountArgs handles the shared head/tail invocation shape:
// an optional -n/--lines count followed by exactly one file operand.
func parseLineCountArgs(name string, args []string) (lineCount int, token string, err error) {
	flags := newFlagSet(name)
	count := flags.IntP("lines", "n", 10, "number of lines")
	if err := flags.Parse(args); err != nil {
		return 0, "", fmt.Errorf("%s: invalid option", name)
	}
	if flags.NArg() == 0 {
		return 0, "", fmt.Errorf("%s: missing file operand", name)
	}
	if *count < 0 {
		return 0, "", fmt.Errorf("%s: invalid line count: %d", name, *count)
	}
	return *count, flags.Arg(0), nil
}

// copyFile copies contents and permissions, preserving the source's
// modification time.
func copyFile(source, destination string) error {
	sourceFile, err := os.Open(source)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destinationFile, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, sourceInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		destinationFile.Close()
		return err
	}
	if err := destinationFile.Close(); err != nil {
		return err
	}
	return os.Chtimes(destination, sourceInfo.ModTime(), sourceInfo.ModTime())
}

// copyTree copies a directory recursively.
func copyTree(source, destination string) error {
	return filepath.WalkDir(source, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, relative)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
