// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

// newFlagSet builds a pflag set for per-command option parsing. Errors
// surface through the returned error of Parse, not through pflag's own
// output or exit behavior.
func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	return flags
}

func (e *Engine) commandList(args []string) error {
	token := "."
	if len(args) > 0 {
		token = args[0]
	}
	target, err := e.sandbox.ResolveRead(token)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ls: cannot access '%s': No such file or directory", token)
	}
	if err != nil {
		return fmt.Errorf("ls: cannot access '%s': %v", token, err)
	}
	if !info.IsDir() {
		e.println(filepath.Base(target))
		return nil
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("ls: cannot open directory '%s': %v", token, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
	for _, entry := range entries {
		suffix := ""
		if entry.IsDir() {
			suffix = "/"
		}
		e.println(entry.Name() + suffix)
	}
	return nil
}

func (e *Engine) commandPrintCwd(args []string) error {
	e.println(e.sandbox.Display(e.sandbox.Cwd()))
	return nil
}

func (e *Engine) commandChangeDir(args []string) error {
	if len(args) == 0 {
		return e.sandbox.SetCwd(e.sandbox.Root())
	}
	target, err := e.sandbox.ResolveRead(args[0])
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("cd: no such directory: %s", e.sandbox.Display(target))
	}
	return e.sandbox.SetCwd(target)
}

func (e *Engine) commandMkdir(args []string) error {
	flags := newFlagSet("mkdir")
	parents := flags.BoolP("parents", "p", false, "create parent directories as needed")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("mkdir: %v", err)
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("mkdir: missing operand")
	}
	token := flags.Arg(0)
	target, err := e.sandbox.ResolveWrite(token)
	if err != nil {
		return err
	}
	if *parents {
		err = os.MkdirAll(target, 0o755)
	} else {
		err = os.Mkdir(target, 0o755)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("mkdir: cannot create directory '%s': File exists", token)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("mkdir: cannot create directory '%s': Permission denied", token)
	default:
		return fmt.Errorf("mkdir: cannot create directory '%s': %v", token, err)
	}
}

func (e *Engine) commandRemove(args []string) error {
	flags := newFlagSet("rm")
	recursive := flags.BoolP("recursive", "r", false, "remove directories and their contents")
	flags.BoolP("force", "f", false, "ignored; accepted for familiarity")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("rm: %v", err)
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("rm: missing operand")
	}
	target, err := e.sandbox.ResolveRead(flags.Arg(0))
	if err != nil {
		return err
	}
	display := e.sandbox.Relative(target)
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("rm: cannot remove '%s': No such file or directory", display)
	}
	if err != nil {
		return fmt.Errorf("rm: cannot remove '%s': %v", display, err)
	}
	if info.IsDir() {
		// The recursive flag is a deliberate guard against accidental
		// destructive recursion.
		if !*recursive {
			return fmt.Errorf("rm: cannot remove '%s': Is a directory (use -r)", display)
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("rm: cannot remove '%s': %v", display, err)
		}
		return nil
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("rm: cannot remove '%s': %v", display, err)
	}
	return nil
}

func (e *Engine) commandTouch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("touch: missing file operand")
	}
	for _, token := range args {
		target, err := e.sandbox.ResolveWrite(token)
		if err != nil {
			e.printf("%v\n", err)
			continue
		}
		if _, statErr := os.Stat(target); statErr == nil {
			now := time.Now()
			if err := os.Chtimes(target, now, now); err != nil {
				e.printf("touch: cannot touch '%s': %v\n", token, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			e.printf("touch: cannot touch '%s': %v\n", token, err)
			continue
		}
		file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			e.printf("touch: cannot touch '%s': %v\n", token, err)
			continue
		}
		file.Close()
	}
	return nil
}

func (e *Engine) commandChmod(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("chmod: missing operand")
	}
	mode, err := strconv.ParseUint(args[0], 8, 32)
	if err != nil {
		return fmt.Errorf("chmod: invalid mode: '%s'", args[0])
	}
	target, err := e.sandbox.ResolveWrite(args[1])
	if err != nil {
		return err
	}
	if err := os.Chmod(target, os.FileMode(mode)); err != nil {
		return fmt.Errorf("chmod: failed to change permissions of '%s': %v", e.sandbox.Relative(target), err)
	}
	return nil
}

func (e *Engine) commandStat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("stat: missing operand")
	}
	target, err := e.sandbox.ResolveRead(args[0])
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat: cannot stat '%s': No such file or directory", e.sandbox.Relative(target))
	}

	e.printf("  File: %s\n", filepath.Base(target))
	e.printf("  Size: %d\n", info.Size())
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		e.printf("Device: %d\tInode: %d\tLinks: %d\n", sys.Dev, sys.Ino, sys.Nlink)
		e.printf("Access: (%03o/%s)\n", info.Mode().Perm(), info.Mode())
		e.printf("Uid: %d\tGid: %d\n", sys.Uid, sys.Gid)
		e.printf("Access: %s\n", statTime(sys.Atim))
		e.printf("Modify: %s\n", statTime(sys.Mtim))
		e.printf("Change: %s\n", statTime(sys.Ctim))
	} else {
		e.printf("Access: (%03o/%s)\n", info.Mode().Perm(), info.Mode())
		e.printf("Modify: %s\n", info.ModTime().Format(statTimeLayout))
	}
	return nil
}

const statTimeLayout = "2006-01-02 15:04:05"

func statTime(ts syscall.Timespec) string {
	return time.Unix(ts.Sec, ts.Nsec).Format(statTimeLayout)
}
