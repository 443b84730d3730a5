// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

// CommandNames lists every recognized command, in the order help prints
// them. Exposed for the interactive completer.
var CommandNames = []string{
	"ls", "cd", "pwd", "mkdir", "rm", "touch", "cat", "echo", "cp", "mv",
	"head", "tail", "stat", "chmod", "find", "grep", "monitor", "ps",
	"help", "exit", "quit",
}

var helpText = []string{
	"Commands (all paths confined to the sandbox):",
	"  ls [path]               list directory entries (directories suffixed with /)",
	"  cd [path]               change directory (no argument returns to the root)",
	"  pwd                     print the current directory",
	"  mkdir [-p] <dir>        create a directory",
	"  rm [-r] <path>          remove a file, or a directory with -r",
	"  touch <file>...         create files or update their timestamps",
	"  cat <file>...           print file contents",
	"  echo <text> [> file]    print text, or write it with > (truncate) / >> (append)",
	"  cp [-r] <src>... <dst>  copy files, or directories with -r",
	"  mv <src>... <dst>       move or rename files",
	"  head [-n N] <file>      print the first N lines (default 10)",
	"  tail [-n N] <file>      print the last N lines (default 10)",
	"  stat <path>             print file metadata",
	"  chmod <octal> <path>    change permissions",
	"  find [path] [-name p]   list entries matching a glob pattern",
	"  grep <regex> <file>...  print matching lines as path:line:content",
	"  monitor | ps            show CPU/memory usage and top processes",
	"  help                    show this text",
	"  exit | quit             end the session",
}

func (e *Engine) commandHelp(args []string) error {
	for _, line := range helpText {
		e.println(line)
	}
	return nil
}
