// Package repl provides the interactive line-editing front end around
// the parser/executor core. Reading a line from the terminal,
// history, and completion are deliberately outside the shell
// language's own scope; this package is the "external collaborator"
// that supplies them.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cranklin/nanosh/internal/shell/executor"
	"github.com/cranklin/nanosh/internal/shell/parser"
	"github.com/cranklin/nanosh/internal/shell/shellerr"
)

// words feeds the completer; it is just the usual suspects a user is
// likely to type, not a registry of built-ins — nanosh has none.
var words = []string{
	"echo", "cat", "grep", "head", "tail", "sort", "wc", "ls", "cd",
	"exit", "quit",
}

func newCompleter() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, len(words))
	for i, w := range words {
		items[i] = readline.PcItem(w)
	}
	return readline.NewPrefixCompleter(items...)
}

// Run drives an interactive session: read a line, parse it, execute
// it, repeat. It returns the exit status
// of the last executed line, or 0 if the session ended via EOF/"exit"
// without ever running one.
func Run() int {
	historyFile := os.ExpandEnv("$HOME/.nanosh_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nanosh> ",
		HistoryFile:     historyFile,
		HistoryLimit:    1000,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanosh: %v\n", err)
		return int(shellerr.InternalError)
	}
	defer rl.Close()

	lastStatus := 0
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			fmt.Fprintf(os.Stderr, "nanosh: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		lastStatus = RunLine(line)
	}
	return lastStatus
}

// RunLine parses and executes a single logical line, printing a
// diagnostic and returning the matching exit code on a parse error.
func RunLine(line string) int {
	tree, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if pe, ok := err.(*shellerr.ParseError); ok {
			return pe.ExitCode()
		}
		return shellerr.ErrorExit
	}
	return executor.New().Start(tree)
}
