// Command nanosh is a single-line command-language shell: it parses
// one logical line into an AST and executes it by spawning
// processes, wiring pipes, and applying redirections.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cranklin/nanosh/internal/repl"
	"github.com/cranklin/nanosh/internal/shell/shellerr"
)

func main() {
	var script string
	var haveScript bool
	scriptFile := ""

	args := os.Args[1:]
	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "nanosh: option %s requires an argument\n", arg)
				os.Exit(1)
			}
			i++
			script = args[i]
			haveScript = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "nanosh: unknown option: %s\n", arg)
				printUsage()
				os.Exit(1)
			}
			if scriptFile != "" {
				fmt.Fprintf(os.Stderr, "nanosh: multiple script files specified: %s and %s\n", scriptFile, arg)
				os.Exit(1)
			}
			scriptFile = arg
		}
		i++
	}

	if haveScript && scriptFile != "" {
		fmt.Fprintf(os.Stderr, "nanosh: cannot specify both -c and a script file\n")
		os.Exit(1)
	}

	if scriptFile != "" {
		content, err := os.ReadFile(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nanosh: reading %s: %v\n", scriptFile, err)
			os.Exit(1)
		}
		script = firstLine(string(content))
		haveScript = true
	}

	if haveScript {
		os.Exit(runOneLine(script))
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		line, ok := readOneLine(os.Stdin)
		if !ok {
			fmt.Fprintln(os.Stderr, "Empty statement!")
			os.Exit(shellerr.ErrorExit)
		}
		os.Exit(runOneLine(line))
	}

	os.Exit(repl.Run())
}

// readOneLine reads bytes from r up to the first newline or EOF. An
// immediate EOF or an immediate newline both mean "empty statement",
// reported by ok=false.
func readOneLine(r io.Reader) (string, bool) {
	br := bufio.NewReader(r)
	b, err := br.ReadByte()
	if err != nil || b == '\n' {
		return "", false
	}

	var sb strings.Builder
	sb.WriteByte(b)
	for {
		b, err := br.ReadByte()
		if err != nil || b == '\n' {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), true
}

// firstLine extracts the first logical line of a script file's
// contents, for parity with readOneLine's single-line contract.
func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		return content[:idx]
	}
	return content
}

func runOneLine(line string) int {
	return repl.RunLine(line)
}

func printUsage() {
	fmt.Printf("Usage: %s [-c script | script-file]\n\n", os.Args[0])
	fmt.Println("Options:")
	fmt.Println("  -c <line>     Execute a single line and exit")
	fmt.Println("  -h, --help    Show this help")
	fmt.Println("")
	fmt.Println("With no arguments, nanosh reads one line from stdin if it is piped,")
	fmt.Println("or starts an interactive session if stdin is a terminal.")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Printf("  %s -c 'echo hi | wc -c'\n", os.Args[0])
	fmt.Printf("  echo 'echo hi' | %s\n", os.Args[0])
	fmt.Printf("  %s  # interactive session\n", os.Args[0])
}
