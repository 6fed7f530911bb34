// Package shellerr defines the error taxonomy shared between the
// parser (syntactic errors with a position) and the executor
// (system-call failures), and the stable numeric exit codes each
// maps to.
package shellerr

import "fmt"

// Code is one of the taxonomy values; its numeric value doubles as
// the process exit code the driver uses when a parse error reaches
// the top level.
type Code int

const (
	BracketsBalance  Code = 0x01
	NoOperand        Code = 0x02
	NoOperation      Code = 0x03
	InvalidOperation Code = 0x04
	InvalidOperand   Code = 0x05
	InternalError    Code = 0x07
	MemoryError      Code = 0x08
	SyscallError     Code = 0x09
)

const (
	// ExecError is the exit status produced when execvp-equivalent
	// lookup/exec of a command fails (command not found).
	ExecError = 0x7F
	// SignalOffset is added to the signal number that terminated a
	// child to produce that child's translated exit status.
	SignalOffset = 0x80
	// ErrorExit is the exit status used for an empty input line,
	// matching the original driver's immediate-EOF/newline case.
	ErrorExit = 0x01
)

// bare reports whether this code prints without the
// "Error while parsing: " prefix, matching the original's
// raise_error: SyscallError, MemoryError, and InternalError are
// operational failures, not syntax complaints about the input text.
func (c Code) bare() bool {
	return c == SyscallError || c == MemoryError || c == InternalError
}

// ParseError is a positioned syntax error: a code plus an offset into
// the original input string showing where parsing stopped.
type ParseError struct {
	Code Code
	Pos  int
	Ctx  string // the input text from Pos onward, for display
}

func (e *ParseError) Error() string {
	prefix := ""
	if !e.Code.bare() {
		prefix = "Error while parsing: "
	}
	switch e.Code {
	case BracketsBalance:
		return fmt.Sprintf("%sthe balance of brackets is broken at: %s", prefix, e.Ctx)
	case NoOperand:
		return fmt.Sprintf("%sno operand spotted at: %s", prefix, e.Ctx)
	case NoOperation:
		return fmt.Sprintf("%sno operation between operands at: %s", prefix, e.Ctx)
	case InvalidOperation:
		c := byte(0)
		if len(e.Ctx) > 0 {
			c = e.Ctx[0]
		}
		return fmt.Sprintf("%sinvalid operation %c", prefix, c)
	case InvalidOperand:
		return fmt.Sprintf("%sinvalid operand at: %s", prefix, e.Ctx)
	case MemoryError:
		return "out of memory"
	case SyscallError:
		return "system call failed"
	case InternalError:
		return "internal error"
	default:
		return fmt.Sprintf("%sunknown parse error at: %s", prefix, e.Ctx)
	}
}

// ExitCode is the process exit status a ParseError maps to: the
// taxonomy's own numeric value, per this shell's exit-code table.
func (e *ParseError) ExitCode() int {
	return int(e.Code)
}

// NewParseError builds a ParseError positioned at pos, capturing the
// remaining input from pos onward as display context.
func NewParseError(code Code, input string, pos int) *ParseError {
	ctx := ""
	if pos >= 0 && pos <= len(input) {
		ctx = input[pos:]
	}
	return &ParseError{Code: code, Pos: pos, Ctx: ctx}
}
