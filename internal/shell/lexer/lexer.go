// Package lexer implements the shell's sole tokenizer: an on-demand
// operator recognizer consulted by the parser at a given input
// position. There is no token stream; the parser peeks and consumes
// by calling Recognize directly, saving and restoring its own
// position variable around lookahead.
package lexer

import "github.com/cranklin/nanosh/internal/shell/ast"

// Recognize inspects input starting at pos, skips leading whitespace,
// and classifies what comes next. It returns the recognized operator
// (or ast.EndOfInput, or ast.Invalid for a word character) and the
// position just past the skipped whitespace and, for a matched
// operator, past the matched token as well.
//
// preserveEndline selects whether a newline is ordinary whitespace
// (skip-endline, used inside parenthesised groups) or the EndOfLine
// operator (preserve-endline, used at the top level between
// expressions).
//
// ast.Invalid means "word character here"; pos is returned unadvanced
// past that character, matching the C original's parse_op contract.
func Recognize(input string, pos int, preserveEndline bool) (ast.Operation, int) {
	pos = skipSpaces(input, pos, preserveEndline)

	if pos >= len(input) {
		return ast.EndOfInput, pos
	}

	c := input[pos]

	switch c {
	case '&':
		if pos+1 < len(input) && input[pos+1] == '&' {
			return ast.Conjunction, pos + 2
		}
		return ast.Parallel, pos + 1
	case '|':
		if pos+1 < len(input) && input[pos+1] == '|' {
			return ast.Disjunction, pos + 2
		}
		return ast.Pipe, pos + 1
	case ';':
		return ast.Semicolon, pos + 1
	case '<':
		return ast.RedirIn, pos + 1
	case '>':
		if pos+1 < len(input) && input[pos+1] == '>' {
			return ast.RedirAppend, pos + 2
		}
		return ast.RedirOut, pos + 1
	case ')':
		return ast.RightParen, pos + 1
	case '\n':
		if preserveEndline {
			return ast.EndOfLine, pos + 1
		}
	}

	return ast.Invalid, pos
}

// skipSpaces advances past ASCII space/tab, and past newlines too
// when preserveEndline is false (skip-endline mode).
func skipSpaces(input string, pos int, preserveEndline bool) int {
	for pos < len(input) {
		switch input[pos] {
		case ' ', '\t':
			pos++
			continue
		case '\n':
			if preserveEndline {
				return pos
			}
			pos++
			continue
		}
		break
	}
	return pos
}

// IsWhitespace reports whether c is ASCII space, tab, or newline —
// used by word scanning to find the end of a word without consulting
// the operator recognizer for plain whitespace.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
