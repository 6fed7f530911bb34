// Package parser implements the shell's recursive-descent grammar:
// four mutually-recursive precedence levels over an on-demand
// operator recognizer, producing an AST or a positioned error.
package parser

import (
	"github.com/cranklin/nanosh/internal/shell/ast"
	"github.com/cranklin/nanosh/internal/shell/lexer"
	"github.com/cranklin/nanosh/internal/shell/shellerr"
)

// Parser holds the shared mutable state every precedence level reads
// and advances: the input text and a cursor position.
type Parser struct {
	input string
	pos   int
}

// Parse analyses a single logical line of shell input and returns its
// AST. A nil, nil result means the line held nothing to execute
// (blank, or only whitespace/comments-as-words are not special-cased
// here — callers treat a nil tree as an empty statement).
func Parse(input string) (*ast.Node, error) {
	p := &Parser{input: input}
	tree, err := p.parseSeparators(true)
	if err != nil {
		return nil, err
	}

	op, _ := lexer.Recognize(p.input, p.pos, true)
	// Position a stray-token error at the token itself, not past it.
	pos := p.pos
	for pos < len(input) && (input[pos] == ' ' || input[pos] == '\t') {
		pos++
	}
	switch op {
	case ast.EndOfInput:
		return tree, nil
	case ast.RightParen:
		return nil, shellerr.NewParseError(shellerr.BracketsBalance, input, pos)
	default:
		return nil, shellerr.NewParseError(shellerr.InvalidOperation, input, pos)
	}
}

// parseSeparators is the lowest precedence level: ";", "&" (parallel),
// and newline-as-separator, left-associative. preserveEndline is
// false only while parsing inside a parenthesised group, where
// newlines are ordinary whitespace rather than a separator.
func (p *Parser) parseSeparators(preserveEndline bool) (*ast.Node, error) {
	left, err := p.parseLogicals(preserveEndline)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	for {
		savedPos := p.pos
		op, opPos := lexer.Recognize(p.input, p.pos, preserveEndline)

		switch op {
		case ast.Semicolon, ast.Parallel, ast.EndOfLine:
			p.pos = opPos
			if op == ast.EndOfLine {
				_, skipPos := lexer.Recognize(p.input, p.pos, false)
				p.pos = skipPos
			}
			right, err := p.parseLogicals(preserveEndline)
			if err != nil {
				return nil, err
			}
			left = ast.NewBinary(op, left, right)
			if right == nil {
				return left, nil
			}
		case ast.Invalid:
			return nil, shellerr.NewParseError(shellerr.InvalidOperation, p.input, opPos)
		default:
			p.pos = savedPos
			return left, nil
		}
	}
}

// parseLogicals handles "&&" and "||" at equal precedence,
// left-associative; a missing right operand is a NoOperand error.
func (p *Parser) parseLogicals(preserveEndline bool) (*ast.Node, error) {
	left, err := p.parsePipe(preserveEndline)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	for {
		savedPos := p.pos
		op, opPos := lexer.Recognize(p.input, p.pos, preserveEndline)
		if op != ast.Conjunction && op != ast.Disjunction {
			p.pos = savedPos
			return left, nil
		}
		p.pos = opPos

		right, err := p.parsePipe(preserveEndline)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, shellerr.NewParseError(shellerr.NoOperand, p.input, p.pos)
		}
		left = ast.NewBinary(op, left, right)
	}
}

// parsePipe handles "|", left-associative; a missing right operand is
// a NoOperand error.
func (p *Parser) parsePipe(preserveEndline bool) (*ast.Node, error) {
	left, err := p.parseCommand(preserveEndline)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	for {
		savedPos := p.pos
		op, opPos := lexer.Recognize(p.input, p.pos, preserveEndline)
		if op != ast.Pipe {
			p.pos = savedPos
			return left, nil
		}
		p.pos = opPos

		right, err := p.parseCommand(preserveEndline)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, shellerr.NewParseError(shellerr.NoOperand, p.input, p.pos)
		}
		left = ast.NewBinary(ast.Pipe, left, right)
	}
}

// parseCommand parses either a parenthesised group or a bare command
// leaf, followed in both cases by any trailing redirections. It
// returns nil, nil (not an error) when the current position holds an
// operator rather than the start of a command.
func (p *Parser) parseCommand(preserveEndline bool) (*ast.Node, error) {
	if open, wsPos := p.peekOpenParen(preserveEndline); open {
		p.pos = wsPos + 1

		inner, err := p.parseSeparators(false)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, shellerr.NewParseError(shellerr.NoOperation, p.input, p.pos)
		}

		op, afterClose := lexer.Recognize(p.input, p.pos, false)
		if op != ast.RightParen {
			return nil, shellerr.NewParseError(shellerr.BracketsBalance, p.input, p.pos)
		}
		p.pos = afterClose

		node := ast.NewGroup(inner)
		if err := p.parseRedirections(node, preserveEndline); err != nil {
			return nil, err
		}
		return node, nil
	}

	if op, _ := lexer.Recognize(p.input, p.pos, preserveEndline); op != ast.Invalid {
		return nil, nil
	}

	node := &ast.Node{Kind: ast.Command}
	var argv []string

wordLoop:
	for {
		op, opPos := lexer.Recognize(p.input, p.pos, preserveEndline)
		switch op {
		case ast.Invalid:
			end := p.scanWordEnd(opPos, preserveEndline)
			argv = append(argv, p.input[opPos:end])
			p.pos = end
		case ast.RedirOut, ast.RedirAppend, ast.RedirIn:
			p.pos = opPos
			if err := p.parseOneRedirection(node, op, preserveEndline); err != nil {
				return nil, err
			}
		default:
			break wordLoop
		}
	}

	if len(argv) == 0 {
		return nil, nil
	}
	node.Argv = argv
	return node, nil
}

// parseRedirections consumes every redirection token in a row,
// applying last-wins semantics; it is used right after a closing paren
// for a group (parseCommand's word loop handles redirections one at a
// time through parseOneRedirection).
func (p *Parser) parseRedirections(node *ast.Node, preserveEndline bool) error {
	for {
		op, opPos := lexer.Recognize(p.input, p.pos, preserveEndline)
		switch op {
		case ast.RedirOut, ast.RedirAppend, ast.RedirIn:
			p.pos = opPos
			if err := p.parseOneRedirection(node, op, preserveEndline); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseOneRedirection consumes op (already peeked at p.pos) and the
// mandatory word that follows it, storing the word as the target file
// of the matching slot.
func (p *Parser) parseOneRedirection(node *ast.Node, op ast.Operation, preserveEndline bool) error {
	_, afterOp := lexer.Recognize(p.input, p.pos, preserveEndline)
	p.pos = afterOp

	wop, wpos := lexer.Recognize(p.input, p.pos, preserveEndline)
	if wop != ast.Invalid {
		return shellerr.NewParseError(shellerr.NoOperand, p.input, wpos)
	}

	end := p.scanWordEnd(wpos, preserveEndline)
	file := p.input[wpos:end]
	p.pos = end

	switch op {
	case ast.RedirOut:
		node.Redirs.Out.Set(file)
	case ast.RedirAppend:
		node.Redirs.Append.Set(file)
	case ast.RedirIn:
		node.Redirs.In.Set(file)
	}
	return nil
}

// scanWordEnd extends a word starting at start one character at a
// time, consulting the operator recognizer at each step; it stops at
// whitespace or at the first character that begins an operator token.
func (p *Parser) scanWordEnd(start int, preserveEndline bool) int {
	cur := start
	for cur < len(p.input) {
		if lexer.IsWhitespace(p.input[cur]) {
			break
		}
		if op, _ := lexer.Recognize(p.input, cur, preserveEndline); op != ast.Invalid {
			break
		}
		cur++
	}
	return cur
}

// peekOpenParen reports whether, after skipping whitespace, the next
// character is "(" — a token the operator recognizer never returns,
// since the parser must distinguish it from a plain word itself.
func (p *Parser) peekOpenParen(preserveEndline bool) (bool, int) {
	op, wsPos := lexer.Recognize(p.input, p.pos, preserveEndline)
	if op == ast.Invalid && wsPos < len(p.input) && p.input[wsPos] == '(' {
		return true, wsPos
	}
	return false, wsPos
}
