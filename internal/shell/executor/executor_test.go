package executor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cranklin/nanosh/internal/shell/ast"
)

func cmd(argv ...string) *ast.Node {
	return ast.NewCommand(argv)
}

func TestRunCommand(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{Stdin: nil, Stdout: &out, Stderr: &out}

	status := e.run(cmd("echo", "hi"), nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if out.String() != "hi\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "hi\n")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out, errBuf bytes.Buffer
	e := &Executor{}

	status := e.run(cmd("nosuchcmd_xyz"), nil, &out, &errBuf)
	if status != 127 {
		t.Fatalf("status = %d, want 127", status)
	}
}

func TestRunSemicolonOrdering(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Semicolon, cmd("echo", "a"), cmd("echo", "b"))
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if out.String() != "a\nb\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "a\nb\n")
	}
}

func TestRunConjunction(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Conjunction, cmd("false"), cmd("echo", "x"))
	status := e.run(tree, nil, &out, &out)
	if status != 1 {
		t.Fatalf("status = %d, want 1", status)
	}
	if out.Len() != 0 {
		t.Fatalf("right side should not have run, got stdout %q", out.String())
	}
}

func TestRunDisjunction(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Disjunction, cmd("true"), cmd("echo", "y"))
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if out.Len() != 0 {
		t.Fatalf("right side should not have run, got stdout %q", out.String())
	}
}

func TestRunPipe(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Pipe, cmd("echo", "abc"), cmd("wc", "-c"))
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if out.String() != "4\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "4\n")
	}
}

func TestRunPipeStatusIsRightHand(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Pipe, cmd("nosuchcmd_xyz"), cmd("true"))
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("pipeline status = %d, want 0 (right-hand status)", status)
	}
}

func TestRunParallelAlwaysZero(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Parallel, cmd("false"), cmd("false"))
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
}

func TestRunRedirection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	node := cmd("echo", "hi")
	node.Redirs.Out.Set(path)

	e := &Executor{}
	status := e.run(node, nil, os.Stdout, os.Stderr)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading redirected file: %v", err)
	}
	if string(data) != "hi\n" {
		t.Fatalf("file contents = %q, want %q", data, "hi\n")
	}
}

func TestRunAppendWinsOverOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	other := filepath.Join(dir, "other.txt")

	node := cmd("echo", "hi")
	node.Redirs.Out.Set(other)
	node.Redirs.Append.Set(path)

	e := &Executor{}
	if status := e.run(node, nil, os.Stdout, os.Stderr); status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading append target: %v", err)
	}
	if string(data) != "hi\n" {
		t.Fatalf("append file contents = %q, want %q", data, "hi\n")
	}

	if _, err := os.Stat(other); err != nil {
		t.Fatalf("out target should still be created/truncated: %v", err)
	}
}

func TestNullRightSeparator(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{}

	tree := ast.NewBinary(ast.Semicolon, cmd("echo", "only"), nil)
	status := e.run(tree, nil, &out, &out)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if out.String() != "only\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "only\n")
	}
}
