package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(t *testing.T, r *REPL, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	r.Start(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	return out.String()
}

func TestREPLNew(t *testing.T) {
	assert := assert.New(t)

	r := New()
	assert.False(r.Prompt)
	assert.Empty(r.Source())
	assert.Same(&r.queue, r.emu.Reporter)
}

func TestREPLRun(t *testing.T) {
	assert := assert.New(t)

	r := New()
	out := session(t, r,
		".loop:",
		"inc %rax",
		"cmp %rdi %rax",
		"jl .loop",
		"set %rdi 4",
		"run",
	)

	assert.Equal("=> 4\n", out)
	assert.Equal(".loop:\ninc %rax\ncmp %rdi %rax\njl .loop", r.Source())
	assert.Equal(map[string]string{"rdi": "4"}, r.inputs)
}

func TestREPLErrors(t *testing.T) {
	assert := assert.New(t)

	out := session(t, New(), "div $0", "run")
	assert.Contains(out, "Runtime error on line 0")

	out = session(t, New(), "bogus", "run")
	assert.Contains(out, "Syntax error on line 0")

	out = session(t, New(), "set %foo 1", "set rax", "set rax x", "run")
	assert.Contains(out, "'%foo' is not a register")
	assert.Contains(out, "usage: set REGISTER VALUE")
	assert.Contains(out, "Input error")
}

func TestREPLCommands(t *testing.T) {
	assert := assert.New(t)

	r := New()
	out := session(t, r,
		"mov $3 %rax",
		"push %rax",
		"list",
		"set rbx 2",
		"set",
		"history",
		"clear",
		"list",
		"quit",
		"inc %rax",
	)

	assert.Contains(out, "  0: mov $3 %rax\n  1: push %rax\n")
	assert.Contains(out, "%rbx = 2\n")
	assert.Contains(out, "  4: set rbx 2\n")
	assert.Contains(out, "program and inputs cleared")
	assert.Empty(r.lines)
	assert.Empty(r.inputs)
}

func TestREPLState(t *testing.T) {
	assert := assert.New(t)

	r := New()
	out := session(t, r, "state")
	assert.Contains(out, "no program has run")

	out = session(t, r, "mov $7 %rbx", "run", "state")
	assert.Contains(out, "=> 0")
	assert.Contains(out, "Registers")
	assert.Contains(out, "7")
}

func TestREPLLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.s")
	require.NoError(t, os.WriteFile(path, []byte("add $2 %rax\nadd $3 %rax\n"), 0o644))

	r := New()
	out := session(t, r, "load "+path, "run")
	assert.Contains(out, "=> 5")
	assert.Equal("add $2 %rax\nadd $3 %rax", r.Source())

	out = session(t, r, "load", "load "+filepath.Join(t.TempDir(), "missing.s"))
	assert.Contains(out, "usage: load FILE")
	assert.Equal("add $2 %rax\nadd $3 %rax", r.Source())
}

func TestREPLPrompt(t *testing.T) {
	assert := assert.New(t)

	r := New()
	r.Prompt = true
	out := session(t, r, "help")
	assert.True(strings.HasPrefix(out, "asmsim:"))
	assert.Contains(out, PROMPT)
	assert.Contains(out, "Commands:")
}
