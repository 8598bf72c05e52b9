// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/asmsim/internal"
)

// Statement is one checked source line.
type Statement struct {
	LineNo      int          // Line index in the source.
	Text        string       // Trimmed source text.
	Instruction *Instruction // nil for blank, comment and label lines.
	Args        []Operand    // Classified operands.
}

// NoOp is true for lines that do nothing when executed.
func (st *Statement) NoOp() bool {
	return st.Instruction == nil
}

func (st *Statement) String() string {
	if st.NoOp() {
		return st.Text
	}

	words := []string{st.Instruction.Mnemonic}
	for _, arg := range st.Args {
		words = append(words, arg.String())
	}
	return strings.Join(words, " ")
}

// Program is the output of the assembler prepass.
type Program struct {
	Statements []Statement    // One per source line.
	Label      map[string]int // Map of labels to line indexes.
}

// Len is the number of source lines.
func (prog *Program) Len() int {
	return len(prog.Statements)
}

// Statement returns the statement at a line index.
func (prog *Program) Statement(ip int) (st *Statement, ok bool) {
	if ip < 0 || ip >= len(prog.Statements) {
		return
	}

	return &prog.Statements[ip], true
}

// Lines iterates over every statement.
func (prog *Program) Lines() iter.Seq2[int, *Statement] {
	return func(yield func(int, *Statement) bool) {
		for n := range prog.Statements {
			if !yield(n, &prog.Statements[n]) {
				return
			}
		}
	}
}

// Instructions iterates over the statements that execute something.
func (prog *Program) Instructions() iter.Seq2[int, *Statement] {
	return internal.IterSeq2Filter(prog.Lines(), func(_ int, st *Statement) bool {
		return !st.NoOp()
	})
}
