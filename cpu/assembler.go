// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// Assembler performs the static prepass over program text.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label map[string]int // Map of labels to line indexes.
}

// isLabelDeclaration matches lines starting with '.' that contain a ':'.
func isLabelDeclaration(line string) bool {
	return strings.HasPrefix(line, ".") && strings.Contains(line, ":")
}

// isNoOp matches blank and comment lines.
func isNoOp(line string) bool {
	return len(line) == 0 || line[0] == '#'
}

// refersLabel is true if any word of the line starts with '.'.
func refersLabel(words []string) bool {
	for _, word := range words {
		if strings.HasPrefix(word, ".") {
			return true
		}
	}
	return false
}

// declare records a label declaration line.
func (asm *Assembler) declare(line string, lineno int) (err error) {
	if !strings.HasSuffix(line, ":") {
		err = ErrLabelSyntax
		return
	}

	label := line[:len(line)-1]
	if strings.ContainsFunc(label, unicode.IsSpace) {
		err = ErrLabelSpaces
		return
	}
	if label == "." {
		err = ErrLabelSyntax
		return
	}

	_, ok := asm.Label[label]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	asm.Label[label] = lineno
	if asm.Verbose {
		log.Printf("asm: label %v = %d", label, lineno)
	}

	return
}

// parseWords checks an instruction line against the instruction table.
func (asm *Assembler) parseWords(st *Statement, words []string) (err error) {
	insn, ok := Lookup(words[0])
	if !ok {
		err = ErrInstructionInvalid(words[0])
		return
	}

	words = words[1:]
	if len(words) != len(insn.Signature) {
		err = ErrOperandCount{Want: len(insn.Signature), Got: len(words)}
		return
	}

	args := make([]Operand, len(words))
	for n, word := range words {
		allowed := insn.Signature[n]
		var op Operand
		op, err = ParseOperand(word, asm.Label)
		if err != nil {
			err = ErrOperandKind{Index: n, Word: word, Allowed: allowed, Err: err}
			return
		}
		if !allowed.Has(op.Kind()) {
			err = ErrOperandKind{Index: n, Word: word, Allowed: allowed}
			return
		}
		args[n] = op
	}

	st.Instruction = insn
	st.Args = args

	return
}

// Parse reads all of the input and checks it.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.ParseString(string(text))
}

// ParseString checks program text and returns the checked Program.
//
// Label declarations are recorded as they are seen. Lines that refer to a
// label are checked after every line has been scanned, so labels may be
// referenced before they are declared.
func (asm *Assembler) ParseString(text string) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Text: line, Err: err}
			prog = nil
		}
	}()

	asm.Label = make(map[string]int)

	lines := strings.Split(text, "\n")
	statements := make([]Statement, len(lines))

	var deferred []int
	for lineno = range lines {
		line = strings.TrimSpace(lines[lineno])
		st := &statements[lineno]
		st.LineNo = lineno
		st.Text = line

		if asm.Verbose {
			log.Printf("%v: %v", lineno, line)
		}

		switch {
		case isLabelDeclaration(line):
			err = asm.declare(line, lineno)
		case isNoOp(line):
			// pass
		default:
			words := strings.Fields(line)
			if refersLabel(words) {
				deferred = append(deferred, lineno)
				continue
			}
			err = asm.parseWords(st, words)
		}
		if err != nil {
			return
		}
	}

	for _, lineno = range deferred {
		st := &statements[lineno]
		line = st.Text
		err = asm.parseWords(st, strings.Fields(line))
		if err != nil {
			return
		}
	}

	prog = &Program{
		Statements: statements,
		Label:      asm.Label,
	}

	return
}
