// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/asmsim/report"
	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrStackEmpty    = errors.New(f("stack slot empty"))
	ErrDivideByZero  = errors.New(f("division by zero"))
	ErrTargetInvalid = errors.New(f("destination invalid"))

	// Assembler errors
	ErrOperandEmpty   = errors.New(f("operand empty"))
	ErrLabelSyntax    = errors.New(f("label declaration malformed"))
	ErrLabelSpaces    = errors.New(f("label must not have spaces"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrInstructionInvalid string

func (err ErrInstructionInvalid) Error() string {
	return f("instruction '%v' invalid", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a %d-bit integer", string(err), WORD_BITS)
}

type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrMemoryInvalid string

func (err ErrMemoryInvalid) Error() string {
	return f("'%v' is not a memory reference", string(err))
}

type ErrScaleInvalid string

func (err ErrScaleInvalid) Error() string {
	return f("scale '%v' is not one of 1, 2, 4 or 8", string(err))
}

type ErrAddressInvalid int64

func (err ErrAddressInvalid) Error() string {
	return f("memory address %d invalid", int64(err))
}

type ErrOperandCount struct {
	Want int
	Got  int
}

func (err ErrOperandCount) Error() string {
	return f("expected %d operands, found %d", err.Want, err.Got)
}

// ErrOperandKind is an operand that is malformed or not allowed at its
// position.
type ErrOperandKind struct {
	Index   int
	Word    string
	Allowed Kinds
	Err     error // Classification failure, if any.
}

func (err ErrOperandKind) Error() string {
	if err.Err != nil {
		return f("operand %d '%v' must be one of [%v]: %v", err.Index, err.Word, err.Allowed, err.Err)
	}
	return f("operand %d '%v' must be one of [%v]", err.Index, err.Word, err.Allowed)
}

func (err ErrOperandKind) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Text   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Text, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

func (err ErrSyntax) Line() int {
	return err.LineNo
}

func (err ErrSyntax) Category() report.Category {
	return report.CATEGORY_SYNTAX
}

// ErrInput is a caller supplied register value that could not be used.
type ErrInput struct {
	Register string
	Value    string
	Err      error
}

func (err ErrInput) Error() string {
	return f("input [%v] for register [%v] invalid: %v", err.Value, err.Register, err.Err)
}

func (err ErrInput) Unwrap() error {
	return err.Err
}

func (err ErrInput) Category() report.Category {
	return report.CATEGORY_INPUT
}
