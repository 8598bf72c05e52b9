// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/asmsim/report"
	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

var (
	ErrNotLoaded = errors.New(f("no program loaded"))
)

type ErrJumpInvalid int

func (err ErrJumpInvalid) Error() string {
	return f("invalid jump destination [%d]", int(err))
}

type ErrIterationLimit int

func (err ErrIterationLimit) Error() string {
	return f("program exceeded %d iterations", int(err))
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

func (err *ErrRuntime) Line() int {
	return err.LineNo
}

func (err *ErrRuntime) Category() report.Category {
	return report.CATEGORY_RUNTIME
}
