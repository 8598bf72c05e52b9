// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package suite

import (
	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

type ErrCategoryInvalid string

func (err ErrCategoryInvalid) Error() string {
	return f("error category '%v' is not one of syntax, runtime or input", string(err))
}

type ErrCaseDuplicate string

func (err ErrCaseDuplicate) Error() string {
	return f("case '%v' defined more than once", string(err))
}

// ErrValueType is a catalogue value of an unusable type.
type ErrValueType struct {
	What string
	Type string
}

func (err ErrValueType) Error() string {
	return f("%v must be an int or string, not %v", err.What, err.Type)
}
