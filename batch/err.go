// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package batch

import (
	"errors"

	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

var (
	ErrEmpty = errors.New(f("input table has no columns"))
)

type ErrFormat string

func (err ErrFormat) Error() string {
	return f("input table format '%v' unknown, expected .csv, .json or .parquet", string(err))
}

// ErrExpect is a row whose result did not match its expect column.
type ErrExpect struct {
	Row    int
	Expect string
	Result string
}

func (err ErrExpect) Error() string {
	return f("row %d: expected %v, got %v", err.Row, err.Expect, err.Result)
}
