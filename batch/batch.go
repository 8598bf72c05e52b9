// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package batch runs one program over a table of input registers.
//
// Every column of the table names an input register, except EXPECT_COLUMN
// which, when present, holds the result each row should produce. Unset
// cells leave the register at zero.
package batch

import (
	"fmt"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/asmsim/emulator"
	"github.com/ezrec/asmsim/report"
)

// EXPECT_COLUMN is the name of the optional expected result column.
const EXPECT_COLUMN = "expect"

// Row status values in the results table.
const (
	STATUS_OK    = "ok"    // Ran, no expectation.
	STATUS_PASS  = "pass"  // Ran and matched the expectation.
	STATUS_FAIL  = "fail"  // Ran, or failed, against the expectation.
	STATUS_ERROR = "error" // Failed with no expectation.
)

// Row is one set of inputs taken from the table.
type Row struct {
	Index     int
	Inputs    map[string]string
	Expect    string
	HasExpect bool
}

// Runner executes a program once per row.
type Runner struct {
	Verbose  bool            // If set, logs each row.
	Limit    int             // Iteration limit per row, or 0 for the default.
	Reporter report.Reporter // Sink for failed rows, or nil.
}

// cellText renders a table cell as an input value. Unset cells are nil
// or blank.
func cellText(value any) (text string, ok bool) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		text = strings.TrimSpace(v)
		if len(text) == 0 {
			return
		}
	case int64:
		text = strconv.FormatInt(v, 10)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		text = fmt.Sprint(v)
	}

	ok = true
	return
}

// Rows converts a table into rows.
func Rows(df *dataframe.DataFrame) (rows []Row) {
	if df == nil || len(df.Series) == 0 {
		return
	}

	count := df.Series[0].NRows()
	rows = make([]Row, count)
	for n := range rows {
		row := &rows[n]
		row.Index = n
		row.Inputs = make(map[string]string, len(df.Series))
		for _, series := range df.Series {
			text, ok := cellText(series.Value(n))
			if !ok {
				continue
			}
			if series.Name() == EXPECT_COLUMN {
				row.Expect = text
				row.HasExpect = true
				continue
			}
			row.Inputs[series.Name()] = text
		}
	}

	return
}

// Run checks the program once, then executes it for every row of the
// table on a reset machine. The results table has one row per input row
// with the columns row, result, status and message. Failed is the number
// of rows with status fail or error.
func (r *Runner) Run(source string, df *dataframe.DataFrame) (results *dataframe.DataFrame, failed int, err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = r.Verbose
	if r.Limit > 0 {
		emu.Limit = r.Limit
	}

	err = emu.Load(source)
	if err != nil {
		r.report(err)
		return
	}

	rows := Rows(df)

	index := make([]any, len(rows))
	result := make([]any, len(rows))
	status := make([]any, len(rows))
	message := make([]any, len(rows))

	for n, row := range rows {
		index[n] = int64(row.Index)
		message[n] = ""

		value, rerr := emu.Execute(row.Inputs)
		if rerr != nil {
			r.report(rerr)
			result[n] = emulator.FAILURE
			message[n] = report.FromError(rerr).String()
		} else {
			result[n] = strconv.Itoa(int(value))
		}

		switch {
		case row.HasExpect && row.Expect == result[n]:
			status[n] = STATUS_PASS
		case row.HasExpect:
			status[n] = STATUS_FAIL
			if rerr == nil {
				message[n] = ErrExpect{Row: row.Index, Expect: row.Expect, Result: result[n].(string)}.Error()
			}
		case rerr != nil:
			status[n] = STATUS_ERROR
		default:
			status[n] = STATUS_OK
		}

		if status[n] == STATUS_FAIL || status[n] == STATUS_ERROR {
			failed++
		}

		if r.Verbose {
			log.WithFields(log.Fields{"row": row.Index, "status": status[n]}).Info(result[n])
		}
	}

	results = dataframe.NewDataFrame(
		dataframe.NewSeriesInt64("row", nil, index...),
		dataframe.NewSeriesString("result", nil, result...),
		dataframe.NewSeriesString("status", nil, status...),
		dataframe.NewSeriesString("message", nil, message...),
	)

	return
}

func (r *Runner) report(err error) {
	if r.Reporter != nil {
		r.Reporter.Report(report.FromError(err))
	}
}
