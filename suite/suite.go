// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package suite loads and checks catalogues of example programs.
//
// A catalogue is a Starlark script that declares cases with three builtins:
//
//	result(name, source, expect, inputs = {})
//	error(name, source, category = "", inputs = {})
//	flags(name, source, flags, inputs = {})
package suite

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asmsim/emulator"
	"github.com/ezrec/asmsim/report"
)

//go:embed catalogue.star
var catalogue string

// Check selects what a case compares after the run.
type Check int

const (
	CHECK_RESULT = Check(0) // result
	CHECK_ERROR  = Check(1) // error
	CHECK_FLAGS  = Check(2) // flags
)

func (c Check) String() string {
	switch c {
	case CHECK_ERROR:
		return "error"
	case CHECK_FLAGS:
		return "flags"
	}
	return "result"
}

// Case is one catalogued program with its expectation.
type Case struct {
	Name   string
	Check  Check
	Source string
	Inputs map[string]string

	Result   string          // Expected result for CHECK_RESULT.
	Category report.Category // Expected category for CHECK_ERROR, or any.
	Flags    []string        // Expected set flags for CHECK_FLAGS.
}

// Outcome is the checked result of a case.
type Outcome struct {
	Case *Case
	Pass bool
	Got  string // Result text, reported error, or set flags.
}

func (out Outcome) String() string {
	if out.Pass {
		return f("PASS %v", out.Case.Name)
	}
	return f("FAIL %v: got %v", out.Case.Name, out.Got)
}

// Suite is an ordered set of cases.
type Suite struct {
	Verbose bool // If set, logs each case as it is checked.
	Limit   int  // Iteration limit per case, or 0 for the default.

	Cases []Case
}

var categoryName = map[string]report.Category{
	"":        report.CATEGORY_NONE,
	"syntax":  report.CATEGORY_SYNTAX,
	"runtime": report.CATEGORY_RUNTIME,
	"input":   report.CATEGORY_INPUT,
}

// valueText converts a Starlark int or string to its text.
func valueText(what string, value starlark.Value) (text string, err error) {
	switch v := value.(type) {
	case starlark.Int:
		text = v.String()
	case starlark.String:
		text = v.GoString()
	default:
		err = ErrValueType{What: what, Type: value.Type()}
	}
	return
}

// inputsOf converts an inputs dictionary.
func inputsOf(dict *starlark.Dict) (inputs map[string]string, err error) {
	if dict == nil {
		return
	}

	inputs = make(map[string]string, dict.Len())
	for _, item := range dict.Items() {
		var name, value string
		name, err = valueText("input register", item[0])
		if err != nil {
			return
		}
		value, err = valueText(f("input for %v", name), item[1])
		if err != nil {
			return
		}
		inputs[name] = value
	}

	return
}

func (s *Suite) add(c Case) (err error) {
	if slices.ContainsFunc(s.Cases, func(other Case) bool { return other.Name == c.Name }) {
		err = ErrCaseDuplicate(c.Name)
		return
	}

	if s.Verbose {
		log.Printf("suite: %v %v", c.Check, c.Name)
	}
	s.Cases = append(s.Cases, c)
	return
}

func (s *Suite) builtinResult(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, source string
	var expect starlark.Value
	var dict *starlark.Dict
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "source", &source, "expect", &expect, "inputs?", &dict)
	if err != nil {
		return nil, err
	}

	c := Case{Name: name, Check: CHECK_RESULT, Source: source}
	c.Result, err = valueText("expect", expect)
	if err != nil {
		return nil, err
	}
	c.Inputs, err = inputsOf(dict)
	if err != nil {
		return nil, err
	}

	return starlark.None, s.add(c)
}

func (s *Suite) builtinError(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, source, category string
	var dict *starlark.Dict
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "source", &source, "category?", &category, "inputs?", &dict)
	if err != nil {
		return nil, err
	}

	c := Case{Name: name, Check: CHECK_ERROR, Source: source}
	cat, ok := categoryName[strings.ToLower(category)]
	if !ok {
		return nil, ErrCategoryInvalid(category)
	}
	c.Category = cat
	c.Inputs, err = inputsOf(dict)
	if err != nil {
		return nil, err
	}

	return starlark.None, s.add(c)
}

func (s *Suite) builtinFlags(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, source string
	var list *starlark.List
	var dict *starlark.Dict
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "source", &source, "flags", &list, "inputs?", &dict)
	if err != nil {
		return nil, err
	}

	c := Case{Name: name, Check: CHECK_FLAGS, Source: source}
	for n := range list.Len() {
		flag, ok := starlark.AsString(list.Index(n))
		if !ok {
			return nil, ErrValueType{What: "flag", Type: list.Index(n).Type()}
		}
		c.Flags = append(c.Flags, flag)
	}
	c.Inputs, err = inputsOf(dict)
	if err != nil {
		return nil, err
	}

	return starlark.None, s.add(c)
}

// Load executes a catalogue script, adding its cases to the suite.
// Src may be a string, []byte or io.Reader; if nil, filename is read.
func (s *Suite) Load(filename string, src any) (err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Info(msg)
		},
	}
	opts := syntax.FileOptions{}
	predeclared := starlark.StringDict{
		"result": starlark.NewBuiltin("result", s.builtinResult),
		"error":  starlark.NewBuiltin("error", s.builtinError),
		"flags":  starlark.NewBuiltin("flags", s.builtinFlags),
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	return
}

// Builtin returns the catalogue compiled into the binary.
func Builtin() (s *Suite, err error) {
	s = &Suite{}
	err = s.Load("catalogue.star", catalogue)
	if err != nil {
		s = nil
	}
	return
}

// Check runs a single case on a machine of its own.
func (s *Suite) Check(c *Case) (out Outcome) {
	out.Case = c

	queue := &report.Queue{}
	emu := emulator.NewEmulator()
	emu.Verbose = s.Verbose
	emu.Reporter = queue
	if s.Limit > 0 {
		emu.Limit = s.Limit
	}

	ok, text := emu.Result(c.Source, c.Inputs)
	msg, reported := queue.Last()

	switch c.Check {
	case CHECK_RESULT:
		out.Pass = ok && text == c.Result
		out.Got = text
	case CHECK_ERROR:
		out.Pass = !ok && (c.Category == report.CATEGORY_NONE || msg.Category == c.Category)
		out.Got = text
	case CHECK_FLAGS:
		got := emu.Cpu.Flags.Names()
		out.Pass = ok && slices.Equal(got, c.Flags)
		out.Got = fmt.Sprint(got)
	}

	if reported && !out.Pass {
		out.Got = msg.String()
	}

	if s.Verbose {
		log.Printf("suite: %v", out)
	}

	return
}

// Run checks every case in order, returning the outcomes and the number
// that failed.
func (s *Suite) Run() (outcomes []Outcome, failed int) {
	outcomes = make([]Outcome, len(s.Cases))
	for n := range s.Cases {
		outcomes[n] = s.Check(&s.Cases[n])
		if !outcomes[n].Pass {
			failed++
		}
	}

	return
}
