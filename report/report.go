// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package report carries categorised error messages out of the simulator.
package report

import (
	"errors"

	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

// Category classifies a reported message.
type Category int

const (
	CATEGORY_NONE    = Category(0) // none
	CATEGORY_SYNTAX  = Category(1) // Syntax
	CATEGORY_RUNTIME = Category(2) // Runtime
	CATEGORY_INPUT   = Category(3) // Input
)

func (c Category) String() string {
	switch c {
	case CATEGORY_SYNTAX:
		return "Syntax"
	case CATEGORY_RUNTIME:
		return "Runtime"
	case CATEGORY_INPUT:
		return "Input"
	}
	return "none"
}

// Categorized is implemented by errors that know their category.
type Categorized interface {
	error
	Category() Category
}

// Located is implemented by errors that know their source line.
type Located interface {
	error
	Line() int
}

// Message is a single report.
type Message struct {
	Category Category
	LineNo   int // 0-based line index, or -1 if none.
	Text     string
}

func (msg Message) String() string {
	if msg.LineNo < 0 {
		return f("%v error: %v", msg.Category, msg.Text)
	}
	return f("%v error on line %d: %v", msg.Category, msg.LineNo, msg.Text)
}

// Reporter is the sink for messages.
type Reporter interface {
	Report(msg Message)
}

// FromError builds a message from an error, looking through wrapped errors
// for its category and line.
func FromError(err error) (msg Message) {
	msg.LineNo = -1
	if err == nil {
		return
	}

	msg.Text = err.Error()

	var cat Categorized
	if errors.As(err, &cat) {
		msg.Category = cat.Category()
	}

	var loc Located
	if errors.As(err, &loc) {
		msg.LineNo = loc.Line()
		if inner := errors.Unwrap(loc); inner != nil {
			msg.Text = inner.Error()
		}
	}

	return
}

// Discard drops every message.
type Discard struct{}

func (Discard) Report(msg Message) {}
