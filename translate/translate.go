// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate localises the user visible text of the simulator.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	once    sync.Once
	printer *message.Printer
	tag     language.Tag
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("asmsim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the language tag messages are rendered in.
func Language() language.Tag {
	once.Do(setup)
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Sprintf(key, args...)
}
