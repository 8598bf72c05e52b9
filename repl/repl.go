// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package repl is an interactive line editor and runner for programs.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/asmsim/cpu"
	"github.com/ezrec/asmsim/emulator"
	"github.com/ezrec/asmsim/report"
	"github.com/ezrec/asmsim/translate"
)

var f = translate.From

const (
	PROMPT = "asm> "
)

// REPL buffers program lines and runs them on request.
type REPL struct {
	Prompt bool // If set, prints the banner and a prompt before each line.
	Color  bool // If set, colours the machine state dump.

	emu     *emulator.Emulator
	queue   report.Queue
	lines   []string
	inputs  map[string]string
	history []string
}

// New creates a new REPL with an empty program.
func New() (r *REPL) {
	r = &REPL{
		emu:    emulator.NewEmulator(),
		inputs: make(map[string]string),
	}
	r.emu.Reporter = &r.queue

	return
}

// SetLimit sets the iteration limit of each run.
func (r *REPL) SetLimit(limit int) {
	r.emu.Limit = limit
}

// SetVerbose enables the execution trace.
func (r *REPL) SetVerbose(verbose bool) {
	r.emu.Verbose = verbose
}

// Start reads commands and program lines until end of input or 'quit'.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	if r.Prompt {
		fmt.Fprintln(out, f("asmsim: type 'help' for commands, 'quit' to exit"))
	}

	for {
		if r.Prompt {
			fmt.Fprint(out, PROMPT)
		}

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			r.history = append(r.history, line)
		}

		handled, quit := r.handleCommand(line, out)
		if quit {
			break
		}
		if handled {
			continue
		}

		r.lines = append(r.lines, line)
	}
}

// handleCommand runs a REPL command. Lines that are not commands are left
// for the program buffer.
func (r *REPL) handleCommand(line string, out io.Writer) (handled bool, quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	handled = true
	switch parts[0] {
	case "quit", "exit":
		quit = true
	case "help":
		r.printHelp(out)
	case "run":
		r.run(out)
	case "set":
		r.set(parts[1:], out)
	case "state":
		r.state(out)
	case "list":
		for n, text := range r.lines {
			fmt.Fprintf(out, "%3d: %s\n", n, text)
		}
	case "load":
		if len(parts) != 2 {
			fmt.Fprintln(out, f("usage: load FILE"))
			return
		}
		r.load(parts[1], out)
	case "clear":
		r.lines = nil
		clear(r.inputs)
		fmt.Fprintln(out, f("program and inputs cleared"))
	case "history":
		for n, text := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", n+1, text)
		}
	default:
		handled = false
	}

	return
}

// Source returns the buffered program text.
func (r *REPL) Source() string {
	return strings.Join(r.lines, "\n")
}

func (r *REPL) run(out io.Writer) {
	r.queue.Reset()

	ok, result := r.emu.Result(r.Source(), r.inputs)
	if !ok {
		for msg, more := r.queue.Next(); more; msg, more = r.queue.Next() {
			fmt.Fprintln(out, msg)
		}
		return
	}

	fmt.Fprintf(out, "=> %v\n", result)
}

func (r *REPL) set(args []string, out io.Writer) {
	switch len(args) {
	case 0:
		for _, name := range slices.Sorted(maps.Keys(r.inputs)) {
			fmt.Fprintf(out, "%%%s = %s\n", name, r.inputs[name])
		}
		return
	case 2:
	default:
		fmt.Fprintln(out, f("usage: set REGISTER VALUE"))
		return
	}

	name := strings.TrimPrefix(args[0], "%")
	if _, ok := cpu.RegisterOf(name); !ok {
		fmt.Fprintln(out, cpu.ErrRegisterInvalid(args[0]))
		return
	}

	r.inputs[name] = args[1]
}

func (r *REPL) state(out io.Writer) {
	if r.emu.Program == nil {
		fmt.Fprintln(out, f("no program has run"))
		return
	}

	printer := pp.New()
	printer.SetColoringEnabled(r.Color)
	printer.SetOutput(out)
	printer.Println(r.emu.Cpu.Snapshot())
}

func (r *REPL) load(path string, out io.Writer) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	r.lines = strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")
	fmt.Fprintln(out, f("loaded %v lines from %v", len(r.lines), path))
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
Commands:
  help            Show this help message
  quit, exit      Exit
  run             Check and run the program
  set [REG VALUE] Show inputs, or set an input register
  state           Show the machine state after the last run
  list            List the program
  load FILE       Replace the program with the contents of FILE
  clear           Clear the program and inputs
  history         Show the line history

Any other line is appended to the program, for example:
  .loop:
  inc %rax
  cmp %rdi %rax
  jl .loop
`
	fmt.Fprint(out, help)
}
