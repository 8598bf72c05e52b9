// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs checked programs on the simulated machine.
package emulator

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/asmsim/cpu"
	"github.com/ezrec/asmsim/report"
)

// FAILURE is the result text of a failed run.
const FAILURE = "ERROR"

// Emulator state. CPU + checked program + error sink.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Limit    int             // Maximum iterations of a single run.
	Reporter report.Reporter // Sink for failed runs.
}

// NewEmulator creates a new emulator, reporting to the logrus standard
// logger.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(),
		Limit:    cpu.ITERATION_LIMIT,
		Reporter: &report.Logger{},
	}

	return
}

// Load runs the prepass over program text. On failure the previously loaded
// program is discarded.
func (emu *Emulator) Load(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	emu.Program, err = asm.ParseString(source)

	return
}

// Reset the machine state for a new run of the loaded program.
func (emu *Emulator) Reset(inputs map[string]string) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(inputs)

	return
}

// LineNo returns the line about to be executed.
func (emu *Emulator) LineNo() int {
	return emu.Cpu.Ip
}

// Tick executes the line at the instruction pointer. Done is set once the
// instruction pointer has run off the end of the program.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Program == nil {
		err = ErrNotLoaded
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	count := emu.Program.Len()
	if lineno >= count {
		done = true
		return
	}

	if emu.Cpu.Ticks > emu.Limit {
		err = ErrIterationLimit(emu.Limit)
		return
	}

	st, ok := emu.Program.Statement(lineno)
	if !ok {
		err = ErrJumpInvalid(lineno)
		return
	}

	var jumped bool
	if !st.NoOp() {
		jumped, err = emu.Cpu.Execute(st.Instruction, st.Args)
		if err != nil {
			return
		}
	}

	if jumped {
		if emu.Cpu.Ip < 0 || emu.Cpu.Ip >= count {
			err = ErrJumpInvalid(emu.Cpu.Ip)
			return
		}
	} else {
		emu.Cpu.Ip++
	}

	emu.Cpu.Ticks++

	done = emu.Cpu.Ip >= count

	return
}

// Execute runs the loaded program from a reset machine until it finishes,
// returning the accumulator.
func (emu *Emulator) Execute(inputs map[string]string) (result int32, err error) {
	if emu.Program == nil {
		err = ErrNotLoaded
		return
	}

	err = emu.Reset(inputs)
	if err != nil {
		return
	}

	for done := emu.Program.Len() == 0; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	result = emu.Cpu.Register[cpu.ACCUMULATOR]
	if emu.Verbose {
		log.Printf("emulator: %d lines executed, result %d\n%v", emu.Cpu.Ticks, result, emu.Cpu)
	}

	return
}

// Run checks and executes program text.
func (emu *Emulator) Run(source string, inputs map[string]string) (result int32, err error) {
	err = emu.Load(source)
	if err != nil {
		return
	}

	return emu.Execute(inputs)
}

// Result runs program text and renders the accumulator in decimal. On
// failure the error goes to the Reporter and the result is FAILURE.
func (emu *Emulator) Result(source string, inputs map[string]string) (ok bool, text string) {
	result, err := emu.Run(source, inputs)
	if err != nil {
		if emu.Reporter != nil {
			emu.Reporter.Report(report.FromError(err))
		}
		text = FAILURE
		return
	}

	ok = true
	text = strconv.Itoa(int(result))

	return
}

// Run checks and executes program text on a machine of its own.
func Run(source string, inputs map[string]string) (ok bool, text string) {
	return NewEmulator().Result(source, inputs)
}
