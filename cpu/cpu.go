// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Cpu is the machine state of a single run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int                   // Current instruction pointer (line index).
	Register [REGISTER_COUNT]int32 // Register bank.
	Flags    Flags                 // Condition codes.
	Stack    Stack                 // Stack, indexed by %rsp.
	Memory   Ram                   // Data memory.

	Ticks int // Executed lines since reset.
}

// NewCpu creates a new, reset CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	_ = cpu.Reset(nil)

	return
}

// Reset the CPU state.
//   - Zeroes all registers, then loads the input registers.
//   - Clears the flags, stack and memory.
//   - Sets the instruction pointer to the first line.
//
// Input register names may be given with or without a leading '%'.
func (cpu *Cpu) Reset(inputs map[string]string) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Flags.Reset()
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Ip = 0
	cpu.Ticks = 0

	for _, name := range slices.Sorted(maps.Keys(inputs)) {
		text := inputs[name]
		reg, ok := RegisterOf(strings.TrimPrefix(name, "%"))
		if !ok {
			err = ErrInput{Register: name, Value: text, Err: ErrRegisterInvalid(name)}
			return
		}
		value, perr := ParseWord(strings.TrimSpace(text))
		if perr != nil {
			err = ErrInput{Register: name, Value: text, Err: perr}
			return
		}
		cpu.Register[reg] = value
		if cpu.Verbose {
			log.Printf("cpu: input %v = %d", reg, value)
		}
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)
	if !cpu.Stack.Empty() {
		text += fmt.Sprintf("% 5s: %d words\n", "stack", len(cpu.Stack.Data))
	}
	for reg := range Registers() {
		val := cpu.Register[reg]
		text += fmt.Sprintf("% 5s: %04X_%04X %d\n", reg.Name(), uint32(val)>>16, uint32(val)&0xffff, val)
	}

	return
}

// Snapshot is a copy of the machine state.
type Snapshot struct {
	Ip        int
	Registers map[string]int32
	Flags     []string
	Stack     map[int32]int32
	Memory    map[int64]int32
}

// Snapshot copies the machine state. Registers and flags are all listed,
// the stack and memory only where written.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Ip:        cpu.Ip,
		Registers: make(map[string]int32, REGISTER_COUNT),
		Flags:     cpu.Flags.Names(),
		Stack:     maps.Clone(cpu.Stack.Data),
		Memory:    maps.Clone(cpu.Memory.Data),
	}

	for reg := range Registers() {
		snap.Registers[reg.Name()] = cpu.Register[reg]
	}

	return
}

// Resolve computes the effective address of a memory operand.
func (cpu *Cpu) Resolve(mem Memory) (addr int64) {
	addr = int64(mem.Displacement)
	if mem.HasBase {
		addr += int64(cpu.Register[mem.Base])
	}
	if mem.HasIndex {
		addr += int64(cpu.Register[mem.Index]) * int64(mem.Scale)
	}

	return
}

// Evaluate resolves operands, left to right, into values.
func (cpu *Cpu) Evaluate(args []Operand) (values []int64, err error) {
	values = make([]int64, 0, len(args))

	for _, arg := range args {
		var value int64
		switch op := arg.(type) {
		case Immediate:
			value = int64(op)
		case Register:
			value = int64(cpu.Register[op])
		case Label:
			value = int64(op.LineNo)
		case Memory:
			var word int32
			word, err = cpu.Memory.Load(cpu.Resolve(op))
			if err != nil {
				values = nil
				return
			}
			value = int64(word)
		default:
			err = ErrOperandKind{Index: len(values), Word: fmt.Sprint(arg)}
			values = nil
			return
		}
		values = append(values, value)
	}

	return
}

// Store writes a word to a Register or Memory destination.
func (cpu *Cpu) Store(dst Operand, value int32) (err error) {
	switch op := dst.(type) {
	case Register:
		cpu.Register[op] = value
	case Memory:
		err = cpu.Memory.Store(cpu.Resolve(op), value)
	default:
		err = ErrTargetInvalid
	}

	return
}

// Push pre-increments %rsp, then stores the value at the new top.
func (cpu *Cpu) Push(value int32) {
	cpu.Register[RSP]++
	cpu.Stack.Store(cpu.Register[RSP], value)
}

// Pop loads the value at %rsp, then post-decrements %rsp.
func (cpu *Cpu) Pop() (value int32, err error) {
	value, ok := cpu.Stack.Load(cpu.Register[RSP])
	if !ok {
		err = ErrStackEmpty
		return
	}
	cpu.Register[RSP]--

	return
}

// Execute executes a single instruction. Jumped is set if the instruction
// assigned the instruction pointer.
func (cpu *Cpu) Execute(insn *Instruction, args []Operand) (jumped bool, err error) {
	if cpu.Verbose {
		log.Printf("%03d: %v %v", cpu.Ip, insn.Mnemonic, args)
	}

	if len(args) != len(insn.Signature) {
		err = ErrOperandCount{Want: len(insn.Signature), Got: len(args)}
		return
	}

	evaluate := insn.Evaluate
	if evaluate == nil {
		evaluate = (*Cpu).Evaluate
	}

	values, err := evaluate(cpu, args)
	if err != nil {
		return
	}

	if !insn.Guard.Holds(cpu.Flags) {
		return
	}

	raw, err := insn.Compute(cpu, values)
	if err != nil {
		return
	}

	if insn.Store {
		err = cpu.Store(args[len(args)-1], Wrap(raw))
		if err != nil {
			return
		}
	}

	cpu.Flags.Update(insn.Flags, raw)

	if insn.Jump {
		cpu.Ip = int(raw)
		jumped = true
	}

	return
}
