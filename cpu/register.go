// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
)

// Register is one of the general purpose registers.
type Register int

const (
	RAX = Register(iota)
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	REGISTER_COUNT
)

var registerName = [REGISTER_COUNT]string{
	"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

var registerMap = func() map[string]Register {
	m := make(map[string]Register, REGISTER_COUNT)
	for n, name := range registerName {
		m[name] = Register(n)
	}
	return m
}()

// RegisterOf looks up a register by its bare name (no '%').
func RegisterOf(name string) (reg Register, ok bool) {
	reg, ok = registerMap[name]
	return
}

// Registers iterates over all registers in encoding order.
func Registers() iter.Seq[Register] {
	return func(yield func(Register) bool) {
		for reg := range REGISTER_COUNT {
			if !yield(reg) {
				return
			}
		}
	}
}

// Name returns the bare register name.
func (reg Register) Name() string {
	if reg < 0 || reg >= REGISTER_COUNT {
		return "?"
	}
	return registerName[reg]
}

// String returns the operand form of the register.
func (reg Register) String() string {
	return "%" + reg.Name()
}

func (reg Register) Kind() Kind {
	return KIND_REGISTER
}
