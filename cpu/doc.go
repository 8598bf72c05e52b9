// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the machine model and the assembler front end of the
// x86-64 flavoured assembly simulator.
//
// The machine consists of an instruction pointer (a 0-based line index),
// sixteen 32-bit signed registers named after the x86-64 general purpose
// registers (%rax..%r15), the ZF/SF/OF condition flags, a sparse stack indexed
// by %rsp, and a sparse word addressed memory.
//
// The assembler performs the static prepass: it records label positions,
// classifies every operand as Immediate, Register, Label or Memory, and checks
// each line against the operand signature of its instruction before anything
// is executed.
package cpu
