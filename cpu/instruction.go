// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/asmsim/internal"
)

// Evaluator turns classified operands into values.
type Evaluator func(cpu *Cpu, args []Operand) (values []int64, err error)

// Computer produces the raw, untruncated result from operand values.
type Computer func(cpu *Cpu, values []int64) (raw int64, err error)

// Instruction describes one mnemonic.
//
// When Store is set, the truncated result is written to the last operand.
// When Jump is set, the result is the new instruction pointer. Guard is
// checked after the operands are evaluated, and if it does not hold the
// instruction has no further effect.
type Instruction struct {
	Mnemonic  string
	Signature []Kinds    // Allowed kinds per operand position.
	Evaluate  Evaluator  // If nil, (*Cpu).Evaluate.
	Compute   Computer   // Result computation.
	Flags     FlagPolicy // Condition code update.
	Store     bool       // Store the result to the last operand.
	Jump      bool       // Assign the result to the instruction pointer.
	Guard     Condition  // Predicate guarding the store or jump.
}

var (
	sigS  = []Kinds{KindsOf("IRM")}
	sigD  = []Kinds{KindsOf("RM")}
	sigSD = []Kinds{KindsOf("IRM"), KindsOf("RM")}
	sigT  = []Kinds{KindsOf("IL")}
	sigMD = []Kinds{KindsOf("M"), KindsOf("RM")}
)

// binary computes 'dst OP src' for two operand instructions.
func binary(op func(src, dst int64) int64) Computer {
	return func(_ *Cpu, values []int64) (int64, error) {
		return op(values[0], values[1]), nil
	}
}

// unary computes 'OP dst'.
func unary(op func(dst int64) int64) Computer {
	return func(_ *Cpu, values []int64) (int64, error) {
		return op(values[0]), nil
	}
}

func first(_ *Cpu, values []int64) (int64, error) {
	return values[0], nil
}

func shift(count int64) uint32 {
	return uint32(count) & (WORD_BITS - 1)
}

func arithmetic(sig []Kinds, compute Computer) Instruction {
	return Instruction{Signature: sig, Compute: compute, Flags: FLAGS_ARITHMETIC, Store: true}
}

func logical(sig []Kinds, compute Computer) Instruction {
	return Instruction{Signature: sig, Compute: compute, Flags: FLAGS_LOGICAL, Store: true}
}

func divide(cpu *Cpu, values []int64) (raw int64, err error) {
	divisor := values[0]
	if divisor == 0 {
		err = ErrDivideByZero
		return
	}

	dividend := int64(cpu.Register[RAX])
	cpu.Register[RDX] = Wrap(dividend % divisor)
	cpu.Register[RAX] = Wrap(dividend / divisor)
	return
}

func push(cpu *Cpu, values []int64) (raw int64, err error) {
	cpu.Push(Wrap(values[0]))
	return
}

func pop(cpu *Cpu, values []int64) (raw int64, err error) {
	value, err := cpu.Pop()
	raw = int64(value)
	return
}

// effective evaluates the address of the first operand rather than its
// contents.
func effective(cpu *Cpu, args []Operand) (values []int64, err error) {
	mem, ok := args[0].(Memory)
	if !ok {
		err = ErrMemoryInvalid(args[0].String())
		return
	}

	values, err = cpu.Evaluate(args[1:])
	if err != nil {
		return
	}

	values = append([]int64{cpu.Resolve(mem)}, values...)
	return
}

func makeSet(cond Condition) Instruction {
	return Instruction{
		Signature: sigD,
		Compute: func(cpu *Cpu, _ []int64) (int64, error) {
			if cond.Holds(cpu.Flags) {
				return 1, nil
			}
			return 0, nil
		},
		Store: true,
	}
}

func makeJump(cond Condition) Instruction {
	return Instruction{Signature: sigT, Compute: first, Jump: true, Guard: cond}
}

func makeMove(cond Condition) Instruction {
	return Instruction{Signature: sigSD, Compute: first, Store: true, Guard: cond}
}

// basic is the table of unconditional instructions.
var basic = map[string]Instruction{
	"add": arithmetic(sigSD, binary(func(s, d int64) int64 { return d + s })),
	"sub": arithmetic(sigSD, binary(func(s, d int64) int64 { return d - s })),
	"mul": arithmetic(sigSD, binary(func(s, d int64) int64 { return d * s })),
	"inc": arithmetic(sigD, unary(func(d int64) int64 { return d + 1 })),
	"dec": arithmetic(sigD, unary(func(d int64) int64 { return d - 1 })),
	"neg": arithmetic(sigD, unary(func(d int64) int64 { return -d })),
	"div": {Signature: sigS, Compute: divide},

	"sal": logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) << shift(s)) })),
	"shl": logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) << shift(s)) })),
	"sar": logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) >> shift(s)) })),
	"shr": logical(sigSD, binary(func(s, d int64) int64 { return int64(uint32(d) >> shift(s)) })),
	"and": logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) & int32(s)) })),
	"or":  logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) | int32(s)) })),
	"xor": logical(sigSD, binary(func(s, d int64) int64 { return int64(int32(d) ^ int32(s)) })),
	"not": {Signature: sigD, Compute: unary(func(d int64) int64 { return int64(^int32(d)) }), Store: true},

	"push": {Signature: sigS, Compute: push},
	"pop":  {Signature: sigD, Compute: pop, Store: true},

	"cmp":  {Signature: sigSD, Compute: binary(func(s, d int64) int64 { return d - s }), Flags: FLAGS_ARITHMETIC},
	"test": {Signature: sigSD, Compute: binary(func(s, d int64) int64 { return int64(int32(d) & int32(s)) }), Flags: FLAGS_LOGICAL},

	"lea": {Signature: sigMD, Evaluate: effective, Compute: first, Store: true},

	"mov": makeMove(COND_ALWAYS),
	"jmp": makeJump(COND_ALWAYS),
}

// conditional yields one instruction per condition suffix, named prefix+suffix.
func conditional(prefix string, build func(Condition) Instruction) iter.Seq2[string, Instruction] {
	return func(yield func(string, Instruction) bool) {
		for _, cs := range conditionSuffix {
			if !yield(prefix+cs.Suffix, build(cs.Condition)) {
				return
			}
		}
	}
}

var instructionTable = func() map[string]*Instruction {
	table := make(map[string]*Instruction)
	for name, insn := range internal.IterSeq2Concat(
		maps.All(basic),
		conditional("set", makeSet),
		conditional("j", makeJump),
		conditional("cmov", makeMove),
	) {
		insn.Mnemonic = name
		table[name] = &insn
	}
	return table
}()

// Lookup finds the instruction for a mnemonic.
func Lookup(mnemonic string) (insn *Instruction, ok bool) {
	insn, ok = instructionTable[mnemonic]
	return
}

// Mnemonics returns all known mnemonics, sorted.
func Mnemonics() []string {
	return slices.Sorted(maps.Keys(instructionTable))
}
