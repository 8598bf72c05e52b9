// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the syntactic category of an operand.
type Kind int

const (
	KIND_INVALID   = Kind(0) // Invalid
	KIND_IMMEDIATE = Kind(1) // Immediate
	KIND_REGISTER  = Kind(2) // Register
	KIND_LABEL     = Kind(4) // Label
	KIND_MEMORY    = Kind(8) // Memory
)

var kindLetter = []struct {
	Letter byte
	Kind   Kind
	Name   string
}{
	{'I', KIND_IMMEDIATE, "Immediate"},
	{'R', KIND_REGISTER, "Register"},
	{'L', KIND_LABEL, "Label"},
	{'M', KIND_MEMORY, "Memory"},
}

func (k Kind) String() string {
	for _, kl := range kindLetter {
		if kl.Kind == k {
			return kl.Name
		}
	}
	return "Invalid"
}

// Kinds is a set of operand kinds allowed at one operand position.
type Kinds Kind

// KindsOf builds a set from the letters I, R, L and M.
func KindsOf(letters string) (ks Kinds) {
	for n := range len(letters) {
		for _, kl := range kindLetter {
			if kl.Letter == letters[n] {
				ks |= Kinds(kl.Kind)
			}
		}
	}
	return
}

// Has reports if the kind is in the set.
func (ks Kinds) Has(k Kind) bool {
	return k != KIND_INVALID && (Kind(ks)&k) == k
}

func (ks Kinds) String() string {
	var names []string
	for _, kl := range kindLetter {
		if ks.Has(kl.Kind) {
			names = append(names, kl.Name)
		}
	}
	return strings.Join(names, ", ")
}

// Operand is a classified operand: one of Immediate, Register, Label or
// Memory.
type Operand interface {
	Kind() Kind
	String() string
}

// Immediate is a literal '$' value.
type Immediate int32

func (imm Immediate) Kind() Kind {
	return KIND_IMMEDIATE
}

func (imm Immediate) String() string {
	return fmt.Sprintf("$%d", int32(imm))
}

// Label is a reference to a declared label.
type Label struct {
	Name   string // Name, including the leading '.'.
	LineNo int    // Line index of the declaration.
}

func (lb Label) Kind() Kind {
	return KIND_LABEL
}

func (lb Label) String() string {
	return lb.Name
}

// Memory is an address expression, disp(base,index,scale).
type Memory struct {
	Displacement int32
	Base         Register
	Index        Register
	Scale        int32
	HasBase      bool
	HasIndex     bool
}

func (mem Memory) Kind() Kind {
	return KIND_MEMORY
}

func (mem Memory) String() string {
	if !mem.HasBase && !mem.HasIndex {
		return fmt.Sprintf("%d", mem.Displacement)
	}

	var text string
	if mem.Displacement != 0 {
		text = fmt.Sprintf("%d", mem.Displacement)
	}

	text += "("
	if mem.HasBase {
		text += mem.Base.String()
	}
	if mem.HasIndex {
		text += fmt.Sprintf(",%v,%d", mem.Index, mem.Scale)
	}
	text += ")"

	return text
}

var (
	reAbsolute = regexp.MustCompile(`^\d+$`)
	reIndirect = regexp.MustCompile(`^(-?\d*)\(([^()]*)\)$`)
)

// ParseOperand classifies a single operand word. Label references are
// resolved against the declared labels.
func ParseOperand(word string, labels map[string]int) (op Operand, err error) {
	if len(word) == 0 {
		err = ErrOperandEmpty
		return
	}

	switch word[0] {
	case '$':
		var value int32
		value, err = ParseWord(word[1:])
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		op = Immediate(value)
	case '%':
		reg, ok := RegisterOf(word[1:])
		if !ok {
			err = ErrRegisterInvalid(word)
			return
		}
		op = reg
	case '.':
		lineno, ok := labels[word]
		if !ok {
			err = ErrLabelMissing(word)
			return
		}
		op = Label{Name: word, LineNo: lineno}
	default:
		var mem Memory
		mem, err = parseMemory(word)
		if err != nil {
			return
		}
		op = mem
	}

	return
}

// parseRegister parses a '%' register inside an address expression.
func parseRegister(word string) (reg Register, ok bool) {
	if !strings.HasPrefix(word, "%") {
		return
	}
	return RegisterOf(word[1:])
}

// parseMemory parses an absolute address or a disp(base,index,scale)
// expression.
func parseMemory(word string) (mem Memory, err error) {
	mem.Scale = 1

	if reAbsolute.MatchString(word) {
		value, perr := strconv.ParseInt(word, 10, WORD_BITS)
		if perr != nil {
			err = ErrMemoryInvalid(word)
			return
		}
		mem.Displacement = int32(value)
		return
	}

	tag := reIndirect.FindStringSubmatch(word)
	if tag == nil {
		err = ErrMemoryInvalid(word)
		return
	}

	if len(tag[1]) > 0 {
		value, perr := strconv.ParseInt(tag[1], 10, WORD_BITS)
		if perr != nil {
			err = ErrMemoryInvalid(word)
			return
		}
		mem.Displacement = int32(value)
	}

	var ok bool
	parts := strings.Split(tag[2], ",")
	switch len(parts) {
	case 1, 2:
		mem.Base, ok = parseRegister(parts[0])
		if !ok {
			err = ErrRegisterInvalid(parts[0])
			return
		}
		mem.HasBase = true
		if len(parts) == 2 {
			mem.Index, ok = parseRegister(parts[1])
			if !ok {
				err = ErrRegisterInvalid(parts[1])
				return
			}
			mem.HasIndex = true
		}
	case 3:
		if len(parts[0]) > 0 {
			mem.Base, ok = parseRegister(parts[0])
			if !ok {
				err = ErrRegisterInvalid(parts[0])
				return
			}
			mem.HasBase = true
		}
		mem.Index, ok = parseRegister(parts[1])
		if !ok {
			err = ErrRegisterInvalid(parts[1])
			return
		}
		mem.HasIndex = true
		switch parts[2] {
		case "1", "2", "4", "8":
			scale, _ := strconv.Atoi(parts[2])
			mem.Scale = int32(scale)
		default:
			err = ErrScaleInvalid(parts[2])
			return
		}
	default:
		err = ErrMemoryInvalid(word)
		return
	}

	return
}
