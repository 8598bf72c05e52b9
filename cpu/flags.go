// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"
)

// Flags are the condition codes.
type Flags struct {
	ZF bool // Result was zero.
	SF bool // Result had the sign bit set.
	OF bool // Result overflowed the machine word.
}

// FlagPolicy selects how an instruction updates the flags.
type FlagPolicy int

const (
	FLAGS_NONE       = FlagPolicy(0) // none
	FLAGS_ARITHMETIC = FlagPolicy(1) // arithmetic
	FLAGS_LOGICAL    = FlagPolicy(2) // logical
)

func (fp FlagPolicy) String() string {
	switch fp {
	case FLAGS_ARITHMETIC:
		return "arithmetic"
	case FLAGS_LOGICAL:
		return "logical"
	}
	return "none"
}

// Reset clears all flags.
func (fl *Flags) Reset() {
	*fl = Flags{}
}

// Update recomputes the flags from an untruncated result.
func (fl *Flags) Update(policy FlagPolicy, raw int64) {
	if policy == FLAGS_NONE {
		return
	}

	result := Wrap(raw)
	fl.ZF = result == 0
	fl.SF = result < 0

	switch policy {
	case FLAGS_ARITHMETIC:
		fl.OF = !Fits(raw)
	case FLAGS_LOGICAL:
		fl.OF = false
	}
}

// Names lists the set flags in ZF, SF, OF order.
func (fl Flags) Names() (names []string) {
	if fl.ZF {
		names = append(names, "ZF")
	}
	if fl.SF {
		names = append(names, "SF")
	}
	if fl.OF {
		names = append(names, "OF")
	}
	return
}

func (fl Flags) String() string {
	names := fl.Names()
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

// Condition is a predicate over the flags.
type Condition int

const (
	COND_ALWAYS        = Condition(0) // mp
	COND_EQUAL         = Condition(1) // e
	COND_NOT_EQUAL     = Condition(2) // ne
	COND_SIGN          = Condition(3) // s
	COND_NOT_SIGN      = Condition(4) // ns
	COND_GREATER       = Condition(5) // g
	COND_GREATER_EQUAL = Condition(6) // ge
	COND_LESS          = Condition(7) // l
	COND_LESS_EQUAL    = Condition(8) // le
)

// conditionSuffix maps mnemonic suffixes, including aliases, to conditions.
var conditionSuffix = []struct {
	Suffix    string
	Condition Condition
}{
	{"e", COND_EQUAL},
	{"z", COND_EQUAL},
	{"ne", COND_NOT_EQUAL},
	{"nz", COND_NOT_EQUAL},
	{"s", COND_SIGN},
	{"ns", COND_NOT_SIGN},
	{"g", COND_GREATER},
	{"nle", COND_GREATER},
	{"ge", COND_GREATER_EQUAL},
	{"nl", COND_GREATER_EQUAL},
	{"l", COND_LESS},
	{"nge", COND_LESS},
	{"le", COND_LESS_EQUAL},
	{"ng", COND_LESS_EQUAL},
}

func (cond Condition) String() string {
	if cond == COND_ALWAYS {
		return "mp"
	}
	for _, cs := range conditionSuffix {
		if cs.Condition == cond {
			return cs.Suffix
		}
	}
	return "?"
}

// Holds evaluates the condition against the flags.
func (cond Condition) Holds(fl Flags) bool {
	switch cond {
	case COND_ALWAYS:
		return true
	case COND_EQUAL:
		return fl.ZF
	case COND_NOT_EQUAL:
		return !fl.ZF
	case COND_SIGN:
		return fl.SF
	case COND_NOT_SIGN:
		return !fl.SF
	case COND_GREATER:
		return fl.SF == fl.OF && !fl.ZF
	case COND_GREATER_EQUAL:
		return fl.SF == fl.OF
	case COND_LESS:
		return fl.SF != fl.OF
	case COND_LESS_EQUAL:
		return fl.SF != fl.OF || fl.ZF
	}
	return false
}
