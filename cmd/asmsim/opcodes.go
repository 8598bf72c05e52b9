// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/cpu"
)

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "List the instruction set.",
	Run: func(cmd *cobra.Command, args []string) {
		listOpcodes(os.Stdout)
	},
}

// listOpcodes prints each mnemonic with its operand kinds.
func listOpcodes(out io.Writer) {
	for _, name := range cpu.Mnemonics() {
		insn, _ := cpu.Lookup(name)
		operands := make([]string, len(insn.Signature))
		for n, kinds := range insn.Signature {
			operands[n] = "[" + kinds.String() + "]"
		}
		fmt.Fprintf(out, "%-8s %s\n", name, strings.Join(operands, " "))
	}
}

func init() {
	rootCmd.AddCommand(opcodesCmd)
}
