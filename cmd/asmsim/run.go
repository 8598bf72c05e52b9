// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/emulator"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "Run a program and print the final value of %rax.",
	Long: `Check and run a program, printing the final value of %rax in decimal.
	Failures are logged with their category and line, and print ERROR.
	A program_file of - reads the program from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		source, err := readSource(args[0], os.Stdin)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		emu := emulator.NewEmulator()
		emu.Verbose = getFlag(cmd, "verbose")
		emu.Limit = getInt(cmd, "limit")

		ok, result := emu.Result(source, getStringToString(cmd, "arg"))
		fmt.Println(result)

		if getFlag(cmd, "dump") && emu.Program != nil {
			printer := pp.New()
			printer.SetColoringEnabled(isTerminal(os.Stdout))
			printer.Println(emu.Cpu.Snapshot())
		}

		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringToStringP("arg", "a", nil, "initial register value, as register=value")
	runCmd.Flags().Bool("dump", false, "print the machine state after the run")
}
