// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Edit and run programs interactively.",
	Run: func(cmd *cobra.Command, args []string) {
		r := repl.New()
		r.SetVerbose(getFlag(cmd, "verbose"))
		r.SetLimit(getInt(cmd, "limit"))
		r.Prompt = isTerminal(os.Stdin)
		r.Color = isTerminal(os.Stdout)

		r.Start(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
