// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/cpu"
	"github.com/ezrec/asmsim/translate"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asmsim",
	Short: "An interpreter for a small x86-64 style assembly language.",
	Long: `Check and run programs written in a small AT&T syntax subset of
	x86-64 assembly, on a simulated machine with 32-bit registers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
			log.Debugf("asmsim: language %v", translate.Language())
		}
	},
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace every executed line")
	rootCmd.PersistentFlags().IntP("limit", "l", cpu.ITERATION_LIMIT, "maximum executed lines per run")
}
