// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/suite"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [catalogue_file...]",
	Short: "Check programs against a catalogue of expected results.",
	Long: `Run every case of one or more Starlark catalogue files, or of the
	built-in catalogue when no files are given, and report the failures.`,
	Run: func(cmd *cobra.Command, args []string) {
		var s *suite.Suite
		var err error

		if len(args) == 0 {
			s, err = suite.Builtin()
		} else {
			s = &suite.Suite{}
			for _, filename := range args {
				err = s.Load(filename, nil)
				if err != nil {
					break
				}
			}
		}
		if err != nil {
			log.Error(err)
			os.Exit(2)
		}

		s.Verbose = getFlag(cmd, "verbose")
		s.Limit = getInt(cmd, "limit")

		outcomes, failed := s.Run()
		for _, out := range outcomes {
			if !out.Pass || getFlag(cmd, "all") {
				fmt.Println(out)
			}
		}
		fmt.Printf("%d of %d cases passed\n", len(outcomes)-failed, len(outcomes))

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("all", false, "print passing cases as well as failures")
}
