// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/asmsim/batch"
	"github.com/ezrec/asmsim/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] program_file input_table",
	Short: "Run a program once per row of an input table.",
	Long: `Check a program once, then run it for every row of a CSV, JSON or
	Parquet table whose columns name input registers. An optional
	"expect" column holds the result each row should produce.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		source, err := readSource(args[0], os.Stdin)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		df, err := batch.Load(args[1])
		if err != nil {
			fmt.Printf("%s: %v\n", args[1], err)
			os.Exit(2)
		}

		runner := &batch.Runner{
			Verbose:  getFlag(cmd, "verbose"),
			Limit:    getInt(cmd, "limit"),
			Reporter: &report.Logger{},
		}

		results, failed, err := runner.Run(source, df)
		if err != nil {
			os.Exit(1)
		}

		fmt.Print(results.Table())
		if failed > 0 {
			log.Errorf("%d of %d rows failed", failed, results.NRows())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
