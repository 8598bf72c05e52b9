// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getStringToString(cmd *cobra.Command, flag string) map[string]string {
	r, err := cmd.Flags().GetStringToString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readSource reads program text from a file, or from stdin if the name is
// "-".
func readSource(filename string, stdin io.Reader) (text string, err error) {
	var data []byte
	if filename == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return
	}

	text = string(data)
	return
}

// isTerminal reports if a file is an interactive terminal.
func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
