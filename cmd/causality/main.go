// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "causality",
	Short: "Compile and execute causality programs",
	Long: `causality is a thin command-line surface over the compiler, execution,
and Temporal Effect Graph libraries: it exists to exercise them end to end,
not as a standalone developer tool.`,
}

func main() {
	rootCmd.AddCommand(
		compileCmd(),
		runCmd(),
		tegCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
