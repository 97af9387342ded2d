// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timewave-computer/causality/compiler"
	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/linear"
	"github.com/timewave-computer/causality/witness"
)

func runCmd() *cobra.Command {
	var gasLimit uint64

	cmd := &cobra.Command{
		Use:   "run <source-file>",
		Short: "Compile, execute, and derive a proof witness for a causality source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}

			result, err := compiler.Run(string(src), linear.NewContext(), l0.UniformGasSchedule(), gasLimit, witness.DefaultPolicy())
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			fmt.Printf("program id:   %s\n", result.Program.Id())
			fmt.Printf("result:       %s\n", result.Exec.Result)
			fmt.Printf("gas used:     %d\n", result.Exec.GasUsed)
			fmt.Printf("witness id:   %s\n", result.Witness.Id())
			fmt.Printf("trace steps:  %d\n", len(result.Exec.Trace))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 1_000_000, "maximum gas for this execution")
	return cmd
}
