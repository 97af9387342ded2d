// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timewave-computer/causality/compiler"
	"github.com/timewave-computer/causality/linear"
)

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <source-file>",
		Short: "Compile a causality source file to a Layer-0 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}

			program, err := compiler.Compile(string(src), linear.NewContext())
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}

			fmt.Printf("program id: %s\n", program.Id())
			fmt.Printf("instructions: %d\n", len(program.Instructions))
			fmt.Printf("witness table entries: %d\n", len(program.WitnessTable))
			return nil
		},
	}
}
