// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timewave-computer/causality/teg"
)

func tegCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teg",
		Short: "Inspect Temporal Effect Graphs",
	}
	cmd.AddCommand(tegInspectCmd())
	return cmd
}

func tegInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Load a TEG JSON wire file and print its hash and frontier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading graph: %w", err)
			}

			g, err := teg.FromJSON(data)
			if err != nil {
				return fmt.Errorf("loading graph: %w", err)
			}

			fmt.Printf("hash: %s\n", g.Hash())
			fmt.Println("frontier:")
			for _, nid := range g.Frontier() {
				fmt.Printf("  %s\n", nid)
			}
			return nil
		},
	}
}
