// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package compiler ties the full pipeline together (spec.md §4.H):
// parse the S-expression surface syntax, lower to a Layer-1 term,
// type-check it, compile it to a Layer-0 program, and optionally run
// it and derive its proof witness. Compile is deterministic and total
// over well-formed input: the same source and context always produce
// byte-identical instructions.
package compiler

import (
	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/l1"
	"github.com/timewave-computer/causality/linear"
	"github.com/timewave-computer/causality/sexpr"
	"github.com/timewave-computer/causality/witness"
)

// Compile runs parse -> lower -> check -> compile over src, producing a
// Layer-0 program. ctx is the outer typing context (usually empty);
// Compile does not mutate the caller's ctx (l1.Compile checks against
// a clone of it).
func Compile(src string, ctx *linear.Context) (*l0.Program, error) {
	expr, err := sexpr.Parse(src)
	if err != nil {
		return nil, err
	}
	term, err := sexpr.Lower(expr)
	if err != nil {
		return nil, err
	}
	return l1.Compile(term, ctx)
}

// RunResult bundles a compiled program with its execution and derived
// witness.
type RunResult struct {
	Program *l0.Program
	Exec    *l0.ExecuteResult
	Witness *witness.Witness
}

// Run compiles src and executes it, consuming the program's own
// compile-time witness table (the only source of witnessed values this
// pipeline currently produces — see l1.Compile), then derives a
// size-bounded proof witness from the resulting trace under policy.
func Run(src string, ctx *linear.Context, schedule l0.GasSchedule, gasLimit uint64, policy witness.Policy) (*RunResult, error) {
	program, err := Compile(src, ctx)
	if err != nil {
		return nil, err
	}

	witnessSrc := l0.NewSliceWitnessSource(program.WitnessTable)
	result, err := l0.Execute(program, nil, witnessSrc, schedule, gasLimit)
	if err != nil {
		return nil, err
	}

	w, err := witness.WitnessOf(program, result, policy)
	if err != nil {
		return nil, err
	}

	return &RunResult{Program: program, Exec: result, Witness: w}, nil
}
