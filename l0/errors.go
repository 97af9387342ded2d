// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l0

import "errors"

// Failure modes of Layer-0 execution (spec.md §4.B). All failures are
// reported; none are recovered internally.
var (
	ErrRegisterEmpty    = errors.New("l0: register empty")
	ErrTypeMismatch     = errors.New("l0: type mismatch")
	ErrWitnessExhausted = errors.New("l0: witness exhausted")
	ErrGasExhausted     = errors.New("l0: gas exhausted")
	ErrInvalidInstruction = errors.New("l0: invalid instruction")
)
