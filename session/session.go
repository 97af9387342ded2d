// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package session implements session-type duality, well-formedness, and
// the channel state machine (spec.md §3.6, §4.E).
package session

import (
	"errors"
	"fmt"

	"github.com/timewave-computer/causality/linear"
)

// Dual exchanges send with receive and internal choice with external
// choice, recursively. Dual is an involution: Dual(Dual(S)) == S for
// every well-formed S (spec.md §8 property 3).
func Dual(s *linear.SessionType) *linear.SessionType {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case linear.SessionSend:
		return linear.Receive(s.Payload, Dual(s.Cont))
	case linear.SessionReceive:
		return linear.Send(s.Payload, Dual(s.Cont))
	case linear.SessionInternalChoice:
		return linear.ExternalChoice(dualBranches(s.Branches))
	case linear.SessionExternalChoice:
		return linear.InternalChoice(dualBranches(s.Branches))
	case linear.SessionEnd:
		return linear.End()
	case linear.SessionRec:
		return linear.Rec(s.RecVar, Dual(s.Body))
	case linear.SessionVar:
		return linear.Var(s.VarName)
	default:
		return s
	}
}

func dualBranches(branches map[string]*linear.SessionType) map[string]*linear.SessionType {
	out := make(map[string]*linear.SessionType, len(branches))
	for label, s := range branches {
		out[label] = Dual(s)
	}
	return out
}

// ErrEmptyChoice is returned by WellFormed when a choice has no
// branches.
var ErrEmptyChoice = errors.New("session: choice has no branches")

// ErrRecursionTooDeep is returned by WellFormed when nested rec binders
// exceed the configured depth.
var ErrRecursionTooDeep = errors.New("session: recursion depth exceeded")

// DefaultMaxRecursionDepth bounds nested rec X.S binders so WellFormed
// stays total over pathological input.
const DefaultMaxRecursionDepth = 64

// WellFormed rejects empty choices and recursion nested beyond
// maxDepth. A session type that is well-formed may still fail duality
// against a particular peer; WellFormed only checks the type's own
// internal shape.
func WellFormed(s *linear.SessionType, maxDepth int) error {
	return wellFormed(s, 0, maxDepth, map[string]bool{})
}

func wellFormed(s *linear.SessionType, depth, maxDepth int, bound map[string]bool) error {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case linear.SessionSend, linear.SessionReceive:
		return wellFormed(s.Cont, depth, maxDepth, bound)
	case linear.SessionInternalChoice, linear.SessionExternalChoice:
		if len(s.Branches) == 0 {
			return ErrEmptyChoice
		}
		for _, branch := range s.Branches {
			if err := wellFormed(branch, depth, maxDepth, bound); err != nil {
				return err
			}
		}
		return nil
	case linear.SessionRec:
		if depth+1 > maxDepth {
			return fmt.Errorf("%w: depth %d", ErrRecursionTooDeep, depth+1)
		}
		nextBound := make(map[string]bool, len(bound)+1)
		for k, v := range bound {
			nextBound[k] = v
		}
		nextBound[s.RecVar] = true
		return wellFormed(s.Body, depth+1, maxDepth, nextBound)
	case linear.SessionVar:
		if !bound[s.VarName] {
			return fmt.Errorf("session: unbound recursion variable %q", s.VarName)
		}
		return nil
	case linear.SessionEnd:
		return nil
	default:
		return fmt.Errorf("session: unknown session kind %d", s.Kind)
	}
}
