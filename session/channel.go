// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"errors"
	"fmt"

	"github.com/timewave-computer/causality/id"
	"github.com/timewave-computer/causality/linear"
)

// State enumerates a channel's lifecycle states (spec.md §3.6).
type State uint8

const (
	Ready State = iota
	WaitingSend
	WaitingReceive
	WaitingChoice
	WaitingBranch
	Terminated
	Error
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case WaitingSend:
		return "WaitingSend"
	case WaitingReceive:
		return "WaitingReceive"
	case WaitingChoice:
		return "WaitingChoice"
	case WaitingBranch:
		return "WaitingBranch"
	case Terminated:
		return "Terminated"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrProtocolViolation is returned by Progress when the requested
// operation does not match the channel's current session type.
var ErrProtocolViolation = errors.New("session: protocol violation")

// Op is one channel operation: send/receive a value, or select/offer a
// choice branch.
type Op struct {
	Kind  OpKind
	Label string // for OpSelect/OpOffer
}

type OpKind uint8

const (
	OpSend OpKind = iota
	OpReceive
	OpSelect
	OpOffer
)

// Channel is one endpoint of a session: its Id, current session type,
// role, lifecycle state, and operation history.
type Channel struct {
	ID      id.Id
	Type    *linear.SessionType
	Role    string
	State   State
	History []Op
}

// NewChannel creates a channel in the Ready state for the given role's
// session type within decl.
func NewChannel(decl *Declaration, role string) (*Channel, error) {
	s, ok := decl.Roles[role]
	if !ok {
		return nil, fmt.Errorf("session: unknown role %q in declaration %q", role, decl.Name)
	}
	unfolded := unfoldForState(s)
	state := waitingStateFor(unfolded)
	if unfolded.Kind == linear.SessionEnd {
		state = Terminated
	}
	return &Channel{
		ID:    id.Hash([]byte(decl.Name + ":" + role)),
		Type:  s,
		Role:  role,
		State: state,
	}, nil
}

// waitingStateFor reports the waiting state a channel enters while its
// current type demands the given op, before Progress consumes it.
func waitingStateFor(s *linear.SessionType) State {
	switch s.Kind {
	case linear.SessionSend:
		return WaitingSend
	case linear.SessionReceive:
		return WaitingReceive
	case linear.SessionInternalChoice:
		return WaitingChoice
	case linear.SessionExternalChoice:
		return WaitingBranch
	default:
		return Ready
	}
}

// Progress advances the channel's state machine by one operation.
// Illegal operations (an op that doesn't match the channel's current
// session type) yield ErrProtocolViolation and move the channel to
// Error.
func (c *Channel) Progress(op Op) error {
	if c.State == Terminated || c.State == Error {
		c.State = Error
		return fmt.Errorf("%w: channel already %s", ErrProtocolViolation, c.State)
	}

	cur := c.Type
	if cur == nil {
		c.State = Error
		return fmt.Errorf("%w: nil session type", ErrProtocolViolation)
	}
	// Unfold every leading level of recursion transparently.
	for cur.Kind == linear.SessionRec {
		cur = unfold(cur)
	}

	var next *linear.SessionType
	switch {
	case cur.Kind == linear.SessionSend && op.Kind == OpSend:
		next = cur.Cont
	case cur.Kind == linear.SessionReceive && op.Kind == OpReceive:
		next = cur.Cont
	case cur.Kind == linear.SessionInternalChoice && op.Kind == OpSelect:
		branch, ok := cur.Branches[op.Label]
		if !ok {
			c.State = Error
			return fmt.Errorf("%w: no branch %q to select", ErrProtocolViolation, op.Label)
		}
		next = branch
	case cur.Kind == linear.SessionExternalChoice && op.Kind == OpOffer:
		branch, ok := cur.Branches[op.Label]
		if !ok {
			c.State = Error
			return fmt.Errorf("%w: no branch %q offered", ErrProtocolViolation, op.Label)
		}
		next = branch
	default:
		c.State = Error
		return fmt.Errorf("%w: op %v does not match %s", ErrProtocolViolation, op, cur)
	}

	c.History = append(c.History, op)
	c.Type = next
	if next.Kind == linear.SessionEnd {
		c.State = Terminated
	} else {
		c.State = waitingStateFor(unfoldForState(next))
	}
	return nil
}

// unfold substitutes a single rec X.S binder's own fixpoint for X within
// its body, producing the type that session type actually behaves as
// the next time it's observed.
func unfold(s *linear.SessionType) *linear.SessionType {
	return substitute(s.Body, s.RecVar, s)
}

func unfoldForState(s *linear.SessionType) *linear.SessionType {
	for s.Kind == linear.SessionRec {
		s = unfold(s)
	}
	return s
}

func substitute(s *linear.SessionType, name string, with *linear.SessionType) *linear.SessionType {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case linear.SessionVar:
		if s.VarName == name {
			return with
		}
		return s
	case linear.SessionSend:
		return linear.Send(s.Payload, substitute(s.Cont, name, with))
	case linear.SessionReceive:
		return linear.Receive(s.Payload, substitute(s.Cont, name, with))
	case linear.SessionInternalChoice:
		return linear.InternalChoice(substituteBranches(s.Branches, name, with))
	case linear.SessionExternalChoice:
		return linear.ExternalChoice(substituteBranches(s.Branches, name, with))
	case linear.SessionRec:
		if s.RecVar == name {
			return s // shadowed
		}
		return linear.Rec(s.RecVar, substitute(s.Body, name, with))
	default:
		return s
	}
}

func substituteBranches(branches map[string]*linear.SessionType, name string, with *linear.SessionType) map[string]*linear.SessionType {
	out := make(map[string]*linear.SessionType, len(branches))
	for label, s := range branches {
		out[label] = substitute(s, name, with)
	}
	return out
}
