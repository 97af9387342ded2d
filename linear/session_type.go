// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package linear

import (
	"fmt"
	"strings"
)

// SessionKind enumerates the session-type grammar of spec.md §3.6:
// !T.S | ?T.S | ⊕{Sᵢ} | &{Sᵢ} | End | rec X.S | X
type SessionKind uint8

const (
	SessionSend SessionKind = iota
	SessionReceive
	SessionInternalChoice // ⊕{Sᵢ}
	SessionExternalChoice // &{Sᵢ}
	SessionEnd
	SessionRec
	SessionVar
)

// SessionType is a node in the session-type grammar. Choice branches are
// labelled so duality and progress can be checked per-label.
type SessionType struct {
	Kind SessionKind

	// SessionSend, SessionReceive
	Payload *Type
	Cont    *SessionType

	// SessionInternalChoice, SessionExternalChoice
	Branches map[string]*SessionType

	// SessionRec
	RecVar string
	Body   *SessionType

	// SessionVar
	VarName string
}

// Send constructs !T.S.
func Send(payload *Type, cont *SessionType) *SessionType {
	return &SessionType{Kind: SessionSend, Payload: payload, Cont: cont}
}

// Receive constructs ?T.S.
func Receive(payload *Type, cont *SessionType) *SessionType {
	return &SessionType{Kind: SessionReceive, Payload: payload, Cont: cont}
}

// InternalChoice constructs ⊕{Sᵢ}: the holder of this end picks a branch.
func InternalChoice(branches map[string]*SessionType) *SessionType {
	return &SessionType{Kind: SessionInternalChoice, Branches: branches}
}

// ExternalChoice constructs &{Sᵢ}: the holder of this end offers branches
// and the peer picks.
func ExternalChoice(branches map[string]*SessionType) *SessionType {
	return &SessionType{Kind: SessionExternalChoice, Branches: branches}
}

// End is the terminated session type.
func End() *SessionType { return &SessionType{Kind: SessionEnd} }

// Rec constructs rec X.S.
func Rec(name string, body *SessionType) *SessionType {
	return &SessionType{Kind: SessionRec, RecVar: name, Body: body}
}

// Var references a bound recursion variable X.
func Var(name string) *SessionType { return &SessionType{Kind: SessionVar, VarName: name} }

// Equal performs structural equality over session types.
func (s *SessionType) Equal(other *SessionType) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case SessionSend, SessionReceive:
		return s.Payload.Equal(other.Payload) && s.Cont.Equal(other.Cont)
	case SessionInternalChoice, SessionExternalChoice:
		if len(s.Branches) != len(other.Branches) {
			return false
		}
		for label, branch := range s.Branches {
			ob, ok := other.Branches[label]
			if !ok || !branch.Equal(ob) {
				return false
			}
		}
		return true
	case SessionEnd:
		return true
	case SessionRec:
		return s.RecVar == other.RecVar && s.Body.Equal(other.Body)
	case SessionVar:
		return s.VarName == other.VarName
	default:
		return false
	}
}

// String renders the session type using the spec's grammar notation.
func (s *SessionType) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case SessionSend:
		return fmt.Sprintf("!%s.%s", s.Payload, s.Cont)
	case SessionReceive:
		return fmt.Sprintf("?%s.%s", s.Payload, s.Cont)
	case SessionInternalChoice:
		return fmt.Sprintf("⊕{%s}", joinBranches(s.Branches))
	case SessionExternalChoice:
		return fmt.Sprintf("&{%s}", joinBranches(s.Branches))
	case SessionEnd:
		return "End"
	case SessionRec:
		return fmt.Sprintf("rec %s.%s", s.RecVar, s.Body)
	case SessionVar:
		return s.VarName
	default:
		return "?"
	}
}

func joinBranches(branches map[string]*SessionType) string {
	parts := make([]string, 0, len(branches))
	for label, s := range branches {
		parts = append(parts, fmt.Sprintf("%s: %s", label, s))
	}
	return strings.Join(parts, ", ")
}
