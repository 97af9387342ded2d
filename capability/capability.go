// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package capability implements the authorization lattice of spec.md
// §4.K: capability levels (Admin implies every level; Write and Execute
// each imply Read; Execute does not imply Write),
// record-field operations, and capability sets that authorize effects.
package capability

import (
	"fmt"

	"github.com/timewave-computer/causality/utils/set"
)

// Level is a capability's authorization level. Admin implies Execute
// and Write; Write implies Read; Execute implies Read.
type Level uint8

const (
	Read Level = iota
	Write
	Execute
	Admin
)

func (l Level) String() string {
	switch l {
	case Read:
		return "read"
	case Write:
		return "write"
	case Execute:
		return "execute"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Implies reports whether holding level l authorizes a requirement of
// level req, per spec.md §4: Admin ≥ Execute, Admin ≥ Write ≥ Read,
// Execute ≥ Read. Execute does NOT imply Write.
func (l Level) Implies(req Level) bool {
	if l == req {
		return true
	}
	if l == Admin {
		return true
	}
	switch req {
	case Read:
		return l == Write || l == Execute
	default:
		return false
	}
}

// Capability is a named, levelled authorization token, optionally
// refined by a record capability over the same name.
type Capability struct {
	Name   string
	Level  Level
	Record RecordCap // RecordCapNone if this capability carries no record refinement
}

// New constructs a plain, non-record capability.
func New(name string, level Level) Capability {
	return Capability{Name: name, Level: level}
}

// Implies reports whether holding c authorizes the requirement req.
// Names must match; record capabilities are checked via the record
// lattice when either side carries one.
func (c Capability) Implies(req Capability) bool {
	if c.Name != req.Name {
		return false
	}
	if req.Record.Kind != RecordCapNone || c.Record.Kind != RecordCapNone {
		return c.Record.Implies(req.Record)
	}
	return c.Level.Implies(req.Level)
}

func (c Capability) String() string {
	if c.Record.Kind == RecordCapNone {
		return fmt.Sprintf("%s:%s", c.Name, c.Level)
	}
	return fmt.Sprintf("%s:%s", c.Name, c.Record)
}

// Set is an immutable, shared collection of held capabilities. Per
// spec.md §5 ("Capability sets are shared, immutable values"), Sets are
// never mutated in place by authorization logic; With* constructors
// return a new Set.
type Set struct {
	held set.Set[Capability]
}

// NewSet constructs a capability set from the given capabilities.
func NewSet(caps ...Capability) Set {
	return Set{held: set.Of(caps...)}
}

// Authorizes reports whether, for every required capability, some held
// capability implies it (spec.md §4.K).
func (s Set) Authorizes(required ...Capability) bool {
	for _, req := range required {
		if !s.authorizesOne(req) {
			return false
		}
	}
	return true
}

func (s Set) authorizesOne(req Capability) bool {
	for held := range s.held {
		if held.Implies(req) {
			return true
		}
	}
	return false
}

// With returns a new Set with the given capabilities added, leaving s
// untouched.
func (s Set) With(caps ...Capability) Set {
	next := set.Of(s.held.List()...)
	next.Add(caps...)
	return Set{held: next}
}

// IsSubsetOf reports whether every capability in s is also implied by
// some capability in other — used to witness capability monotonicity
// (spec.md §8 property 8): if s authorizes an effect and s ⊆ other,
// other authorizes it too.
func (s Set) IsSubsetOf(other Set) bool {
	for c := range s.held {
		if !other.authorizesOne(c) {
			return false
		}
	}
	return true
}

// List returns the held capabilities in no particular order.
func (s Set) List() []Capability {
	return s.held.List()
}

// MissingCapability names the first required capability that no held
// capability implies, for the compiler's MissingCapability failure mode.
type MissingCapability struct {
	Required Capability
}

func (e *MissingCapability) Error() string {
	return fmt.Sprintf("capability: missing %s", e.Required)
}

// Require checks held against a single requirement, returning a
// *MissingCapability error matching spec.md §4.F's require(capability).
func Require(held Set, req Capability) error {
	if held.Authorizes(req) {
		return nil
	}
	return &MissingCapability{Required: req}
}
