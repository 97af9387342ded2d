// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capability

// Context composes the capabilities ambient to a compilation (those
// already in scope from an enclosing handler or session) with the
// capabilities offered at a specific call site. Authorization checks a
// single merged set rather than either half alone, matching
// causality-core/src/effect/capability.rs: capability sets are unioned
// before the require check, not checked independently.
type Context struct {
	Ambient  Set
	CallSite Set
}

// NewContext constructs a Context from its two halves.
func NewContext(ambient, callSite Set) Context {
	return Context{Ambient: ambient, CallSite: callSite}
}

// Merge unions Ambient and CallSite into the single Set that
// authorization checks run against.
func (c Context) Merge() Set {
	return c.Ambient.With(c.CallSite.List()...)
}
