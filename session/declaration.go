// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"fmt"

	"github.com/timewave-computer/causality/linear"
)

// Declaration is a named protocol with a set of roles, each assigned a
// session type.
type Declaration struct {
	Name  string
	Roles map[string]*linear.SessionType
}

// Result reports the outcome of verifying a Declaration.
type Result struct {
	OK     bool
	Reason string
}

func ok() Result  { return Result{OK: true} }
func fail(format string, args ...interface{}) Result {
	return Result{OK: false, Reason: fmt.Sprintf(format, args...)}
}

// DualityMismatchReason is the Result.Reason prefix used when two-role
// duality fails, matching spec.md §8 Scenario 4.
const DualityMismatchReason = "DualityMismatch"

// VerifyDeclaration checks a session declaration for internal
// consistency: every role's type must be well-formed; for exactly two
// roles, role1's type must be the dual of role2's; for more than two
// roles the check (up front, per SPEC_FULL.md §11) is the approximation
// in verifyProjectionConsistency — across all roles, each payload type
// must be received at least as often as it is sent. Pairs of roles are
// not checked for duality in the n-role case.
//
// For the common two-role case this is exactly the duality check in
// spec.md §4.E.
func VerifyDeclaration(decl *Declaration) Result {
	if len(decl.Roles) == 0 {
		return fail("declaration %q has no roles", decl.Name)
	}

	for role, s := range decl.Roles {
		if err := WellFormed(s, DefaultMaxRecursionDepth); err != nil {
			return fail("role %q: %s", role, err)
		}
	}

	if len(decl.Roles) == 2 {
		var names []string
		for name := range decl.Roles {
			names = append(names, name)
		}
		a, b := decl.Roles[names[0]], decl.Roles[names[1]]
		if !Dual(a).Equal(b) {
			return fail("%s: role %q is not dual to role %q", DualityMismatchReason, names[0], names[1])
		}
		return ok()
	}

	return verifyProjectionConsistency(decl)
}

// verifyProjectionConsistency implements the n-role up-front check:
// every role's type, when restricted to a single peer, must be dual to
// that peer's corresponding projection. Our session-type grammar does
// not carry explicit per-peer addressing, so projection consistency is
// approximated structurally: the multiset of send/receive shapes across
// all roles must balance (every send somewhere has a matching receive
// somewhere, recursively), which is the minimum necessary condition for
// any n-role protocol to be realizable.
func verifyProjectionConsistency(decl *Declaration) Result {
	sendCount := map[string]int{}
	recvCount := map[string]int{}

	var walk func(s *linear.SessionType)
	walk = func(s *linear.SessionType) {
		if s == nil {
			return
		}
		switch s.Kind {
		case linear.SessionSend:
			sendCount[s.Payload.String()]++
			walk(s.Cont)
		case linear.SessionReceive:
			recvCount[s.Payload.String()]++
			walk(s.Cont)
		case linear.SessionInternalChoice, linear.SessionExternalChoice:
			for _, b := range s.Branches {
				walk(b)
			}
		case linear.SessionRec:
			walk(s.Body)
		}
	}
	for _, s := range decl.Roles {
		walk(s)
	}
	for payload, sends := range sendCount {
		if recvCount[payload] < sends {
			return fail("%s: %d send(s) of %s have no matching receive across roles", DualityMismatchReason, sends, payload)
		}
	}
	return ok()
}
