// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package effect implements the Layer-2 effect algebra of spec.md
// §3.5/§4.F: structured effects, handlers that realize them as
// Layer-1 terms, and intents that plan to a sequence of effects.
package effect

import (
	"errors"
	"fmt"
	"sort"

	"github.com/timewave-computer/causality/capability"
	"github.com/timewave-computer/causality/l1"
	"github.com/timewave-computer/causality/linear"
)

// Effect is a structured action: a kind, a domain tag, ordered linear
// inputs, non-linear parameters, the capabilities it requires, and the
// type its continuation expects.
type Effect struct {
	Kind             string
	Domain           string
	Inputs           []*l1.Term
	Parameters       map[string]*l1.Term
	RequiredCaps     []capability.Capability
	ContinuationType *linear.Type
}

// Handler maps an effect kind, under a capability set, to a Layer-1
// term realizing it. The term is a function of the effect's inputs and
// parameters: handler bodies reference the reserved names "input0",
// "input1", ... for Inputs in order, and the effect's own parameter
// names for Parameters.
type Handler struct {
	Kind    string
	Caps    capability.Set
	Body    *l1.Term
	ResultT *linear.Type
}

// ErrUnknownEffect is returned when no handler matches an effect's
// kind under any capability set.
var ErrUnknownEffect = errors.New("effect: unknown effect kind")

// ErrInvalidParameter is returned when an effect's declared parameters
// don't match what its matched handler expects.
var ErrInvalidParameter = errors.New("effect: invalid parameter")

// Table is a total, explicitly-constructed mapping from (effect kind,
// capability set) to handler. There is no process-wide registry: a
// Table is threaded explicitly into compilation.
type Table struct {
	handlers []Handler
}

// NewTable constructs a handler table from explicit entries.
func NewTable(handlers ...Handler) *Table {
	return &Table{handlers: handlers}
}

// lookup finds the first handler whose kind matches and whose required
// capability profile (h.Caps) is authorized by held — a total function
// over (kind, held) with two distinct failure cases: no handler
// registered for kind at all (ErrUnknownEffect), or a handler exists
// but held doesn't authorize its profile (MissingCapability).
func (t *Table) lookup(kind string, held capability.Set) (*Handler, error) {
	var sawKind bool
	for i := range t.handlers {
		h := &t.handlers[i]
		if h.Kind != kind {
			continue
		}
		sawKind = true
		if held.Authorizes(h.Caps.List()...) {
			return h, nil
		}
	}
	if !sawKind {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, kind)
	}
	return nil, firstMissing(kind, held, t.handlers)
}

// firstMissing names the capability from the first matching handler's
// profile that held doesn't authorize, for a more actionable error than
// a bare MissingCapability.
func firstMissing(kind string, held capability.Set, handlers []Handler) error {
	for i := range handlers {
		h := &handlers[i]
		if h.Kind != kind {
			continue
		}
		for _, req := range h.Caps.List() {
			if !held.Authorizes(req) {
				return &capability.MissingCapability{Required: req}
			}
		}
	}
	return &capability.MissingCapability{}
}

// Require is spec.md §4.F's compile-time capability check: the context's
// capability set must imply req, else MissingCapability.
func Require(held capability.Set, req capability.Capability) error {
	return capability.Require(held, req)
}

// CompileEffectInContext merges a capability context's ambient and
// call-site capabilities before compiling, so an effect is authorized
// against what the caller actually holds at this point in the program
// rather than either half alone (SPEC_FULL.md §11, "capability context
// composition").
func CompileEffectInContext(e *Effect, ctx capability.Context, table *Table) (*l1.Term, error) {
	return CompileEffect(e, ctx.Merge(), table)
}

// CompileEffect looks up a handler matching the effect's kind and the
// caller's held capability set, checks every required capability is
// authorized, and inlines the handler body with the effect's inputs and
// parameters bound — realizing compile_effect(effect, ctx) → L1 term
// (spec.md §4.F).
func CompileEffect(e *Effect, held capability.Set, table *Table) (*l1.Term, error) {
	for _, req := range e.RequiredCaps {
		if err := Require(held, req); err != nil {
			return nil, err
		}
	}

	handler, err := table.lookup(e.Kind, held)
	if err != nil {
		return nil, err
	}

	term := handler.Body
	for i, input := range e.Inputs {
		term = l1.Let(inputName(i), input, term)
	}
	// Parameters is a Go map; its iteration order is randomized, so the
	// names are sorted before nesting Let bindings to keep compilation
	// deterministic (spec.md §8 property 5) regardless of map order.
	names := make([]string, 0, len(e.Parameters))
	for name := range e.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		term = l1.Let(name, e.Parameters[name], term)
	}
	return term, nil
}

func inputName(i int) string { return fmt.Sprintf("input%d", i) }
