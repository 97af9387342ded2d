// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package effect

import (
	"fmt"
	"sort"
)

// TemporalRelation names an ordering constraint between two candidate
// effects within an Intent, reusing the TEG's own constraint
// vocabulary (spec.md §3.7: "Before | After | Concurrent | …").
type TemporalRelation uint8

const (
	Before TemporalRelation = iota
	After
	Concurrent
)

// Constraint orders two of an Intent's named candidate steps.
type Constraint struct {
	Relation TemporalRelation
	A, B     string // step names
}

// Step is one candidate effect an Intent may include in its plan, named
// so Constraints can reference it.
type Step struct {
	Name   string
	Effect *Effect
}

// Intent is the declarative statement of spec.md §3.5: a set of
// candidate steps plus ordering constraints among them. Planning
// orders every step so that all constraints are satisfied; no step is
// dropped.
type Intent struct {
	Steps       []Step
	Constraints []Constraint
}

// UnsatisfiableIntent reports why planning failed.
type UnsatisfiableIntent struct {
	Reason string
}

func (e *UnsatisfiableIntent) Error() string {
	return fmt.Sprintf("effect: unsatisfiable intent: %s", e.Reason)
}

// Plan realizes plan(intent) → []effect (spec.md §4.F): a deterministic,
// total function that topologically orders intent.Steps subject to its
// Before/After constraints, or fails with UnsatisfiableIntent if the
// constraints are cyclic or reference an unknown step. Concurrent
// constraints impose no ordering and are used only for validation that
// both named steps exist.
func Plan(intent *Intent) ([]*Effect, error) {
	index := make(map[string]int, len(intent.Steps))
	for i, s := range intent.Steps {
		if _, dup := index[s.Name]; dup {
			return nil, &UnsatisfiableIntent{Reason: fmt.Sprintf("duplicate step name %q", s.Name)}
		}
		index[s.Name] = i
	}

	after := make(map[int]map[int]bool, len(intent.Steps)) // after[i][j]: i must come after j
	for i := range intent.Steps {
		after[i] = map[int]bool{}
	}
	for _, c := range intent.Constraints {
		ai, ok := index[c.A]
		if !ok {
			return nil, &UnsatisfiableIntent{Reason: fmt.Sprintf("constraint references unknown step %q", c.A)}
		}
		bi, ok := index[c.B]
		if !ok {
			return nil, &UnsatisfiableIntent{Reason: fmt.Sprintf("constraint references unknown step %q", c.B)}
		}
		switch c.Relation {
		case Before:
			after[bi][ai] = true
		case After:
			after[ai][bi] = true
		case Concurrent:
			// no ordering obligation
		}
	}

	order, err := topoSort(len(intent.Steps), after)
	if err != nil {
		return nil, err
	}

	effects := make([]*Effect, len(order))
	for i, idx := range order {
		effects[i] = intent.Steps[idx].Effect
	}
	return effects, nil
}

// topoSort returns a deterministic (index-order-tiebroken) topological
// ordering of [0,n) where after[i][j] means i must follow j.
func topoSort(n int, after map[int]map[int]bool) ([]int, error) {
	visited := make([]uint8, n) // 0 unvisited, 1 in-progress, 2 done
	var order []int

	var visit func(i int) error
	visit = func(i int) error {
		switch visited[i] {
		case 2:
			return nil
		case 1:
			return &UnsatisfiableIntent{Reason: "cyclic ordering constraint"}
		}
		visited[i] = 1
		deps := make([]int, 0, len(after[i]))
		for j := range after[i] {
			deps = append(deps, j)
		}
		sort.Ints(deps)
		for _, j := range deps {
			if err := visit(j); err != nil {
				return err
			}
		}
		visited[i] = 2
		order = append(order, i)
		return nil
	}

	for i := 0; i < n; i++ {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}
