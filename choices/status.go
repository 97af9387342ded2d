// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package choices tracks the lifecycle status of an effect realized
// against a Temporal Effect Graph: scheduled, then either committed
// (its resource operations took effect) or reverted (a constraint or
// capability check failed and it was rolled back).
package choices

// Status is the current disposition of a scheduled effect node.
type Status uint32

const (
	// Unknown means the node has not yet been scheduled.
	Unknown Status = iota

	// Pending means the node is scheduled but not yet resolved —
	// it may still be waiting on Before/After/Concurrent predecessors.
	Pending

	// Reverted means the node's effect failed a constraint or
	// capability check and its resource operations did not take effect.
	Reverted

	// Committed means the node's effect ran and its resource
	// operations took effect.
	Committed
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Pending:
		return "Pending"
	case Reverted:
		return "Reverted"
	case Committed:
		return "Committed"
	default:
		return "Invalid status"
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case Unknown, Pending, Reverted, Committed:
		return true
	default:
		return false
	}
}

// Final reports whether s is a terminal outcome: no further
// transition is possible once an effect is Committed or Reverted.
func (s Status) Final() bool {
	switch s {
	case Committed, Reverted:
		return true
	default:
		return false
	}
}

// Attempted reports whether the node has been scheduled at all,
// as opposed to sitting unreferenced in the graph.
func (s Status) Attempted() bool {
	switch s {
	case Pending, Committed, Reverted:
		return true
	default:
		return false
	}
}
