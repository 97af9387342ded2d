// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l0

// RegisterFile is a mapping from register index to an optional value
// slot. An occupied slot holds exactly one value; an empty slot holds
// nil. Each call frame owns an independent RegisterFile so that a
// closure's local register numbering never collides with its caller's.
type RegisterFile struct {
	slots map[Register]*Value
}

// NewRegisterFile constructs an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{slots: make(map[Register]*Value)}
}

// Set occupies a register with a value, regardless of prior occupancy
// (the caller is responsible for only writing to registers the type
// discipline allows).
func (r *RegisterFile) Set(reg Register, v *Value) {
	r.slots[reg] = v
}

// Take reads and empties a register in one step, matching the "Move"
// and "consume" discipline: reading a linear value removes it from its
// register. Returns ErrRegisterEmpty if the slot holds nothing.
func (r *RegisterFile) Take(reg Register) (*Value, error) {
	v, ok := r.slots[reg]
	if !ok || v == nil {
		return nil, ErrRegisterEmpty
	}
	delete(r.slots, reg)
	return v, nil
}

// Peek reads a register's value without emptying it. Used only where
// the spec explicitly allows non-consuming reads (none of the L0
// opcodes do; kept for diagnostics and tests).
func (r *RegisterFile) Peek(reg Register) (*Value, bool) {
	v, ok := r.slots[reg]
	return v, ok && v != nil
}

// Occupied reports whether a register currently holds a value.
func (r *RegisterFile) Occupied(reg Register) bool {
	v, ok := r.slots[reg]
	return ok && v != nil
}

// Snapshot returns a copy of the register file's contents, mapping each
// register to the value it holds.
func (r *RegisterFile) Snapshot() map[Register]*Value {
	out := make(map[Register]*Value, len(r.slots))
	for k, v := range r.slots {
		out[k] = v
	}
	return out
}
