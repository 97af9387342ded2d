// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package l0 implements the Layer-0 register machine: a small, total,
// ZK-circuit-friendly instruction set whose state is content-addressed.
package l0

import (
	"fmt"

	"github.com/timewave-computer/causality/id"
)

// ValueKind enumerates the shapes a register slot can hold.
type ValueKind uint8

const (
	ValueInt ValueKind = iota
	ValueSym
	ValueUnit
	ValueTensor
	ValueSumLeft
	ValueSumRight
	ValueClosure
	ValueResource
)

// Value is the tagged union of everything a register can hold. Only the
// fields matching Kind are meaningful.
type Value struct {
	Kind ValueKind

	Int int64
	Sym string

	// ValueTensor
	Fst *Value
	Snd *Value

	// ValueSumLeft, ValueSumRight
	Inner *Value

	// ValueClosure
	Closure *Closure

	// ValueResource
	Resource *Resource
}

// Closure is a Layer-0 function value: an entry point into the shared
// instruction sequence plus its captured environment. Register 0 of the
// callee's fresh frame is bound to Env, register 1 to the argument.
type Closure struct {
	EntryPC uint32
	Env     *Value
}

// Resource is a linear value allocated by Alloc and discharged by
// Consume — the only two ways to create or destroy one at L0.
type Resource struct {
	ResourceID id.Id
	Inner      *Value
	// Version is informational versioning metadata (see SPEC_FULL.md
	// §11, "Resource versioning metadata"). It never participates in
	// ResourceID's canonical bytes.
	Version uint64
}

// Int constructs an integer value.
func Int(v int64) *Value { return &Value{Kind: ValueInt, Int: v} }

// Sym constructs a symbol value.
func Sym(s string) *Value { return &Value{Kind: ValueSym, Sym: s} }

// UnitVal is the single unit value.
func UnitVal() *Value { return &Value{Kind: ValueUnit} }

// PairVal constructs a tensor (pair) value.
func PairVal(fst, snd *Value) *Value { return &Value{Kind: ValueTensor, Fst: fst, Snd: snd} }

// InlVal constructs a left sum injection.
func InlVal(v *Value) *Value { return &Value{Kind: ValueSumLeft, Inner: v} }

// InrVal constructs a right sum injection.
func InrVal(v *Value) *Value { return &Value{Kind: ValueSumRight, Inner: v} }

// ClosureVal constructs a closure value.
func ClosureVal(entryPC uint32, env *Value) *Value {
	return &Value{Kind: ValueClosure, Closure: &Closure{EntryPC: entryPC, Env: env}}
}

// ResourceVal wraps a Resource as a register value.
func ResourceVal(r *Resource) *Value { return &Value{Kind: ValueResource, Resource: r} }

// CanonicalBytes renders the value in the fixed canonical serialization
// described in spec.md §6.2: little-endian fixed widths, 8-bit enum
// discriminators, 64-bit length prefixes for variable-length data.
func (v *Value) CanonicalBytes() []byte {
	if v == nil {
		return []byte{0xFF}
	}
	buf := []byte{byte(v.Kind)}
	switch v.Kind {
	case ValueInt:
		var b [8]byte
		putInt64LE(b[:], v.Int)
		buf = append(buf, b[:]...)
	case ValueSym:
		buf = id.EncodeLenPrefixed(buf, []byte(v.Sym))
	case ValueUnit:
		// no payload
	case ValueTensor:
		buf = id.EncodeLenPrefixed(buf, v.Fst.CanonicalBytes())
		buf = id.EncodeLenPrefixed(buf, v.Snd.CanonicalBytes())
	case ValueSumLeft, ValueSumRight:
		buf = id.EncodeLenPrefixed(buf, v.Inner.CanonicalBytes())
	case ValueClosure:
		var b [4]byte
		putUint32LE(b[:], v.Closure.EntryPC)
		buf = append(buf, b[:]...)
		buf = id.EncodeLenPrefixed(buf, v.Closure.Env.CanonicalBytes())
	case ValueResource:
		buf = append(buf, v.Resource.ResourceID.Bytes()...)
		buf = id.EncodeLenPrefixed(buf, v.Resource.Inner.CanonicalBytes())
	}
	return buf
}

// Id computes the content address of the value.
func (v *Value) Id() id.Id { return id.Hash(v.CanonicalBytes()) }

func (v *Value) String() string {
	if v == nil {
		return "<empty>"
	}
	switch v.Kind {
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueSym:
		return v.Sym
	case ValueUnit:
		return "()"
	case ValueTensor:
		return fmt.Sprintf("(%s, %s)", v.Fst, v.Snd)
	case ValueSumLeft:
		return fmt.Sprintf("inl(%s)", v.Inner)
	case ValueSumRight:
		return fmt.Sprintf("inr(%s)", v.Inner)
	case ValueClosure:
		return fmt.Sprintf("<closure@%d>", v.Closure.EntryPC)
	case ValueResource:
		return fmt.Sprintf("<resource %s>", v.Resource.ResourceID)
	default:
		return "?"
	}
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putInt64LE(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}
