// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package linear implements the substructural type system shared by the
// Layer-1 lambda core and the Layer-2 effect algebra: base types, tensor
// ⊗, sum ⊕, arrow ⊸, unit, the explicit non-linear modality !A, and the
// session-type fragment.
package linear

import "fmt"

// Kind enumerates the syntactic shape of a Type.
type Kind uint8

const (
	KindBase Kind = iota
	KindUnit
	KindTensor
	KindSum
	KindArrow
	KindBang // !A, explicit non-linear
	KindSession
)

// Type is a linear type as described in spec.md §3.4. Only the fields
// relevant to Kind are populated.
type Type struct {
	Kind Kind

	// KindBase
	BaseName string

	// KindTensor, KindSum, KindArrow: Left/Right operands
	Left  *Type
	Right *Type

	// KindBang
	Inner *Type

	// KindSession
	Session *SessionType
}

// Base constructs a named base type, e.g. Int, Sym.
func Base(name string) *Type { return &Type{Kind: KindBase, BaseName: name} }

// Unit is the linear unit type 1.
func Unit() *Type { return &Type{Kind: KindUnit} }

// Tensor constructs A ⊗ B.
func Tensor(a, b *Type) *Type { return &Type{Kind: KindTensor, Left: a, Right: b} }

// Sum constructs A ⊕ B.
func Sum(a, b *Type) *Type { return &Type{Kind: KindSum, Left: a, Right: b} }

// Arrow constructs A ⊸ B, the linear function type.
func Arrow(a, b *Type) *Type { return &Type{Kind: KindArrow, Left: a, Right: b} }

// Bang constructs !A, marking A as explicitly non-linear (freely
// duplicable and droppable).
func Bang(a *Type) *Type { return &Type{Kind: KindBang, Inner: a} }

// OfSession wraps a session type as a linear Type (a channel endpoint).
func OfSession(s *SessionType) *Type { return &Type{Kind: KindSession, Session: s} }

// IsLinear reports whether values of this type must be consumed exactly
// once. Only the !A modality is non-linear; everything else (including
// session-typed channels) is linear.
func (t *Type) IsLinear() bool {
	return t.Kind != KindBang
}

// Equal performs structural equality, the basis for TypeMismatch checks.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindBase:
		return t.BaseName == other.BaseName
	case KindUnit:
		return true
	case KindTensor, KindSum, KindArrow:
		return t.Left.Equal(other.Left) && t.Right.Equal(other.Right)
	case KindBang:
		return t.Inner.Equal(other.Inner)
	case KindSession:
		return t.Session.Equal(other.Session)
	default:
		return false
	}
}

// String renders the type using the spec's mathematical notation.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindBase:
		return t.BaseName
	case KindUnit:
		return "1"
	case KindTensor:
		return fmt.Sprintf("(%s ⊗ %s)", t.Left, t.Right)
	case KindSum:
		return fmt.Sprintf("(%s ⊕ %s)", t.Left, t.Right)
	case KindArrow:
		return fmt.Sprintf("(%s ⊸ %s)", t.Left, t.Right)
	case KindBang:
		return fmt.Sprintf("!%s", t.Inner)
	case KindSession:
		return t.Session.String()
	default:
		return "?"
	}
}
