// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package l1 implements the Layer-1 lambda core: linearly-typed terms,
// a type checker tied to package linear, a deterministic compiler down
// to the Layer-0 instruction set, and a call-by-value interpreter used
// for debugging (never for compiled-program correctness).
package l1

import (
	"fmt"

	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/linear"
)

// Kind enumerates the Layer-1 term grammar of spec.md §3.4.
type Kind uint8

const (
	KindVar Kind = iota
	KindLiteral
	KindUnit
	KindLambda
	KindApply
	KindLet
	KindTensor
	KindLetTensor
	KindInl
	KindInr
	KindCase
	KindAlloc
	KindConsume
)

// Term is a Layer-1 term. Only the fields relevant to Kind are
// populated. Each constructor carries its own linear type annotation
// where the type cannot be inferred from its subterms alone (Literal,
// Lambda's parameter, Inl/Inr's "other side" type).
type Term struct {
	Kind Kind

	// KindVar
	Name string

	// KindLiteral
	LitValue *l0.Value
	LitType  *linear.Type

	// KindLambda: Param/ParamType/Body
	Param     string
	ParamType *linear.Type
	Body      *Term

	// KindApply: Fn/Arg
	Fn  *Term
	Arg *Term

	// KindLet: Name/Value/Body (Name reused from above)
	Value *Term

	// KindTensor: Fst/Snd
	Fst *Term
	Snd *Term

	// KindLetTensor: FstName/SndName/Value/Body
	FstName string
	SndName string

	// KindInl: Inner, RightType (the sum's un-constructed side)
	// KindInr: Inner, LeftType
	Inner     *Term
	OtherType *linear.Type

	// KindCase: Scrutinee/LeftName/LeftBody/RightName/RightBody
	Scrutinee *Term
	LeftName  string
	LeftBody  *Term
	RightName string
	RightBody *Term

	// KindAlloc, KindConsume: Inner reused from above
}

func Var(name string) *Term { return &Term{Kind: KindVar, Name: name} }

func Literal(v *l0.Value, t *linear.Type) *Term {
	return &Term{Kind: KindLiteral, LitValue: v, LitType: t}
}

func UnitTerm() *Term { return &Term{Kind: KindUnit} }

func Lambda(param string, paramType *linear.Type, body *Term) *Term {
	return &Term{Kind: KindLambda, Param: param, ParamType: paramType, Body: body}
}

func Apply(fn, arg *Term) *Term { return &Term{Kind: KindApply, Fn: fn, Arg: arg} }

func Let(name string, value, body *Term) *Term {
	return &Term{Kind: KindLet, Name: name, Value: value, Body: body}
}

func Tensor(fst, snd *Term) *Term { return &Term{Kind: KindTensor, Fst: fst, Snd: snd} }

func LetTensor(fstName, sndName string, value, body *Term) *Term {
	return &Term{Kind: KindLetTensor, FstName: fstName, SndName: sndName, Value: value, Body: body}
}

// Inl constructs the left injection into a sum whose right side has
// type rightType (needed since the sum's full type cannot be inferred
// from the left branch alone).
func Inl(inner *Term, rightType *linear.Type) *Term {
	return &Term{Kind: KindInl, Inner: inner, OtherType: rightType}
}

// Inr constructs the right injection into a sum whose left side has
// type leftType.
func Inr(inner *Term, leftType *linear.Type) *Term {
	return &Term{Kind: KindInr, Inner: inner, OtherType: leftType}
}

func Case(scrutinee *Term, leftName string, leftBody *Term, rightName string, rightBody *Term) *Term {
	return &Term{Kind: KindCase, Scrutinee: scrutinee, LeftName: leftName, LeftBody: leftBody, RightName: rightName, RightBody: rightBody}
}

func Alloc(inner *Term) *Term   { return &Term{Kind: KindAlloc, Inner: inner} }
func Consume(inner *Term) *Term { return &Term{Kind: KindConsume, Inner: inner} }

func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindVar:
		return t.Name
	case KindLiteral:
		return t.LitValue.String()
	case KindUnit:
		return "()"
	case KindLambda:
		return fmt.Sprintf("(lambda (%s : %s) %s)", t.Param, t.ParamType, t.Body)
	case KindApply:
		return fmt.Sprintf("(%s %s)", t.Fn, t.Arg)
	case KindLet:
		return fmt.Sprintf("(let %s = %s in %s)", t.Name, t.Value, t.Body)
	case KindTensor:
		return fmt.Sprintf("(%s ⊗ %s)", t.Fst, t.Snd)
	case KindLetTensor:
		return fmt.Sprintf("(let (%s, %s) = %s in %s)", t.FstName, t.SndName, t.Value, t.Body)
	case KindInl:
		return fmt.Sprintf("inl(%s)", t.Inner)
	case KindInr:
		return fmt.Sprintf("inr(%s)", t.Inner)
	case KindCase:
		return fmt.Sprintf("(case %s of inl %s => %s | inr %s => %s)", t.Scrutinee, t.LeftName, t.LeftBody, t.RightName, t.RightBody)
	case KindAlloc:
		return fmt.Sprintf("alloc(%s)", t.Inner)
	case KindConsume:
		return fmt.Sprintf("consume(%s)", t.Inner)
	default:
		return "?"
	}
}
