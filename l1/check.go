// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l1

import (
	"fmt"

	"github.com/timewave-computer/causality/linear"
)

// Check type-checks term against ctx, ties to package linear's
// substructural discipline (spec.md §4.C, §4.D), and returns its type.
// On success every linear binding introduced within term has been
// consumed exactly once.
func Check(term *Term, ctx *linear.Context) (*linear.Type, error) {
	switch term.Kind {
	case KindVar:
		t, err := ctx.Use(term.Name)
		if err != nil {
			return nil, err
		}
		return t, nil

	case KindLiteral:
		return term.LitType, nil

	case KindUnit:
		return linear.Unit(), nil

	case KindLambda:
		ctx.Bind(term.Param, term.ParamType)
		bodyType, err := Check(term.Body, ctx)
		if err != nil {
			return nil, err
		}
		if err := checkClosedScope(ctx, term.Param); err != nil {
			return nil, err
		}
		ctx.Unbind(term.Param)
		return linear.Arrow(term.ParamType, bodyType), nil

	case KindApply:
		fnType, err := Check(term.Fn, ctx)
		if err != nil {
			return nil, err
		}
		if fnType.Kind != linear.KindArrow {
			return nil, &linear.TypeMismatchError{Expected: linear.Arrow(linear.Base("_"), linear.Base("_")), Actual: fnType}
		}
		argType, err := Check(term.Arg, ctx)
		if err != nil {
			return nil, err
		}
		if !argType.Equal(fnType.Left) {
			return nil, &linear.TypeMismatchError{Expected: fnType.Left, Actual: argType}
		}
		return fnType.Right, nil

	case KindLet:
		valType, err := Check(term.Value, ctx)
		if err != nil {
			return nil, err
		}
		ctx.Bind(term.Name, valType)
		bodyType, err := Check(term.Body, ctx)
		if err != nil {
			return nil, err
		}
		if err := checkClosedScope(ctx, term.Name); err != nil {
			return nil, err
		}
		ctx.Unbind(term.Name)
		return bodyType, nil

	case KindTensor:
		fstType, err := Check(term.Fst, ctx)
		if err != nil {
			return nil, err
		}
		sndType, err := Check(term.Snd, ctx)
		if err != nil {
			return nil, err
		}
		return linear.Tensor(fstType, sndType), nil

	case KindLetTensor:
		valType, err := Check(term.Value, ctx)
		if err != nil {
			return nil, err
		}
		if valType.Kind != linear.KindTensor {
			return nil, &linear.TypeMismatchError{Expected: linear.Tensor(linear.Base("_"), linear.Base("_")), Actual: valType}
		}
		ctx.Bind(term.FstName, valType.Left)
		ctx.Bind(term.SndName, valType.Right)
		bodyType, err := Check(term.Body, ctx)
		if err != nil {
			return nil, err
		}
		if err := checkClosedScope(ctx, term.FstName, term.SndName); err != nil {
			return nil, err
		}
		ctx.Unbind(term.FstName)
		ctx.Unbind(term.SndName)
		return bodyType, nil

	case KindInl:
		leftType, err := Check(term.Inner, ctx)
		if err != nil {
			return nil, err
		}
		return linear.Sum(leftType, term.OtherType), nil

	case KindInr:
		rightType, err := Check(term.Inner, ctx)
		if err != nil {
			return nil, err
		}
		return linear.Sum(term.OtherType, rightType), nil

	case KindCase:
		sumType, err := Check(term.Scrutinee, ctx)
		if err != nil {
			return nil, err
		}
		if sumType.Kind != linear.KindSum {
			return nil, &linear.TypeMismatchError{Expected: linear.Sum(linear.Base("_"), linear.Base("_")), Actual: sumType}
		}

		snap := ctx.Snapshot()
		ctx.Bind(term.LeftName, sumType.Left)
		leftType, err := Check(term.LeftBody, ctx)
		if err != nil {
			return nil, err
		}
		if err := checkClosedScope(ctx, term.LeftName); err != nil {
			return nil, err
		}
		ctx.Unbind(term.LeftName)
		leftSnap := ctx.Snapshot()

		ctx.Restore(snap)
		ctx.Bind(term.RightName, sumType.Right)
		rightType, err := Check(term.RightBody, ctx)
		if err != nil {
			return nil, err
		}
		if err := checkClosedScope(ctx, term.RightName); err != nil {
			return nil, err
		}
		ctx.Unbind(term.RightName)

		if !leftType.Equal(rightType) {
			return nil, &linear.TypeMismatchError{Expected: leftType, Actual: rightType}
		}
		if !sameConsumption(leftSnap, ctx.Snapshot()) {
			return nil, fmt.Errorf("l1: case branches consume different outer bindings")
		}
		return leftType, nil

	case KindAlloc:
		innerType, err := Check(term.Inner, ctx)
		if err != nil {
			return nil, err
		}
		return linear.Base("Resource<" + innerType.String() + ">"), nil

	case KindConsume:
		resType, err := Check(term.Inner, ctx)
		if err != nil {
			return nil, err
		}
		return resType, nil

	default:
		return nil, fmt.Errorf("l1: unknown term kind %d", term.Kind)
	}
}

// checkClosedScope verifies that every one of the just-closed names has
// been consumed, independent of CheckClosed's full-context view (used
// for Lambda/Let/LetTensor/Case bodies where only the freshly bound
// names must be fully discharged at this point; outer context may still
// be open if the caller hasn't reached its own close yet).
func checkClosedScope(ctx *linear.Context, names ...string) error {
	for _, name := range names {
		typ, ok := ctx.Lookup(name)
		if !ok {
			continue
		}
		if !typ.IsLinear() {
			continue
		}
		if containsUnused(ctx, name) {
			return &linear.LinearityViolation{Name: name, Kind: linear.Unused}
		}
	}
	return nil
}

func containsUnused(ctx *linear.Context, name string) bool {
	for _, n := range ctx.UnusedLinear() {
		if n == name {
			return true
		}
	}
	return false
}

func sameConsumption(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
