// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/linear"
)

func intT() *linear.Type { return linear.Base("Int") }

func TestCheckLinearConsumedOnce(t *testing.T) {
	term := Let("x", Literal(l0.Int(3), intT()), Var("x"))
	typ, err := Check(term, linear.NewContext())
	require.NoError(t, err)
	require.True(t, typ.Equal(intT()))
}

func TestCheckUnusedLinearParam(t *testing.T) {
	term := Lambda("x", intT(), UnitTerm())
	_, err := Check(term, linear.NewContext())
	var violation *linear.LinearityViolation
	require.ErrorAs(t, err, &violation)
	require.Equal(t, linear.Unused, violation.Kind)
}

func TestCheckDuplicatedLinearVar(t *testing.T) {
	term := Lambda("x", intT(), Tensor(Var("x"), Var("x")))
	_, err := Check(term, linear.NewContext())
	var violation *linear.LinearityViolation
	require.ErrorAs(t, err, &violation)
	require.Equal(t, linear.Duplicated, violation.Kind)
}

func TestCheckBangAllowsReuse(t *testing.T) {
	term := Lambda("x", linear.Bang(intT()), Tensor(Var("x"), Var("x")))
	typ, err := Check(term, linear.NewContext())
	require.NoError(t, err)
	require.Equal(t, linear.KindArrow, typ.Kind)
}

func TestCheckCaseBranchesMustAgreeOnOuterConsumption(t *testing.T) {
	// case (inl 1 : Int+Int) of inl x => x | inr y => y, with both
	// branches consuming their own bound variable exactly once and no
	// outer linear variables: should type-check.
	scrutinee := Inl(Literal(l0.Int(1), intT()), intT())
	term := Case(scrutinee, "x", Var("x"), "y", Var("y"))
	typ, err := Check(term, linear.NewContext())
	require.NoError(t, err)
	require.True(t, typ.Equal(intT()))
}

// TestCompileIdentityApply builds (lambda x . x) applied to the literal
// 7, compiles to Layer-0, and executes it end to end.
func TestCompileIdentityApply(t *testing.T) {
	identity := Lambda("x", intT(), Var("x"))
	app := Apply(identity, Literal(l0.Int(7), intT()))

	program, err := Compile(app, linear.NewContext())
	require.NoError(t, err)

	witness := l0.NewSliceWitnessSource(program.WitnessTable)
	result, err := l0.Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Result.Int)
}

// TestCompileAllocConsume builds alloc(9) then consume(it), compiles,
// and executes it end to end.
func TestCompileAllocConsume(t *testing.T) {
	term := Consume(Alloc(Literal(l0.Int(9), intT())))
	program, err := Compile(term, linear.NewContext())
	require.NoError(t, err)

	witness := l0.NewSliceWitnessSource(program.WitnessTable)
	result, err := l0.Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.Equal(t, int64(9), result.Result.Int)
}

func TestCompileRejectsCapturingLambda(t *testing.T) {
	term := Let("y", Literal(l0.Int(1), intT()),
		Lambda("x", linear.Bang(intT()), Tensor(Var("x"), Var("y"))))
	_, err := Compile(term, linear.NewContext())
	require.ErrorIs(t, err, ErrUnsupportedCapture)
}

func TestEvalIdentityApply(t *testing.T) {
	identity := Lambda("x", intT(), Var("x"))
	app := Apply(identity, Literal(l0.Int(42), intT()))

	v, err := Eval(app, map[string]*Value{})
	require.NoError(t, err)
	require.Equal(t, int64(42), v.Base.Int)
}

func TestEvalCase(t *testing.T) {
	scrutinee := Inr(Literal(l0.Int(5), intT()), intT())
	term := Case(scrutinee, "x", Var("x"), "y", Var("y"))
	v, err := Eval(term, map[string]*Value{})
	require.NoError(t, err)
	require.Equal(t, int64(5), v.Base.Int)
}
