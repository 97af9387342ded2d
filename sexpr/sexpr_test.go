// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/l1"
	"github.com/timewave-computer/causality/linear"
)

func TestParseAtoms(t *testing.T) {
	sym, err := Parse("foo?")
	require.NoError(t, err)
	require.Equal(t, KindSymbol, sym.Kind)
	require.Equal(t, "foo?", sym.Symbol)

	n, err := Parse("42")
	require.NoError(t, err)
	require.Equal(t, KindInteger, n.Kind)
	require.Equal(t, uint64(42), n.Integer)

	b, err := Parse("#t")
	require.NoError(t, err)
	require.Equal(t, KindBoolean, b.Kind)
	require.True(t, b.Boolean)

	n2, err := Parse("nil")
	require.NoError(t, err)
	require.Equal(t, KindNil, n2.Kind)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := Parse("(lambda (x Int) x")
	require.Error(t, err)

	_, err = Parse("(foo))")
	require.Error(t, err)
}

func TestParseNestedList(t *testing.T) {
	e, err := Parse("(apply (lambda (x Int) x) 7)")
	require.NoError(t, err)
	require.Equal(t, KindList, e.Kind)
	require.Len(t, e.Items, 3)
}

func TestLowerIdentityApplyCompilesAndExecutes(t *testing.T) {
	e, err := Parse("(apply (lambda (x Int) x) 7)")
	require.NoError(t, err)
	term, err := Lower(e)
	require.NoError(t, err)

	program, err := l1.Compile(term, linear.NewContext())
	require.NoError(t, err)
	witness := l0.NewSliceWitnessSource(program.WitnessTable)
	result, err := l0.Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Result.Int)
}

func TestLowerLetAndTensor(t *testing.T) {
	e, err := Parse("(let x 3 (tensor x 4))")
	require.NoError(t, err)
	term, err := Lower(e)
	require.NoError(t, err)
	require.Equal(t, l1.KindLet, term.Kind)
	require.Equal(t, l1.KindTensor, term.Body.Kind)
}

func TestLowerCase(t *testing.T) {
	e, err := Parse("(case (inl 1 Int) (x x) (y y))")
	require.NoError(t, err)
	term, err := Lower(e)
	require.NoError(t, err)

	v, err := l1.Eval(term, map[string]*l1.Value{})
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Base.Int)
}

func TestLowerBindSequencesApplication(t *testing.T) {
	e, err := Parse("(bind 5 (lambda (x (bang Int)) (tensor x x)))")
	require.NoError(t, err)
	term, err := Lower(e)
	require.NoError(t, err)
	require.Equal(t, l1.KindApply, term.Kind)
}

func TestLowerCurriedApplication(t *testing.T) {
	e, err := Parse("(f a b)")
	require.NoError(t, err)
	term, err := Lower(e)
	require.NoError(t, err)
	require.Equal(t, l1.KindApply, term.Kind)
	require.Equal(t, l1.KindApply, term.Fn.Kind)
	require.Equal(t, "f", term.Fn.Fn.Name)
}

func TestLowerUnknownReservedNestingRejectsBadArity(t *testing.T) {
	e, err := Parse("(tensor 1)")
	require.NoError(t, err)
	_, err = Lower(e)
	var arity *InvalidArity
	require.ErrorAs(t, err, &arity)
}

func TestLowerBadLambdaBinderRejected(t *testing.T) {
	e, err := Parse("(lambda x x)")
	require.NoError(t, err)
	_, err = Lower(e)
	var param *InvalidParameter
	require.ErrorAs(t, err, &param)
}

func TestLowerUnknownTypeOperator(t *testing.T) {
	e, err := Parse("(lambda (x (weird Int)) x)")
	require.NoError(t, err)
	_, err = Lower(e)
	var unk *UnknownSymbol
	require.ErrorAs(t, err, &unk)
}
