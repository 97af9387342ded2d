// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package effect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/capability"
	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/l1"
)

func TestCompileEffectUnknownKind(t *testing.T) {
	table := NewTable()
	_, err := CompileEffect(&Effect{Kind: "transfer"}, capability.NewSet(), table)
	require.ErrorIs(t, err, ErrUnknownEffect)
}

// TestScenarioCapabilityRefusal mirrors spec.md §8 Scenario 5: an effect
// requiring WriteField("balance") invoked under a context holding only
// ReadField("balance") fails with MissingCapability.
func TestScenarioCapabilityRefusal(t *testing.T) {
	table := NewTable(Handler{
		Kind: "transfer",
		Caps: capability.NewSet(capability.Capability{Name: "balance", Record: capability.WriteField("balance")}),
		Body: l1.UnitTerm(),
	})
	held := capability.NewSet(capability.Capability{Name: "balance", Record: capability.ReadField("balance")})
	e := &Effect{
		Kind: "transfer",
		RequiredCaps: []capability.Capability{
			{Name: "balance", Record: capability.WriteField("balance")},
		},
	}
	_, err := CompileEffect(e, held, table)
	var missing *capability.MissingCapability
	require.ErrorAs(t, err, &missing)
}

func TestCompileEffectInlinesInputs(t *testing.T) {
	table := NewTable(Handler{
		Kind: "noop",
		Caps: capability.NewSet(),
		Body: l1.Let("input0", l1.Var("input0"), l1.UnitTerm()),
	})
	e := &Effect{
		Kind:   "noop",
		Inputs: []*l1.Term{l1.Literal(l0.Int(1), nil)},
	}
	term, err := CompileEffect(e, capability.NewSet(), table)
	require.NoError(t, err)
	require.Equal(t, l1.KindLet, term.Kind)
}

// TestCompileEffectParametersAreDeterministic guards against the Let
// chain's nesting order depending on Go's randomized map iteration: two
// compilations of an effect with several parameters must produce
// identical terms every time.
func TestCompileEffectParametersAreDeterministic(t *testing.T) {
	table := NewTable(Handler{
		Kind: "noop",
		Caps: capability.NewSet(),
		Body: l1.UnitTerm(),
	})
	e := &Effect{
		Kind: "noop",
		Parameters: map[string]*l1.Term{
			"amount":    l1.Literal(l0.Int(1), nil),
			"recipient": l1.Literal(l0.Int(2), nil),
			"memo":      l1.Literal(l0.Int(3), nil),
		},
	}

	first, err := CompileEffect(e, capability.NewSet(), table)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		term, err := CompileEffect(e, capability.NewSet(), table)
		require.NoError(t, err)
		require.Equal(t, first, term)
	}
}

// TestCompileEffectInContextMergesAmbientAndCallSite mirrors
// causality-core's capability.rs: an effect authorized only by the
// union of ambient and call-site capabilities compiles when both are
// present, and is refused when the context supplies just one half.
func TestCompileEffectInContextMergesAmbientAndCallSite(t *testing.T) {
	table := NewTable(Handler{
		Kind: "transfer",
		Caps: capability.NewSet(
			capability.New("account", capability.Read),
			capability.New("ledger", capability.Write),
		),
		Body: l1.UnitTerm(),
	})
	e := &Effect{
		Kind: "transfer",
		RequiredCaps: []capability.Capability{
			capability.New("account", capability.Read),
			capability.New("ledger", capability.Write),
		},
	}

	ctx := capability.NewContext(
		capability.NewSet(capability.New("account", capability.Read)),
		capability.NewSet(capability.New("ledger", capability.Write)),
	)
	_, err := CompileEffectInContext(e, ctx, table)
	require.NoError(t, err)

	ambientOnly := capability.NewContext(ctx.Ambient, capability.NewSet())
	_, err = CompileEffectInContext(e, ambientOnly, table)
	var missing *capability.MissingCapability
	require.ErrorAs(t, err, &missing)
}

func TestPlanOrdersByConstraint(t *testing.T) {
	intent := &Intent{
		Steps: []Step{
			{Name: "deposit", Effect: &Effect{Kind: "deposit"}},
			{Name: "withdraw", Effect: &Effect{Kind: "withdraw"}},
		},
		Constraints: []Constraint{
			{Relation: Before, A: "deposit", B: "withdraw"},
		},
	}
	effects, err := Plan(intent)
	require.NoError(t, err)
	require.Len(t, effects, 2)
	require.Equal(t, "deposit", effects[0].Kind)
	require.Equal(t, "withdraw", effects[1].Kind)
}

func TestPlanRejectsCycle(t *testing.T) {
	intent := &Intent{
		Steps: []Step{
			{Name: "a", Effect: &Effect{Kind: "a"}},
			{Name: "b", Effect: &Effect{Kind: "b"}},
		},
		Constraints: []Constraint{
			{Relation: Before, A: "a", B: "b"},
			{Relation: Before, A: "b", B: "a"},
		},
	}
	_, err := Plan(intent)
	var unsat *UnsatisfiableIntent
	require.ErrorAs(t, err, &unsat)
}

func TestPlanRejectsUnknownStep(t *testing.T) {
	intent := &Intent{
		Steps:       []Step{{Name: "a", Effect: &Effect{Kind: "a"}}},
		Constraints: []Constraint{{Relation: Before, A: "a", B: "ghost"}},
	}
	_, err := Plan(intent)
	require.Error(t, err)
}
