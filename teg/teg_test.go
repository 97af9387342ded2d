// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package teg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/choices"
	"github.com/timewave-computer/causality/effect"
	"github.com/timewave-computer/causality/id"
)

func TestAddEffectAndConnectContinuation(t *testing.T) {
	g := New()
	deposit := g.AddEffect("deposit", &effect.Effect{Kind: "deposit", Domain: "bank"})
	withdraw := g.AddEffect("withdraw", &effect.Effect{Kind: "withdraw", Domain: "bank"})

	err := g.Connect(Edge{Kind: EdgeContinuation, From: deposit, To: withdraw})
	require.NoError(t, err)
	require.Equal(t, []id.Id{withdraw}, g.Successors(deposit))
}

func TestFrontierExcludesNodesWithOutgoingEdges(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})
	b := g.AddEffect("b", &effect.Effect{Kind: "b"})
	require.NoError(t, g.Connect(Edge{Kind: EdgeContinuation, From: a, To: b}))

	frontier := g.Frontier()
	require.Len(t, frontier, 1)
	require.Equal(t, b, frontier[0])
}

func TestConnectRejectsCycle(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})
	b := g.AddEffect("b", &effect.Effect{Kind: "b"})
	require.NoError(t, g.Connect(Edge{Kind: EdgeDependency, From: a, To: b}))

	err := g.Connect(Edge{Kind: EdgeDependency, From: b, To: a})
	var cyc *ErrCycle
	require.ErrorAs(t, err, &cyc)
}

func TestConnectRejectsUnknownNode(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})
	err := g.Connect(Edge{Kind: EdgeContinuation, From: a, To: LabelID("ghost")})
	var unk *ErrUnknownNode
	require.ErrorAs(t, err, &unk)
}

func TestSubgraphExtractsReachableNodes(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})
	b := g.AddEffect("b", &effect.Effect{Kind: "b"})
	c := g.AddEffect("c", &effect.Effect{Kind: "c"})
	require.NoError(t, g.Connect(Edge{Kind: EdgeContinuation, From: a, To: b}))
	require.NoError(t, g.Connect(Edge{Kind: EdgeContinuation, From: b, To: c}))

	sub, err := g.Subgraph([]id.Id{a})
	require.NoError(t, err)
	_, ok := sub.Effect(c)
	require.True(t, ok)
}

func TestHashStableUnderInsertionOrder(t *testing.T) {
	g1 := New()
	a1 := g1.AddEffect("a", &effect.Effect{Kind: "a"})
	b1 := g1.AddEffect("b", &effect.Effect{Kind: "b"})
	require.NoError(t, g1.Connect(Edge{Kind: EdgeContinuation, From: a1, To: b1}))

	g2 := New()
	b2 := g2.AddEffect("b", &effect.Effect{Kind: "b"})
	a2 := g2.AddEffect("a", &effect.Effect{Kind: "a"})
	require.NoError(t, g2.Connect(Edge{Kind: EdgeContinuation, From: a2, To: b2}))

	require.Equal(t, g1.Hash(), g2.Hash())
}

func TestDiffReportsAddedAndRemoved(t *testing.T) {
	a := New()
	a.AddEffect("x", &effect.Effect{Kind: "x"})

	b := New()
	b.AddEffect("y", &effect.Effect{Kind: "y"})

	added, removed := Diff(a, b)
	require.Equal(t, []id.Id{LabelID("y")}, added)
	require.Equal(t, []id.Id{LabelID("x")}, removed)
}

func TestSetStatusTransitionsAndRejectsAfterFinal(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})

	n, _ := g.Effect(a)
	require.Equal(t, choices.Unknown, n.Status)

	require.NoError(t, g.SetStatus(a, choices.Pending))
	require.NoError(t, g.SetStatus(a, choices.Committed))

	n, _ = g.Effect(a)
	require.Equal(t, choices.Committed, n.Status)
	require.True(t, n.Status.Final())

	err := g.SetStatus(a, choices.Reverted)
	var fin *ErrFinalStatus
	require.ErrorAs(t, err, &fin)
}

func TestTxnRollbackRestoresGraph(t *testing.T) {
	g := New()
	a := g.AddEffect("a", &effect.Effect{Kind: "a"})

	tx := g.Begin()
	tx.Graph().AddEffect("b", &effect.Effect{Kind: "b"})
	tx.Rollback()

	_, ok := g.Effect(LabelID("b"))
	require.False(t, ok)
	_, ok = g.Effect(a)
	require.True(t, ok)
}
