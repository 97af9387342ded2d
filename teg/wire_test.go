// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package teg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/choices"
	"github.com/timewave-computer/causality/effect"
)

func TestJSONRoundTripPreservesHash(t *testing.T) {
	g := New()
	deposit := g.AddEffect("deposit", &effect.Effect{Kind: "deposit", Domain: "bank"})
	withdraw := g.AddEffect("withdraw", &effect.Effect{Kind: "withdraw", Domain: "bank"})
	require.NoError(t, g.Connect(Edge{Kind: EdgeContinuation, From: deposit, To: withdraw}))
	require.NoError(t, g.SetStatus(deposit, choices.Committed))

	data, err := g.ToJSON()
	require.NoError(t, err)

	g2, err := FromJSON(data)
	require.NoError(t, err)

	require.Equal(t, g.Hash(), g2.Hash())
	n, ok := g2.Effect(deposit)
	require.True(t, ok)
	require.Equal(t, choices.Committed, n.Status)
}

func TestFromJSONRejectsUnknownEdgeEndpoint(t *testing.T) {
	_, err := FromJSON([]byte(`{"version":0,"effectNodes":[],"resourceNodes":[],"edges":[{"kind":0,"from":"` +
		LabelID("ghost-a").String() + `","to":"` + LabelID("ghost-b").String() + `"}]}`))
	require.Error(t, err)
}
