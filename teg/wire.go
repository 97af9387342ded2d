// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package teg

import (
	"github.com/timewave-computer/causality/choices"
	"github.com/timewave-computer/causality/codec"
	"github.com/timewave-computer/causality/effect"
	"github.com/timewave-computer/causality/id"
)

// wireVersion is the TEG JSON wire format version (spec.md §6.3).
const wireVersion codec.CodecVersion = codec.CurrentVersion

// jsonEffectNode is the wire form of an EffectNode. The node's Effect
// value is addressed by Label, not serialized structurally — see the
// LabelID design note on Graph — so only the fields that round-trip
// through content-hash-relevant state are carried.
type jsonEffectNode struct {
	ID     id.Id  `json:"id"`
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Domain string `json:"domain"`
	Status uint32 `json:"status"`
}

type jsonResourceNode struct {
	ID    id.Id  `json:"id"`
	Label string `json:"label"`
}

type jsonEdge struct {
	Kind           EdgeKind `json:"kind"`
	From           id.Id    `json:"from"`
	To             id.Id    `json:"to"`
	ConditionLabel string   `json:"conditionLabel,omitempty"`
}

// jsonGraph is the graph's JSON wire form: version, effect nodes,
// resource nodes and edges. It carries no metadata field, and this
// package has no binary encoding of a graph.
type jsonGraph struct {
	Version       codec.CodecVersion `json:"version"`
	EffectNodes   []jsonEffectNode   `json:"effectNodes"`
	ResourceNodes []jsonResourceNode `json:"resourceNodes"`
	Edges         []jsonEdge         `json:"edges"`
}

// ToJSON encodes the graph in the wire format of spec.md §6.3. The
// resulting hash, once reloaded with FromJSON, is identical to g.Hash()
// because node identity is fully determined by label, not by the
// effect/resource payload attached to it.
func (g *Graph) ToJSON() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w := jsonGraph{Version: wireVersion}
	for nid, n := range g.effects {
		kind, domain := "", ""
		if n.Effect != nil {
			kind, domain = n.Effect.Kind, n.Effect.Domain
		}
		w.EffectNodes = append(w.EffectNodes, jsonEffectNode{
			ID: nid, Label: n.Label, Kind: kind, Domain: domain, Status: uint32(n.Status),
		})
	}
	for nid, n := range g.resources {
		w.ResourceNodes = append(w.ResourceNodes, jsonResourceNode{ID: nid, Label: n.Label})
	}
	for _, e := range g.edges {
		w.Edges = append(w.Edges, jsonEdge{
			Kind: e.Kind, From: e.From, To: e.To, ConditionLabel: e.Condition.Label,
		})
	}

	data, err := codec.Codec.Marshal(codec.CurrentVersion, w)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// FromJSON reconstructs a Graph from its wire form. Nodes are
// re-inserted under their original labels, so their Ids (and therefore
// the reconstructed graph's Hash) are unchanged.
func FromJSON(data []byte) (*Graph, error) {
	var w jsonGraph
	if _, err := codec.Codec.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	g := New()
	for _, n := range w.EffectNodes {
		nid := g.AddEffect(n.Label, &effect.Effect{Kind: n.Kind, Domain: n.Domain})
		status := choices.Status(n.Status)
		if status != choices.Unknown {
			if err := g.SetStatus(nid, status); err != nil {
				return nil, err
			}
		}
	}
	for _, n := range w.ResourceNodes {
		g.AddResource(n.Label)
	}
	for _, e := range w.Edges {
		if err := g.Connect(Edge{Kind: e.Kind, From: e.From, To: e.To, Condition: Condition{Label: e.ConditionLabel}}); err != nil {
			return nil, err
		}
	}
	return g, nil
}
