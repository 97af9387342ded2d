// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package teg

import (
	"sort"

	"github.com/timewave-computer/causality/id"
)

// Subgraph extracts the graph reachable from roots by following
// continuation and dependency edges, returning an independent Graph
// containing exactly the visited nodes and the edges between them.
func (g *Graph) Subgraph(roots []id.Id) (*Graph, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, r := range roots {
		if !g.hasNode(r) {
			return nil, &ErrUnknownNode{ID: r}
		}
	}

	visited := make(map[id.Id]bool)
	stack := append([]id.Id(nil), roots...)
	for _, r := range roots {
		visited[r] = true
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.edges {
			if e.From != n || (e.Kind != EdgeContinuation && e.Kind != EdgeDependency) {
				continue
			}
			if !visited[e.To] {
				visited[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}

	out := New()
	for nid := range visited {
		if n, ok := g.effects[nid]; ok {
			out.effects[nid] = &EffectNode{ID: n.ID, Label: n.Label, Effect: n.Effect, Status: n.Status}
			out.hasOut[nid] = 0
		}
		if n, ok := g.resources[nid]; ok {
			out.resources[nid] = &ResourceNode{ID: n.ID, Label: n.Label}
			out.hasOut[nid] = 0
		}
	}
	for _, e := range g.edges {
		if visited[e.From] && visited[e.To] {
			out.edges = append(out.edges, e)
			if e.Kind == EdgeContinuation || e.Kind == EdgeDependency {
				out.hasOut[e.From]++
			}
		}
	}
	return out, nil
}

// Diff reports which node Ids are present in b but not a ("added") and
// present in a but not b ("removed"). Used to compare a planned
// Intent's expected graph against one actually realized by execution.
func Diff(a, b *Graph) (added, removed []id.Id) {
	a.mu.RLock()
	b.mu.RLock()
	defer a.mu.RUnlock()
	defer b.mu.RUnlock()

	for nid := range b.allNodesLocked() {
		if _, ok := a.allNodesLocked()[nid]; !ok {
			added = append(added, nid)
		}
	}
	for nid := range a.allNodesLocked() {
		if _, ok := b.allNodesLocked()[nid]; !ok {
			removed = append(removed, nid)
		}
	}
	sortIds(added)
	sortIds(removed)
	return added, removed
}

func (g *Graph) allNodesLocked() map[id.Id]struct{} {
	out := make(map[id.Id]struct{}, len(g.effects)+len(g.resources))
	for nid := range g.effects {
		out[nid] = struct{}{}
	}
	for nid := range g.resources {
		out[nid] = struct{}{}
	}
	return out
}

// Txn is a batch of graph mutations applied atomically: if any step
// fails, every mutation made so far within the transaction is rolled
// back and the graph is left exactly as it was before Begin.
type Txn struct {
	g    *Graph
	snap *Graph
}

// Begin starts a transaction by snapshotting the graph's current state.
func (g *Graph) Begin() *Txn {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &Txn{g: g, snap: g.cloneLocked()}
}

func (g *Graph) cloneLocked() *Graph {
	out := New()
	for k, v := range g.effects {
		cp := *v
		out.effects[k] = &cp
	}
	for k, v := range g.resources {
		cp := *v
		out.resources[k] = &cp
	}
	out.edges = append(out.edges, g.edges...)
	for k, v := range g.hasOut {
		out.hasOut[k] = v
	}
	return out
}

// Graph returns the live graph the transaction mutates directly; errors
// during the caller's batch should be followed by Rollback rather than
// Commit.
func (tx *Txn) Graph() *Graph { return tx.g }

// Commit finalizes the transaction: its mutations (already applied
// directly to the underlying graph) are kept.
func (tx *Txn) Commit() {}

// Rollback restores the graph to the state captured at Begin, discarding
// every mutation made since.
func (tx *Txn) Rollback() {
	tx.g.mu.Lock()
	defer tx.g.mu.Unlock()
	tx.g.effects = tx.snap.effects
	tx.g.resources = tx.snap.resources
	tx.g.edges = tx.snap.edges
	tx.g.hasOut = tx.snap.hasOut
}

// Hash computes the graph's content address: a digest over its sorted
// node Ids and edges, so that two graphs built in different orders but
// with identical structure hash identically (spec.md §3.7's content-hash
// invariant).
func (g *Graph) Hash() id.Id {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var nodeIds []id.Id
	for nid := range g.effects {
		nodeIds = append(nodeIds, nid)
	}
	for nid := range g.resources {
		nodeIds = append(nodeIds, nid)
	}
	sortIds(nodeIds)

	var buf []byte
	for _, nid := range nodeIds {
		buf = append(buf, nid.Bytes()...)
	}

	edges := append([]Edge(nil), g.edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From.Less(edges[j].From)
		}
		if edges[i].To != edges[j].To {
			return edges[i].To.Less(edges[j].To)
		}
		return edges[i].Kind < edges[j].Kind
	})
	for _, e := range edges {
		buf = append(buf, byte(e.Kind))
		buf = append(buf, e.From.Bytes()...)
		buf = append(buf, e.To.Bytes()...)
		buf = append(buf, []byte(e.Condition.Label)...)
	}
	return id.Hash(buf)
}
