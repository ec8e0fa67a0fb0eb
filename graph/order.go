// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"container/heap"
	"context"
	"log/slog"
)

// Validate checks that the graph is acyclic. It is called implicitly by
// Order and Execute.
func (g *Graph) Validate() error {
	_, err := g.sorted()
	return err
}

// Order returns node names in execution order: every edge's source precedes
// its target, and unconstrained nodes keep insertion order.
func (g *Graph) Order() ([]string, error) {
	order, err := g.sorted()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = g.nodes[idx].name
	}
	return names, nil
}

// sorted returns the cached order, recomputing it after a mutation.
func (g *Graph) sorted() ([]int, error) {
	if g.order != nil || len(g.nodes) == 0 {
		return g.order, nil
	}
	order, stuck := topoSort(len(g.nodes), g.edges)
	if stuck != nil {
		return nil, stuck.withNames(g)
	}
	g.order = order
	if log := g.logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		names := make([]string, len(order))
		for i, idx := range order {
			names[i] = g.nodes[idx].name
		}
		log.Debug("rendergraph: execution order", "nodes", len(order), "order", names)
	}
	return order, nil
}

// cycle carries the unordered node indices until names are attached.
type cycle []int

func (c cycle) withNames(g *Graph) error {
	names := make([]string, len(c))
	for i, idx := range c {
		names[i] = g.nodes[idx].name
	}
	return &CycleError{Nodes: names}
}

// topoSort runs Kahn's algorithm. The ready set is a min-heap of insertion
// indices, so when insertion order is already a valid order it is returned
// unchanged.
func topoSort(n int, edges []edge) ([]int, cycle) {
	indegree := make([]int, n)
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.from] = append(adj[e.from], e.to)
		indegree[e.to]++
	}

	ready := make(indexHeap, 0, n)
	for i, d := range indegree {
		if d == 0 {
			ready = append(ready, i)
		}
	}
	heap.Init(&ready)

	order := make([]int, 0, n)
	for ready.Len() > 0 {
		u := heap.Pop(&ready).(int)
		order = append(order, u)
		for _, v := range adj[u] {
			indegree[v]--
			if indegree[v] == 0 {
				heap.Push(&ready, v)
			}
		}
	}

	if len(order) != n {
		var stuck cycle
		for i, d := range indegree {
			if d > 0 {
				stuck = append(stuck, i)
			}
		}
		return nil, stuck
	}
	return order, nil
}

// indexHeap is a min-heap of node indices.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x any) { *h = append(*h, x.(int)) }

func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
