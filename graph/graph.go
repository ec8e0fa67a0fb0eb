// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"fmt"
	"slices"
)

// Graph owns a set of named nodes and the edges between them.
//
// A Graph is built and executed from a single goroutine; it is not safe for
// concurrent use.
type Graph struct {
	opts options

	nodes []*entry
	index map[string]int
	edges []edge

	// order caches the topological order; nil when stale.
	order []int

	frame uint64
}

// entry is the graph's record of one node.
type entry struct {
	name    string
	node    Node
	system  SystemNode
	inputs  []SlotInfo
	outputs []SlotInfo

	// inbound[slot] is the index into Graph.edges feeding that input, or -1.
	inbound []int

	out *Slots
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph{
		opts:  o,
		index: make(map[string]int),
	}
}

// AddNode adds node under name. It fails if the name is taken, in which case
// the existing node is kept.
func (g *Graph) AddNode(name string, node Node) error {
	return g.add(name, node, nil)
}

// AddSystemNode adds a node fed by external scene state. It shares the
// namespace of AddNode; node.Prepare runs every frame before any Update.
func (g *Graph) AddSystemNode(name string, node SystemNode) error {
	if node == nil {
		return fmt.Errorf("%w: %q is nil", ErrInvalidNode, name)
	}
	return g.add(name, node, node)
}

func (g *Graph) add(name string, node Node, system SystemNode) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidNode)
	}
	if node == nil {
		return fmt.Errorf("%w: %q is nil", ErrInvalidNode, name)
	}
	if _, exists := g.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}

	inputs := slices.Clone(node.Input())
	outputs := slices.Clone(node.Output())
	inbound := make([]int, len(inputs))
	for i := range inbound {
		inbound[i] = -1
	}

	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, &entry{
		name:    name,
		node:    node,
		system:  system,
		inputs:  inputs,
		outputs: outputs,
		inbound: inbound,
		out:     NewSlots(outputs),
	})
	g.order = nil
	return nil
}

// AddSlotEdge connects output slot outSlot of outNode to input slot inSlot
// of inNode. The resource published by outNode in a frame is delivered to
// inNode in the same frame, and outNode executes first.
//
// It fails, leaving the graph unchanged, if a node or slot is unknown, if
// the slot kinds differ, or if the input slot already has an inbound edge.
func (g *Graph) AddSlotEdge(outNode string, outSlot SlotLabel, inNode string, inSlot SlotLabel) error {
	from, err := g.lookup(outNode)
	if err != nil {
		return err
	}
	to, err := g.lookup(inNode)
	if err != nil {
		return err
	}
	src, dst := g.nodes[from], g.nodes[to]

	fromSlot, ok := outSlot.resolve(src.outputs)
	if !ok {
		return fmt.Errorf("%w: output %s of %q", ErrUnknownSlot, outSlot, outNode)
	}
	toSlot, ok := inSlot.resolve(dst.inputs)
	if !ok {
		return fmt.Errorf("%w: input %s of %q", ErrUnknownSlot, inSlot, inNode)
	}
	if have, want := src.outputs[fromSlot].Kind, dst.inputs[toSlot].Kind; have != want {
		return fmt.Errorf("%w: %q.%s is %v, %q.%s is %v", ErrSlotKindMismatch,
			outNode, src.outputs[fromSlot].Name, have, inNode, dst.inputs[toSlot].Name, want)
	}
	if prev := dst.inbound[toSlot]; prev >= 0 {
		e := g.edges[prev]
		return fmt.Errorf("%w: %q.%s is fed by %q", ErrSlotOccupied,
			inNode, dst.inputs[toSlot].Name, g.nodes[e.from].name)
	}

	dst.inbound[toSlot] = len(g.edges)
	g.edges = append(g.edges, edge{kind: EdgeSlot, from: from, fromSlot: fromSlot, to: to, toSlot: toSlot})
	g.order = nil
	return nil
}

// AddNodeEdge makes from execute before to without transferring a resource.
// Adding the same node edge twice has no further effect.
func (g *Graph) AddNodeEdge(from, to string) error {
	fi, err := g.lookup(from)
	if err != nil {
		return err
	}
	ti, err := g.lookup(to)
	if err != nil {
		return err
	}
	for _, e := range g.edges {
		if e.kind == EdgeNode && e.from == fi && e.to == ti {
			return nil
		}
	}
	g.edges = append(g.edges, edge{kind: EdgeNode, from: fi, to: ti})
	g.order = nil
	return nil
}

// Node returns the node registered under name.
func (g *Graph) Node(name string) (Node, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	return g.nodes[i].node, nil
}

// NodeAs returns the node registered under name as a T.
func NodeAs[T Node](g *Graph, name string) (T, error) {
	var zero T
	n, err := g.Node(name)
	if err != nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrNodeType, name, n)
	}
	return t, nil
}

// Has reports whether a node named name exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Names returns node names in insertion order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.name
	}
	return names
}

// Edges returns every edge in the order it was added.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = g.export(e)
	}
	return out
}

// InputEdges returns the edges ending at name.
func (g *Graph) InputEdges(name string) ([]Edge, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	var out []Edge
	for _, e := range g.edges {
		if e.to == i {
			out = append(out, g.export(e))
		}
	}
	return out, nil
}

// OutputEdges returns the edges starting at name.
func (g *Graph) OutputEdges(name string) ([]Edge, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	var out []Edge
	for _, e := range g.edges {
		if e.from == i {
			out = append(out, g.export(e))
		}
	}
	return out, nil
}

func (g *Graph) lookup(name string) (int, error) {
	i, ok := g.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return i, nil
}

func (g *Graph) export(e edge) Edge {
	out := Edge{
		Kind: e.kind,
		From: g.nodes[e.from].name,
		To:   g.nodes[e.to].name,
	}
	if e.kind == EdgeSlot {
		out.FromSlot = e.fromSlot
		out.ToSlot = e.toSlot
	}
	return out
}
