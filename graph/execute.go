// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "github.com/gogpu/rendergraph/resource"

// Execute runs one frame.
//
// The graph is validated first; a cycle is reported before any node runs.
// System nodes are prepared in execution order, then every node is updated
// in execution order with freshly resolved inputs. The first error abandons
// the frame and is returned as a *NodeError. There is no rollback: nodes that
// already ran keep their effects.
//
// A nil w is treated as EmptyWorld.
func (g *Graph) Execute(w World, rc resource.Context) error {
	order, err := g.sorted()
	if err != nil {
		return err
	}
	if w == nil {
		w = EmptyWorld{}
	}
	log := g.logger()

	for _, idx := range order {
		n := g.nodes[idx]
		if n.system == nil {
			continue
		}
		if err := n.system.Prepare(w); err != nil {
			return &NodeError{Node: n.name, Err: err}
		}
	}

	for _, idx := range order {
		n := g.nodes[idx]
		in := g.resolveInputs(n)
		log.Debug("rendergraph: update", "frame", g.frame, "node", n.name)
		if err := n.node.Update(w, rc, in, n.out); err != nil {
			return &NodeError{Node: n.name, Err: err}
		}
	}

	g.frame++
	return nil
}

// Frame returns the number of frames executed successfully.
func (g *Graph) Frame() uint64 { return g.frame }

// Outputs returns the output slots of name as published so far.
// The returned table belongs to the graph and must not be modified.
func (g *Graph) Outputs(name string) (*Slots, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	return g.nodes[i].out, nil
}

// resolveInputs builds the input table for n from the outputs its upstream
// slot edges point at. Inputs without a published handle stay absent.
func (g *Graph) resolveInputs(n *entry) *Slots {
	in := NewSlots(n.inputs)
	for slot, ei := range n.inbound {
		if ei < 0 {
			continue
		}
		e := g.edges[ei]
		if id, ok := g.nodes[e.from].out.Get(e.fromSlot); ok {
			in.Set(slot, id)
		}
	}
	return in
}
