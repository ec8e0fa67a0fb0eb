// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "github.com/gogpu/rendergraph/resource"

// Node is a unit of work in the render graph.
//
// Input and Output declare the node's slots. They are read once when the
// node is added; the declarations must not change afterwards.
//
// Update is called at most once per frame, in dependency order. Its side
// effects go through rc (device work) and out (published handles). in holds
// the handles delivered by upstream slot edges; a slot with no producer, or
// whose producer published nothing, is absent and the node must tolerate it.
// out persists across frames, so a node may keep handles it published in a
// previous frame.
//
// A returned error abandons the frame.
type Node interface {
	Input() []SlotInfo
	Output() []SlotInfo
	Update(w World, rc resource.Context, in, out *Slots) error
}

// SystemNode is a node fed by external scene state. Nodes added with
// [Graph.AddSystemNode] get Prepare once per frame, before any Update.
type SystemNode interface {
	Node
	Prepare(w World) error
}

// NoSlots can be embedded to declare no inputs and no outputs.
type NoSlots struct{}

// Input returns nil.
func (NoSlots) Input() []SlotInfo { return nil }

// Output returns nil.
func (NoSlots) Output() []SlotInfo { return nil }
