// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graph implements the render graph: named nodes connected by slot
// edges (a resource handed from an output slot to an input slot) and node
// edges (ordering only).
//
// # Construction
//
// A graph is assembled before the first frame with [Graph.AddNode],
// [Graph.AddSystemNode], [Graph.AddSlotEdge] and [Graph.AddNodeEdge]. Every
// construction error is reported immediately and leaves the graph unchanged.
// Cycles are reported by [Graph.Validate] (and therefore by [Graph.Order] and
// [Graph.Execute]) before any node runs.
//
// # Execution
//
// [Graph.Execute] runs one frame on the calling goroutine:
//
//	Prepare(system nodes, in order)
//	for each node in topological order:
//	    inputs  <- outputs of the upstream slot edges (absent if unpublished)
//	    Update(world, context, inputs, outputs)
//
// Nodes without an ordering constraint run in insertion order, so execution
// is reproducible across runs. Output slots are kept per node across frames;
// input slots are rebuilt every frame.
package graph
