// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "fmt"

// EdgeKind distinguishes data edges from ordering edges.
type EdgeKind uint8

const (
	// EdgeSlot hands the resource in an output slot to an input slot.
	EdgeSlot EdgeKind = iota + 1

	// EdgeNode orders two nodes without transferring a resource.
	EdgeNode
)

// Edge is a dependency: From executes before To.
// FromSlot and ToSlot are only meaningful for EdgeSlot.
type Edge struct {
	Kind     EdgeKind
	From     string
	FromSlot int
	To       string
	ToSlot   int
}

// String returns "a -> b" for node edges and "a[0] -> b[1]" for slot edges.
func (e Edge) String() string {
	if e.Kind == EdgeSlot {
		return fmt.Sprintf("%s[%d] -> %s[%d]", e.From, e.FromSlot, e.To, e.ToSlot)
	}
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// edge is the index form of Edge stored by the graph.
type edge struct {
	kind     EdgeKind
	from, to int
	fromSlot int
	toSlot   int
}
