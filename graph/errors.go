// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Construction errors. They are wrapped with the offending names.
var (
	ErrDuplicateNode    = errors.New("graph: duplicate node name")
	ErrUnknownNode      = errors.New("graph: unknown node")
	ErrUnknownSlot      = errors.New("graph: unknown slot")
	ErrSlotKindMismatch = errors.New("graph: slot kind mismatch")
	ErrSlotOccupied     = errors.New("graph: input slot already has an edge")
	ErrCycle            = errors.New("graph: cycle detected")
	ErrInvalidNode      = errors.New("graph: invalid node")
	ErrNodeType         = errors.New("graph: node has a different type")
)

// CycleError reports the nodes that could not be ordered.
type CycleError struct {
	// Nodes lists the nodes on or behind a cycle, in insertion order.
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(e.Nodes, ", "))
}

// Unwrap returns ErrCycle.
func (e *CycleError) Unwrap() error { return ErrCycle }

// NodeError reports the node whose Prepare or Update failed.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("graph: node %q: %v", e.Node, e.Err)
}

// Unwrap returns the node's error.
func (e *NodeError) Unwrap() error { return e.Err }
