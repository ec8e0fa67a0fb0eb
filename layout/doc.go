// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout loads render graph layouts from HCL files.
//
// A layout declares nodes and edges:
//
//	texture "target" {
//	  width  = 512
//	  height = 512
//	  format = "rgba8unorm"
//	}
//
//	readout "save" {
//	  output = "frame.png"
//	}
//
//	slot_edge {
//	  from = "target"
//	  to   = "save"
//	}
//
//	node_edge {
//	  from = "target"
//	  to   = "save"
//	}
//
// Build adds the nodes to a graph.Graph, textures first, then cameras, then
// readouts, each group in file order, and then the edges. A readout without
// its own width, height or format takes them from the texture wired into it.
// Slot names default to the first slot of the node.
package layout
