// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rendergraph is a render graph execution engine: a directed graph
// of nodes that produce and consume GPU resources across a frame.
//
// The graph resolves dependency order, lets nodes allocate resources lazily,
// and turns asynchronous buffer mapping into synchronous host callbacks.
//
// # Packages
//
//   - [github.com/gogpu/rendergraph/graph]: slots, nodes, the Graph and frame execution
//   - [github.com/gogpu/rendergraph/nodes]: texture, texture readout and camera nodes
//   - [github.com/gogpu/rendergraph/resource]: resource handles, descriptors and the device Context
//   - [github.com/gogpu/rendergraph/recording]: host-memory Context that records device calls
//   - [github.com/gogpu/rendergraph/backend]: registry of devices selectable by name
//   - [github.com/gogpu/rendergraph/backend/native]: Context over gogpu/wgpu HAL
//   - [github.com/gogpu/rendergraph/layout]: HCL graph layout files
//   - [github.com/gogpu/rendergraph/snapshot]: readout callbacks writing image files
//
// # Quick Start
//
//	g := graph.New()
//	desc := resource.DefaultTextureDescriptor(64, 64, gputypes.TextureFormatRGBA8Unorm)
//	_ = g.AddNode("color", nodes.NewTextureNode(desc))
//	_ = g.AddNode("readout", nodes.NewTextureReadoutNode(desc, func(data []byte, d resource.TextureDescriptor) {
//	    // data holds padded rows; see resource.StripRowPadding.
//	}))
//	_ = g.AddSlotEdge("color", graph.Slot(nodes.OutTexture), "readout", graph.Slot(nodes.InTexture))
//
//	dev := recording.NewDevice()
//	if err := g.Execute(graph.EmptyWorld{}, dev); err != nil {
//	    log.Fatal(err)
//	}
//
// # Logging
//
// rendergraph is silent by default. Call [SetLogger] to route diagnostics to
// a [log/slog] logger.
package rendergraph
