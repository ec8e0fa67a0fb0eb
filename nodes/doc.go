// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package nodes provides the stock render graph nodes.
//
// TextureNode allocates a texture on its first frame and republishes the
// same handle every frame after. TextureReadoutNode copies whatever texture
// it receives into a host-visible staging buffer and hands the bytes to a
// callback before its Update returns. CameraNode is a system node that
// uploads a view-projection matrix from the World into a uniform buffer.
//
// A minimal offscreen render-and-read graph:
//
//	desc := resource.DefaultTextureDescriptor(64, 64, gputypes.TextureFormatRGBA8Unorm)
//	g := graph.New()
//	_ = g.AddNode("target", nodes.NewTextureNode(desc))
//	_ = g.AddNode("readout", nodes.NewTextureReadoutNode(desc, func(data []byte, d resource.TextureDescriptor) {
//		// data rows are padded to the device copy alignment
//	}))
//	_ = g.AddSlotEdge("target", graph.Slot(nodes.OutTexture), "readout", graph.Slot(nodes.InTexture))
//	_ = g.AddNodeEdge("target", "readout")
package nodes
