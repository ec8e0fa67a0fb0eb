// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording provides a host-memory resource.Context that records
// every device call as a typed command.
//
// A Device stores textures and buffers as byte slices and applies the same
// usage and mapping rules a WebGPU device does, which makes it useful both as
// a CPU backend for headless rendering and as a test double: after a frame the
// command log shows exactly which resources a node created, copied, mapped
// and read.
//
// # Basic Usage
//
//	dev := recording.NewDevice()
//	g := graph.New()
//	// ... add nodes and edges ...
//	if err := g.Execute(graph.EmptyWorld{}, dev); err != nil {
//		log.Fatal(err)
//	}
//	copies := dev.Count(recording.CmdCopyTextureToBuffer)
//
// # Inspection
//
// Commands returns the full log in call order; each entry is one of the
// *Command structs in this package. Calls are logged before they are
// validated, so failed calls appear too. Reset clears the log between frames
// without releasing resources.
package recording
