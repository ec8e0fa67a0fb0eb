// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource defines the GPU resource vocabulary shared by the render
// graph, its nodes and the device backends.
//
// Resources are referenced through opaque handles ([TextureID], [BufferID],
// [SamplerID]). A [Context] implementation owns the mapping between handles
// and real device objects; the graph and its nodes never free device memory
// except through it.
//
// # Row alignment
//
// Device copy destinations for textures are row-pitch aligned. A readback of
// a texture whose row is not a multiple of the alignment contains padding at
// the end of every row:
//
//	width = 100 texels, RGBA8  -> tight row = 400 bytes
//	AlignedTextureSize(100)    -> 256 texels
//	row pitch                  -> 1024 bytes, 624 of them padding
//
// Use [StripRowPadding] to recover the tight layout.
package resource
