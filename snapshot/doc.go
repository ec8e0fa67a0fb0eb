// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package snapshot turns texture readouts into image files.
//
// Writer returns a nodes.ReadFunc that saves every frame it receives:
//
//	save := nodes.NewTextureReadoutNode(desc, snapshot.Writer("frame-%03d.png"))
//
// The encoder is chosen by extension: .png, .bmp, .tif or .tiff. 8-bit
// RGBA, BGRA and R8 textures are supported; other formats are skipped with
// a warning.
package snapshot
