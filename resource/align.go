// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

// CopyPitchAlignment is the WebGPU (and DX12) alignment for texture copy
// row pitches.
const CopyPitchAlignment = 256

// AlignTo rounds v up to the next multiple of alignment.
// An alignment of 0 or 1 returns v unchanged.
func AlignTo(v, alignment int) int {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) / alignment * alignment
}

// StagingSize returns the size of a buffer receiving a full copy of desc
// whose rows are alignedWidth texels apart.
func StagingSize(desc TextureDescriptor, alignedWidth int) uint64 {
	pitch := uint64(alignedWidth) * uint64(desc.PixelSize())
	return pitch * uint64(desc.Size.Height) * uint64(desc.Depth())
}
