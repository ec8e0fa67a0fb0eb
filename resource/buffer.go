// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gputypes"

// BufferInfo describes parameters for creating a buffer.
type BufferInfo struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage is a bitmask of gputypes.BufferUsage flags.
	Usage gputypes.BufferUsage

	// MappedAtCreation creates the buffer already mapped for writing.
	MappedAtCreation bool
}

// TextureBufferCopy describes a texture to buffer copy.
type TextureBufferCopy struct {
	// Texture is the copy source.
	Texture TextureID

	// Origin is the first texel (x, y, z) copied.
	Origin [3]uint32

	// MipLevel is the source mip level.
	MipLevel uint32

	// Buffer is the copy destination.
	Buffer BufferID

	// Offset is the byte offset into Buffer.
	Offset uint64

	// BytesPerRow is the destination row pitch. It must be at least
	// Size.Width * pixel size and satisfy the device alignment.
	BytesPerRow uint32

	// Size is the extent copied.
	Size gputypes.Extent3D
}
