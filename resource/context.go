// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gputypes"

// Context is the device capability consumed by render graph nodes.
//
// Implementations map handles to device objects. All methods are called from
// the single frame execution goroutine in strict call order; concurrent use
// is not required to be supported.
//
// Errors are device errors: the graph abandons the frame on the first one and
// performs no retry.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources are released via Destroy* methods
//   - IDs become invalid after destruction and are never reused
type Context interface {
	// CreateTexture allocates a texture described by desc.
	CreateTexture(desc TextureDescriptor) (TextureID, error)

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)

	// CreateBuffer allocates a buffer described by info.
	CreateBuffer(info BufferInfo) (BufferID, error)

	// DestroyBuffer releases a buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer uploads data into a buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// AlignedTextureSize rounds a texture width (in texels) up so that
	// width * pixel size is a valid copy row pitch for this device.
	AlignedTextureSize(width int) int

	// CopyTextureToBuffer copies texels into a buffer. When it returns the
	// copy is complete from the caller's point of view.
	CopyTextureToBuffer(c TextureBufferCopy) error

	// MapBuffer maps a buffer for host access.
	MapBuffer(id BufferID, mode gputypes.MapMode) error

	// ReadMappedBuffer calls fn with the mapped bytes [offset, offset+size).
	// The slice is only valid for the duration of fn.
	ReadMappedBuffer(id BufferID, offset, size uint64, fn func(data []byte)) error

	// UnmapBuffer ends host access to a mapped buffer.
	UnmapBuffer(id BufferID) error
}
