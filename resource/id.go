// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "fmt"

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// ID is a resource handle tagged with its kind. It is the value stored in
// render graph slots. The zero ID is invalid.
type ID struct {
	kind   Kind
	handle uint64
}

// TextureResource wraps a texture handle.
func TextureResource(id TextureID) ID { return ID{kind: KindTexture, handle: uint64(id)} }

// BufferResource wraps a buffer handle.
func BufferResource(id BufferID) ID { return ID{kind: KindBuffer, handle: uint64(id)} }

// SamplerResource wraps a sampler handle.
func SamplerResource(id SamplerID) ID { return ID{kind: KindSampler, handle: uint64(id)} }

// Kind returns the resource kind.
func (id ID) Kind() Kind { return id.kind }

// IsValid reports whether id refers to a resource.
func (id ID) IsValid() bool { return id.kind != 0 && id.handle != InvalidID }

// Texture returns the texture handle if id is a texture.
func (id ID) Texture() (TextureID, bool) {
	if id.kind != KindTexture {
		return InvalidID, false
	}
	return TextureID(id.handle), true
}

// Buffer returns the buffer handle if id is a buffer.
func (id ID) Buffer() (BufferID, bool) {
	if id.kind != KindBuffer {
		return InvalidID, false
	}
	return BufferID(id.handle), true
}

// Sampler returns the sampler handle if id is a sampler.
func (id ID) Sampler() (SamplerID, bool) {
	if id.kind != KindSampler {
		return InvalidID, false
	}
	return SamplerID(id.handle), true
}

// String returns a debug representation such as "Texture(3)".
func (id ID) String() string {
	return fmt.Sprintf("%s(%d)", id.kind, id.handle)
}
