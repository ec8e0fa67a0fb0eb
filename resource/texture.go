// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gputypes"

// TextureDescriptor describes parameters for creating a texture.
// This mirrors the WebGPU GPUTextureDescriptor specification.
//
// A descriptor is a plain value: nodes keep their own copy and pass copies to
// the resource context, so it is never mutated after a node is built.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Size is the texture extent. DepthOrArrayLayers is 1 for 2D textures.
	Size gputypes.Extent3D

	// MipLevelCount is the number of mipmap levels.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling.
	SampleCount uint32

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// DefaultTextureDescriptor returns a 2D, single-sample, single-mip texture
// descriptor usable as a render attachment and copy source.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Size:          gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	}
}

// Volume returns width * height * depth in texels.
func (d TextureDescriptor) Volume() int {
	return int(d.Size.Width) * int(d.Size.Height) * int(d.depth())
}

// PixelSize returns the size of one texel in bytes, or 0 if the format is
// not copyable.
func (d TextureDescriptor) PixelSize() int {
	n, _ := PixelSize(d.Format)
	return n
}

// depth treats a zero DepthOrArrayLayers as 1.
func (d TextureDescriptor) depth() uint32 {
	if d.Size.DepthOrArrayLayers == 0 {
		return 1
	}
	return d.Size.DepthOrArrayLayers
}

// Depth returns DepthOrArrayLayers, treating zero as 1.
func (d TextureDescriptor) Depth() uint32 { return d.depth() }

// PixelSize returns the bytes per texel for color formats that can be copied
// into a buffer. Depth/stencil and compressed formats report false.
func PixelSize(format gputypes.TextureFormat) (int, bool) {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1, true
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatR32Float:
		return 4, true
	case gputypes.TextureFormatRG32Float:
		return 8, true
	case gputypes.TextureFormatRGBA32Float:
		return 16, true
	default:
		return 0, false
	}
}
