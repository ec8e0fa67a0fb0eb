// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// DefaultFormat is used by texture blocks without a format.
const DefaultFormat = "rgba8unorm"

// Format names follow the WebGPU spelling.
var formatNames = map[string]gputypes.TextureFormat{
	"r8unorm":              gputypes.TextureFormatR8Unorm,
	"rgba8unorm":           gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb":      gputypes.TextureFormatRGBA8UnormSrgb,
	"bgra8unorm":           gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb":      gputypes.TextureFormatBGRA8UnormSrgb,
	"r32float":             gputypes.TextureFormatR32Float,
	"rg32float":            gputypes.TextureFormatRG32Float,
	"rgba32float":          gputypes.TextureFormatRGBA32Float,
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
}

var usageNames = map[string]gputypes.TextureUsage{
	"copy_src":          gputypes.TextureUsageCopySrc,
	"copy_dst":          gputypes.TextureUsageCopyDst,
	"texture_binding":   gputypes.TextureUsageTextureBinding,
	"storage_binding":   gputypes.TextureUsageStorageBinding,
	"render_attachment": gputypes.TextureUsageRenderAttachment,
}

// ParseFormat returns the texture format with the given WebGPU name.
// Names are case-insensitive.
func ParseFormat(name string) (gputypes.TextureFormat, error) {
	f, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: unknown format %q", ErrInvalidLayout, name)
	}
	return f, nil
}

func parseFormatOrDefault(name string) (gputypes.TextureFormat, error) {
	if name == "" {
		name = DefaultFormat
	}
	return ParseFormat(name)
}

// ParseTextureUsage ORs the named usages together. An empty list yields
// render_attachment | copy_src, the usage of a readable render target.
func ParseTextureUsage(names []string) (gputypes.TextureUsage, error) {
	if len(names) == 0 {
		return gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc, nil
	}
	var usage gputypes.TextureUsage
	for _, n := range names {
		u, ok := usageNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown texture usage %q", ErrInvalidLayout, n)
		}
		usage |= u
	}
	return usage, nil
}
