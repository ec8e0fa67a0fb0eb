// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import "github.com/gogpu/rendergraph/resource"

// DeviceOption configures a Device during creation.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	alignment   int
	memoryLimit uint64
}

func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		alignment:   resource.CopyPitchAlignment,
		memoryLimit: 0, // unlimited
	}
}

// WithCopyAlignment sets the texel alignment reported by AlignedTextureSize
// and the byte alignment required of multi-row copy pitches.
// Use 1 for tightly packed readouts.
func WithCopyAlignment(n int) DeviceOption {
	return func(o *deviceOptions) {
		if n < 1 {
			n = 1
		}
		o.alignment = n
	}
}

// WithMemoryLimit makes allocations fail with ErrOutOfMemory once the live
// texture and buffer bytes would exceed limit. Zero means unlimited.
func WithMemoryLimit(limit uint64) DeviceOption {
	return func(o *deviceOptions) {
		o.memoryLimit = limit
	}
}
