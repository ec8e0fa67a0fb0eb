// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

// Kind identifies the type of resource flowing through a slot.
type Kind uint8

const (
	// KindTexture is a GPU texture.
	KindTexture Kind = iota + 1

	// KindBuffer is a GPU buffer.
	KindBuffer

	// KindSampler is a texture sampler.
	KindSampler
)

var kindNames = [...]string{
	KindTexture: "Texture",
	KindBuffer:  "Buffer",
	KindSampler: "Sampler",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
