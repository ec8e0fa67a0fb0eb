// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "errors"

// Errors reported by Context implementations.
var (
	// ErrUnknownTexture is returned for a texture ID the context does not own.
	ErrUnknownTexture = errors.New("resource: unknown texture")

	// ErrUnknownBuffer is returned for a buffer ID the context does not own.
	ErrUnknownBuffer = errors.New("resource: unknown buffer")

	// ErrBufferNotMapped is returned when reading from an unmapped buffer.
	ErrBufferNotMapped = errors.New("resource: buffer not mapped")

	// ErrBufferAlreadyMapped is returned when mapping a mapped buffer.
	ErrBufferAlreadyMapped = errors.New("resource: buffer already mapped")

	// ErrBufferTooSmall is returned when a copy or read exceeds a buffer.
	ErrBufferTooSmall = errors.New("resource: buffer too small")

	// ErrInvalidUsage is returned when a resource lacks a required usage flag.
	ErrInvalidUsage = errors.New("resource: invalid usage")

	// ErrUnsupportedFormat is returned for formats that cannot be copied.
	ErrUnsupportedFormat = errors.New("resource: unsupported texture format")
)
