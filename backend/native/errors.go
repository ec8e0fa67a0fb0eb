// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the HAL context.
var (
	// ErrNilHALDevice is returned when creating a context without a HAL device or queue.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNoHALProvider is returned when a device provider does not expose HAL types.
	ErrNoHALProvider = errors.New("native: provider does not expose HAL types")

	// ErrDestroyed is returned when operating on a destroyed context.
	ErrDestroyed = errors.New("native: context has been destroyed")

	// ErrGPUTimeout is returned when a submitted copy does not complete in time.
	ErrGPUTimeout = errors.New("native: timed out waiting for GPU")
)
