// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/rendergraph/resource"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendSoftware is the host-memory device from package recording.
	BackendSoftware = "software"
	// BackendNoop is the HAL noop device wrapped by package backend/native.
	BackendNoop = "noop"
)

// RenderBackend is a device the render graph can execute against.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software", "noop").
	Name() string

	// Init acquires the device.
	// This should be called before Context.
	Init() error

	// Close releases the device and every resource created through it.
	// The backend should not be used after Close is called.
	Close()

	// Context returns the resource context, or nil before Init.
	Context() resource.Context
}
