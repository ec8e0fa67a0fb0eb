// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/rendergraph/recording"
	"github.com/gogpu/rendergraph/resource"
)

// SoftwareBackend runs the graph against a recording.Device.
type SoftwareBackend struct {
	opts   []recording.DeviceOption
	device *recording.Device
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a software backend. opts are passed to
// recording.NewDevice on Init.
func NewSoftwareBackend(opts ...recording.DeviceOption) *SoftwareBackend {
	return &SoftwareBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init creates the device. Calling Init again replaces it.
func (b *SoftwareBackend) Init() error {
	b.device = recording.NewDevice(b.opts...)
	return nil
}

// Close drops the device.
func (b *SoftwareBackend) Close() {
	b.device = nil
}

// Context returns the device as a resource.Context.
func (b *SoftwareBackend) Context() resource.Context {
	if b.device == nil {
		return nil
	}
	return b.device
}

// Device returns the underlying recording device, or nil before Init.
func (b *SoftwareBackend) Device() *recording.Device {
	return b.device
}
