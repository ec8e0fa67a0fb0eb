// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/backend"
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// init registers the noop HAL backend on package import.
func init() {
	backend.Register(backend.BackendNoop, func() backend.RenderBackend {
		return &NoopBackend{}
	})
}

// NoopBackend owns a HAL noop instance and device and exposes them as a
// Context. Every call succeeds and reads return zeroed memory, which makes
// it useful for driving the full HAL code path without a GPU.
type NoopBackend struct {
	opts     []Option
	instance hal.Instance
	device   hal.Device
	ctx      *Context
}

// NewNoopBackend creates a noop backend. opts are passed to New on Init.
func NewNoopBackend(opts ...Option) *NoopBackend {
	return &NoopBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *NoopBackend) Name() string {
	return backend.BackendNoop
}

// Init opens the noop device.
func (b *NoopBackend) Init() error {
	if b.ctx != nil {
		return nil
	}
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("%w: noop instance has no adapters", backend.ErrBackendNotAvailable)
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("open device: %w", err)
	}
	ctx, err := New(openDev.Device, openDev.Queue, b.opts...)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return err
	}
	b.instance = instance
	b.device = openDev.Device
	b.ctx = ctx
	return nil
}

// Close destroys the context, the device and the instance.
func (b *NoopBackend) Close() {
	if b.ctx == nil {
		return
	}
	b.ctx.Destroy()
	b.device.Destroy()
	b.instance.Destroy()
	b.ctx, b.device, b.instance = nil, nil, nil
}

// Context returns the HAL context, or nil before Init.
func (b *NoopBackend) Context() resource.Context {
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}
