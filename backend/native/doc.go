// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native provides a resource.Context on top of gogpu/wgpu/hal.
//
// Use New with a device and queue you already own, or NewFromProvider to
// share the device of a gogpu application:
//
//	ctx, err := native.NewFromProvider(app.GPUContextProvider())
//	if err != nil {
//		return err
//	}
//	defer ctx.Destroy()
//
//	err = g.Execute(world, ctx)
//
// Importing the package registers the "noop" backend with package backend,
// which runs the same code against the HAL noop device.
package native
