// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a registry of devices the render graph can run on.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import; the HAL noop
// backend is registered by importing package backend/native:
//
//	import _ "github.com/gogpu/rendergraph/backend/native"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name. Open does both and calls Init:
//
//	b, err := backend.Open("software")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	err = g.Execute(world, b.Context())
package backend
