// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

// World is read-only access to scene state. The graph never inspects it; it
// is handed through to nodes.
type World interface {
	Lookup(key string) (any, bool)
}

// MapWorld is a World backed by a map.
type MapWorld map[string]any

// Lookup returns the value stored under key.
func (m MapWorld) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// EmptyWorld is a World with no state.
type EmptyWorld struct{}

// Lookup always reports false.
func (EmptyWorld) Lookup(string) (any, bool) { return nil, false }
