// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/nodes"
	"github.com/gogpu/rendergraph/recording"
	"github.com/gogpu/rendergraph/resource"
)

func TestDefaultLayout(t *testing.T) {
	f, err := loadLayout("")
	if err != nil {
		t.Fatalf("loadLayout() error = %v", err)
	}

	var got []byte
	g := graph.New()
	err = f.Build(g, func(string, string) nodes.ReadFunc {
		return func(data []byte, _ resource.TextureDescriptor) { got = data }
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	world := graph.MapWorld{"camera": nodes.IdentityCamera()}
	if err := g.Execute(world, recording.NewDevice()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := 512 * 512 * 4; len(got) != want {
		t.Errorf("readout has %d bytes, want %d", len(got), want)
	}
}
