// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rendertofile runs a render graph layout headlessly and writes
// every readout to an image file.
//
// Usage:
//
//	rendertofile [-layout graph.hcl] [-var name=value]... [-frames 1] [-backend software|noop] [-v]
//
// Without -layout a built-in layout renders a 512x512 target and saves it
// to render_to_file.png.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
	_ "github.com/gogpu/rendergraph/backend/native" // registers "noop"
	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/layout"
	"github.com/gogpu/rendergraph/nodes"
	"github.com/gogpu/rendergraph/snapshot"
)

const defaultLayout = `
texture "color" {
  width  = 512
  height = 512
  format = "bgra8unorm-srgb"
  usage  = ["render_attachment", "copy_src"]
}

texture "depth" {
  width  = 512
  height = 512
  format = "depth24plus-stencil8"
  usage  = ["render_attachment"]
}

camera "camera" {}

readout "save" {
  output = "render_to_file.png"
}

slot_edge {
  from = "color"
  to   = "save"
}

node_edge {
  from = "camera"
  to   = "save"
}
`

// varFlags collects repeated -var name=value flags.
type varFlags []layout.Option

func (v *varFlags) String() string { return "" }

func (v *varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return errors.New("want name=value")
	}
	*v = append(*v, layout.WithVariable(name, value))
	return nil
}

func main() {
	var vars varFlags
	flag.Var(&vars, "var", "layout variable as name=value, available as var.<name> (repeatable)")
	var (
		layoutPath  = flag.String("layout", "", "HCL layout file (default: built-in render-to-file layout)")
		frames      = flag.Int("frames", 1, "number of frames to run")
		backendName = flag.String("backend", backend.BackendSoftware, "device backend: software or noop")
		verbose     = flag.Bool("v", false, "log graph execution")
	)
	flag.Parse()

	if *verbose {
		rendergraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	f, err := loadLayout(*layoutPath, vars...)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}

	g := graph.New()
	err = f.Build(g, func(name, output string) nodes.ReadFunc {
		if output == "" {
			output = name + ".png"
		}
		return snapshot.Writer(output)
	})
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	if err := g.Validate(); err != nil {
		log.Fatalf("Invalid graph: %v", err)
	}

	b, err := backend.Open(*backendName)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer b.Close()

	world := graph.MapWorld{}
	for _, c := range f.Cameras {
		key := c.Key
		if key == "" {
			key = c.Name
		}
		world[key] = nodes.IdentityCamera()
	}

	for i := 0; i < *frames; i++ {
		if err := g.Execute(world, b.Context()); err != nil {
			b.Close()
			log.Fatalf("Frame %d failed: %v", i, err)
		}
	}

	log.Printf("Rendered %d frame(s) of %d node(s) on %s\n", g.Frame(), g.Len(), b.Name())
}

func loadLayout(path string, opts ...layout.Option) (*layout.File, error) {
	if path == "" {
		return layout.Parse([]byte(defaultLayout), "default.hcl", opts...)
	}
	return layout.Load(path, opts...)
}
