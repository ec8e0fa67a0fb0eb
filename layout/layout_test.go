// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/zclconf/go-cty/cty"

	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/nodes"
	"github.com/gogpu/rendergraph/recording"
	"github.com/gogpu/rendergraph/resource"
)

const renderToFile = `
texture "target" {
  width  = 64
  height = 32
  format = "bgra8unorm"
  usage  = ["render_attachment", "copy_src"]
}

camera "main" {}

readout "save" {
  output = "out.png"
}

slot_edge {
  from = "target"
  to   = "save"
}

node_edge {
  from = "target"
  to   = "save"
}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(renderToFile), "render.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Textures) != 1 || len(f.Cameras) != 1 || len(f.Readouts) != 1 {
		t.Fatalf("got %d textures, %d cameras, %d readouts, want 1 each",
			len(f.Textures), len(f.Cameras), len(f.Readouts))
	}
	if got := f.Readouts[0].Output; got != "out.png" {
		t.Errorf("output = %q, want %q", got, "out.png")
	}

	desc, err := f.Textures[0].Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	want := resource.DefaultTextureDescriptor(64, 32, gputypes.TextureFormatBGRA8Unorm)
	want.Label = "target"
	if desc != want {
		t.Errorf("Descriptor() = %+v, want %+v", desc, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "syntax",
			src:     `texture "a" {`,
			wantMsg: "failed to parse",
		},
		{
			name:    "missing width",
			src:     `texture "a" { height = 1 }`,
			wantMsg: "failed to decode",
		},
		{
			name:    "unknown format",
			src:     `texture "a" {
  width  = 1
  height = 1
  format = "rgb565"
}`,
			wantErr: ErrInvalidLayout,
		},
		{
			name:    "unknown usage",
			src:     `texture "a" {
  width  = 1
  height = 1
  usage  = ["sample"]
}`,
			wantErr: ErrInvalidLayout,
		},
		{
			name:    "zero size",
			src:     `texture "a" {
  width  = 0
  height = 1
}`,
			wantErr: ErrInvalidLayout,
		},
		{
			name: "duplicate name",
			src: `texture "a" {
  width  = 1
  height = 1
}
readout "a" {}`,
			wantErr: ErrInvalidLayout,
		},
		{
			name:    "undeclared node",
			src:     `node_edge {
  from = "a"
  to   = "b"
}`,
			wantErr: ErrInvalidLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestReadoutDescriptor(t *testing.T) {
	src := `
texture "hdr" {
  width  = 16
  height = 8
  format = "rgba32float"
}
readout "inherit" {}
readout "crop" {
  width = 4
}
readout "standalone" {
  width  = 2
  height = 2
  format = "r8unorm"
}
readout "orphan" {}
slot_edge {
  from = "hdr"
  to   = "inherit"
}
slot_edge {
  from = "hdr"
  to   = "crop"
}
`
	f, err := Parse([]byte(src), "readouts.hcl")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		wantW      uint32
		wantH      uint32
		wantFormat gputypes.TextureFormat
		wantErr    bool
	}{
		{"inherit", 16, 8, gputypes.TextureFormatRGBA32Float, false},
		{"crop", 4, 8, gputypes.TextureFormatRGBA32Float, false},
		{"standalone", 2, 2, gputypes.TextureFormatR8Unorm, false},
		{"orphan", 0, 0, 0, true},
		{"missing", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := f.ReadoutDescriptor(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadoutDescriptor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if desc.Size.Width != tt.wantW || desc.Size.Height != tt.wantH || desc.Format != tt.wantFormat {
				t.Errorf("got %dx%d %v, want %dx%d %v",
					desc.Size.Width, desc.Size.Height, desc.Format, tt.wantW, tt.wantH, tt.wantFormat)
			}
		})
	}
}

func TestBuild_Executes(t *testing.T) {
	f, err := Parse([]byte(renderToFile), "render.hcl")
	if err != nil {
		t.Fatal(err)
	}

	var gotName, gotOutput string
	calls := 0
	g := graph.New()
	err = f.Build(g, func(name, output string) nodes.ReadFunc {
		gotName, gotOutput = name, output
		return func([]byte, resource.TextureDescriptor) { calls++ }
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if gotName != "save" || gotOutput != "out.png" {
		t.Errorf("factory called with %q, %q", gotName, gotOutput)
	}

	order, err := g.Order()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.Join(order, ","), "target,main,save"; got != want {
		t.Errorf("Order() = %s, want %s", got, want)
	}

	dev := recording.NewDevice()
	world := graph.MapWorld{"main": nodes.IdentityCamera()}
	if err := g.Execute(world, dev); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("readout ran %d times, want 1", calls)
	}
	if _, err := graph.NodeAs[*nodes.CameraNode](g, "main"); err != nil {
		t.Errorf("camera node: %v", err)
	}
}

func TestBuild_BadSlot(t *testing.T) {
	src := `
texture "a" {
  width  = 1
  height = 1
}
readout "b" {}
slot_edge {
  from      = "a"
  from_slot = "color"
  to        = "b"
}
`
	f, err := Parse([]byte(src), "slot.hcl")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Build(graph.New(), nil); !errors.Is(err, graph.ErrUnknownSlot) {
		t.Errorf("Build() error = %v, want ErrUnknownSlot", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.hcl")
	if err := os.WriteFile(path, []byte(renderToFile), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.SlotEdges) != 1 || len(f.NodeEdges) != 1 {
		t.Errorf("got %d slot edges, %d node edges, want 1, 1", len(f.SlotEdges), len(f.NodeEdges))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestParseTextureUsage(t *testing.T) {
	tests := []struct {
		names []string
		want  gputypes.TextureUsage
	}{
		{nil, gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc},
		{[]string{"copy_src"}, gputypes.TextureUsageCopySrc},
		{[]string{"COPY_DST", "texture_binding"}, gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding},
	}
	for _, tt := range tests {
		got, err := ParseTextureUsage(tt.names)
		if err != nil {
			t.Errorf("ParseTextureUsage(%v) error = %v", tt.names, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTextureUsage(%v) = %v, want %v", tt.names, got, tt.want)
		}
	}
}

func TestParse_Variables(t *testing.T) {
	src := `
texture "target" {
  width  = var.size
  height = var.size / 2
  format = var.format
}
`
	f, err := Parse([]byte(src), "vars.hcl",
		WithVariable("size", "128"),
		WithVariables(map[string]cty.Value{"format": cty.StringVal("r8unorm")}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	desc, err := f.Textures[0].Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if desc.Size.Width != 128 || desc.Size.Height != 64 || desc.Format != gputypes.TextureFormatR8Unorm {
		t.Errorf("got %dx%d %v, want 128x64 r8unorm", desc.Size.Width, desc.Size.Height, desc.Format)
	}

	if _, err := Parse([]byte(src), "vars.hcl"); err == nil {
		t.Error("Parse() without variables succeeded")
	}
}
