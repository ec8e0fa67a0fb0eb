// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrInvalidLayout is returned for layouts that decode but do not describe
// a valid graph.
var ErrInvalidLayout = errors.New("layout: invalid layout")

// File is a decoded layout file.
type File struct {
	Textures  []*TextureBlock  `hcl:"texture,block"`
	Cameras   []*CameraBlock   `hcl:"camera,block"`
	Readouts  []*ReadoutBlock  `hcl:"readout,block"`
	SlotEdges []*SlotEdgeBlock `hcl:"slot_edge,block"`
	NodeEdges []*NodeEdgeBlock `hcl:"node_edge,block"`
}

// TextureBlock declares a texture-producing node.
type TextureBlock struct {
	Name          string   `hcl:"name,label"`
	Label         string   `hcl:"label,optional"`
	Width         int      `hcl:"width"`
	Height        int      `hcl:"height"`
	Depth         int      `hcl:"depth,optional"`
	Format        string   `hcl:"format,optional"`
	Usage         []string `hcl:"usage,optional"`
	SampleCount   int      `hcl:"sample_count,optional"`
	MipLevelCount int      `hcl:"mip_level_count,optional"`
}

// CameraBlock declares a camera system node. Key is the World entry it
// reads and defaults to the block name.
type CameraBlock struct {
	Name string `hcl:"name,label"`
	Key  string `hcl:"key,optional"`
}

// ReadoutBlock declares a texture readout node. Zero fields are filled from
// the texture wired into the readout.
type ReadoutBlock struct {
	Name   string `hcl:"name,label"`
	Format string `hcl:"format,optional"`
	Width  int    `hcl:"width,optional"`
	Height int    `hcl:"height,optional"`
	Output string `hcl:"output,optional"`
}

// SlotEdgeBlock connects an output slot to an input slot.
type SlotEdgeBlock struct {
	From     string `hcl:"from"`
	FromSlot string `hcl:"from_slot,optional"`
	To       string `hcl:"to"`
	ToSlot   string `hcl:"to_slot,optional"`
}

// NodeEdgeBlock orders two nodes without passing a resource.
type NodeEdgeBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// Parse decodes a layout from src. filename is used in diagnostics.
func Parse(src []byte, filename string, opts ...Option) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse layout %s: %w", filename, diags)
	}
	return decode(hclFile.Body, filename, opts)
}

// Load reads and decodes the layout file at path.
func Load(path string, opts ...Option) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, diags)
	}
	return decode(hclFile.Body, path, opts)
}

func decode(body hcl.Body, filename string, opts []Option) (*File, error) {
	o := newOptions(opts)
	var f File
	if diags := gohcl.DecodeBody(body, o.evalContext(), &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode layout %s: %w", filename, diags)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &f, nil
}

// validate checks what the schema cannot: positive sizes, known formats and
// usages, unique names, and edges between declared nodes.
func (f *File) validate() error {
	var errs []error
	names := make(map[string]string)
	declare := func(kind, name string) {
		if prev, ok := names[name]; ok {
			errs = append(errs, fmt.Errorf("%w: %s %q redeclares %s %q", ErrInvalidLayout, kind, name, prev, name))
			return
		}
		names[name] = kind
	}

	for _, t := range f.Textures {
		declare("texture", t.Name)
		if t.Width <= 0 || t.Height <= 0 || t.Depth < 0 {
			errs = append(errs, fmt.Errorf("%w: texture %q has size %dx%dx%d", ErrInvalidLayout, t.Name, t.Width, t.Height, t.Depth))
		}
		if _, err := parseFormatOrDefault(t.Format); err != nil {
			errs = append(errs, fmt.Errorf("texture %q: %w", t.Name, err))
		}
		if _, err := ParseTextureUsage(t.Usage); err != nil {
			errs = append(errs, fmt.Errorf("texture %q: %w", t.Name, err))
		}
	}
	for _, c := range f.Cameras {
		declare("camera", c.Name)
	}
	for _, r := range f.Readouts {
		declare("readout", r.Name)
		if r.Width < 0 || r.Height < 0 {
			errs = append(errs, fmt.Errorf("%w: readout %q has size %dx%d", ErrInvalidLayout, r.Name, r.Width, r.Height))
		}
		if r.Format != "" {
			if _, err := ParseFormat(r.Format); err != nil {
				errs = append(errs, fmt.Errorf("readout %q: %w", r.Name, err))
			}
		}
	}

	known := func(edge, name string) {
		if _, ok := names[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s references undeclared node %q", ErrInvalidLayout, edge, name))
		}
	}
	for _, e := range f.SlotEdges {
		known("slot_edge", e.From)
		known("slot_edge", e.To)
	}
	for _, e := range f.NodeEdges {
		known("node_edge", e.From)
		known("node_edge", e.To)
	}
	return errors.Join(errs...)
}
