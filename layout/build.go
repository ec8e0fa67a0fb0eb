// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/nodes"
	"github.com/gogpu/rendergraph/resource"
)

// ReadoutFactory returns the callback for the readout block name. output
// is the block's output attribute and may be empty.
type ReadoutFactory func(name, output string) nodes.ReadFunc

// Descriptor returns the texture descriptor the block declares.
func (t *TextureBlock) Descriptor() (resource.TextureDescriptor, error) {
	format, err := parseFormatOrDefault(t.Format)
	if err != nil {
		return resource.TextureDescriptor{}, err
	}
	usage, err := ParseTextureUsage(t.Usage)
	if err != nil {
		return resource.TextureDescriptor{}, err
	}

	desc := resource.DefaultTextureDescriptor(uint32(t.Width), uint32(t.Height), format)
	desc.Label = t.Label
	if desc.Label == "" {
		desc.Label = t.Name
	}
	desc.Usage = usage
	if t.Depth > 1 {
		desc.Size.DepthOrArrayLayers = uint32(t.Depth)
		desc.Dimension = gputypes.TextureDimension3D
	}
	if t.SampleCount > 0 {
		desc.SampleCount = uint32(t.SampleCount)
	}
	if t.MipLevelCount > 0 {
		desc.MipLevelCount = uint32(t.MipLevelCount)
	}
	return desc, nil
}

// Texture returns the texture block named name.
func (f *File) Texture(name string) (*TextureBlock, bool) {
	for _, t := range f.Textures {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// ReadoutDescriptor resolves the descriptor of the readout block name:
// the block's own width, height and format over those of the texture
// wired into it by a slot_edge.
func (f *File) ReadoutDescriptor(name string) (resource.TextureDescriptor, error) {
	var r *ReadoutBlock
	for _, rb := range f.Readouts {
		if rb.Name == name {
			r = rb
			break
		}
	}
	if r == nil {
		return resource.TextureDescriptor{}, fmt.Errorf("%w: no readout %q", ErrInvalidLayout, name)
	}

	var desc resource.TextureDescriptor
	for _, e := range f.SlotEdges {
		if e.To != name {
			continue
		}
		if t, ok := f.Texture(e.From); ok {
			d, err := t.Descriptor()
			if err != nil {
				return resource.TextureDescriptor{}, err
			}
			desc = d
			break
		}
	}

	if r.Width > 0 {
		desc.Size.Width = uint32(r.Width)
	}
	if r.Height > 0 {
		desc.Size.Height = uint32(r.Height)
	}
	if r.Format != "" {
		format, err := ParseFormat(r.Format)
		if err != nil {
			return resource.TextureDescriptor{}, err
		}
		desc.Format = format
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 || desc.Format == gputypes.TextureFormatUndefined {
		return resource.TextureDescriptor{}, fmt.Errorf("%w: readout %q needs width, height and format or a source texture", ErrInvalidLayout, name)
	}
	if desc.Size.DepthOrArrayLayers == 0 {
		desc.Size.DepthOrArrayLayers = 1
	}
	return desc, nil
}

// Build adds the layout's nodes and edges to g. newRead may be nil, in
// which case readouts discard their data.
func (f *File) Build(g *graph.Graph, newRead ReadoutFactory) error {
	for _, t := range f.Textures {
		desc, err := t.Descriptor()
		if err != nil {
			return fmt.Errorf("texture %q: %w", t.Name, err)
		}
		if err := g.AddNode(t.Name, nodes.NewTextureNode(desc)); err != nil {
			return err
		}
	}
	for _, c := range f.Cameras {
		key := c.Key
		if key == "" {
			key = c.Name
		}
		if err := g.AddSystemNode(c.Name, nodes.NewCameraNode(key)); err != nil {
			return err
		}
	}
	for _, r := range f.Readouts {
		desc, err := f.ReadoutDescriptor(r.Name)
		if err != nil {
			return err
		}
		var fn nodes.ReadFunc
		if newRead != nil {
			fn = newRead(r.Name, r.Output)
		}
		if err := g.AddNode(r.Name, nodes.NewTextureReadoutNode(desc, fn)); err != nil {
			return err
		}
	}

	for _, e := range f.SlotEdges {
		if err := g.AddSlotEdge(e.From, slotLabel(e.FromSlot), e.To, slotLabel(e.ToSlot)); err != nil {
			return fmt.Errorf("slot_edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	for _, e := range f.NodeEdges {
		if err := g.AddNodeEdge(e.From, e.To); err != nil {
			return fmt.Errorf("node_edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return nil
}

func slotLabel(name string) graph.SlotLabel {
	if name == "" {
		return graph.SlotAt(0)
	}
	return graph.Slot(name)
}
