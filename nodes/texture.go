// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nodes

import (
	"fmt"

	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/resource"
)

// OutTexture is the output slot of a TextureNode.
const OutTexture = "texture"

var textureOutputs = []graph.SlotInfo{{Name: OutTexture, Kind: resource.KindTexture}}

// TextureNode owns one texture. The texture is created on the first Update
// and the same handle is published on OutTexture every frame after; the
// device sees exactly one CreateTexture for the node's lifetime.
type TextureNode struct {
	desc resource.TextureDescriptor
	tex  resource.TextureID // InvalidID while unallocated
}

// NewTextureNode returns an unallocated node for desc.
func NewTextureNode(desc resource.TextureDescriptor) *TextureNode {
	return &TextureNode{desc: desc}
}

// Input implements graph.Node.
func (*TextureNode) Input() []graph.SlotInfo { return nil }

// Output implements graph.Node.
func (*TextureNode) Output() []graph.SlotInfo { return textureOutputs }

// Update implements graph.Node.
func (n *TextureNode) Update(_ graph.World, rc resource.Context, _, out *graph.Slots) error {
	if n.tex == resource.InvalidID {
		id, err := rc.CreateTexture(n.desc)
		if err != nil {
			return fmt.Errorf("create texture: %w", err)
		}
		n.tex = id
	}
	out.Set(0, resource.TextureResource(n.tex))
	return nil
}

// Descriptor returns the descriptor the texture is created with.
func (n *TextureNode) Descriptor() resource.TextureDescriptor { return n.desc }

// Texture returns the allocated texture, if any.
func (n *TextureNode) Texture() (resource.TextureID, bool) {
	return n.tex, n.tex != resource.InvalidID
}

// Release destroys the texture. The next Update allocates a new one.
// Downstream nodes still holding the old handle must not use it.
func (n *TextureNode) Release(rc resource.Context) {
	if n.tex == resource.InvalidID {
		return
	}
	rc.DestroyTexture(n.tex)
	n.tex = resource.InvalidID
}
