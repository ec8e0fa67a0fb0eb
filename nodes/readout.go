// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nodes

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/resource"
)

// InTexture is the input slot of a TextureReadoutNode.
const InTexture = "texture"

// ErrInputNotTexture is returned when the readout input carries a
// non-texture handle.
var ErrInputNotTexture = errors.New("nodes: readout input is not a texture")

var readoutInputs = []graph.SlotInfo{{Name: InTexture, Kind: resource.KindTexture}}

// ReadFunc receives the bytes of one readout. Rows in data are padded to
// the device's aligned width (see resource.StripRowPadding); desc is the
// descriptor the readout node was built with. data is only valid for the
// duration of the call.
type ReadFunc func(data []byte, desc resource.TextureDescriptor)

// TextureReadoutNode copies its input texture to a host-visible staging
// buffer each frame and invokes a callback with the contents.
//
// The staging buffer is created on the first frame that has an input and is
// reused for every frame after. It is sized for rows padded to the device's
// copy alignment. A frame without an input texture does nothing.
type TextureReadoutNode struct {
	desc resource.TextureDescriptor
	fn   ReadFunc

	staging resource.BufferID
	size    uint64
	pitch   uint32
}

// NewTextureReadoutNode returns a readout node for textures described by
// desc. fn may be nil, in which case the data is read and discarded.
func NewTextureReadoutNode(desc resource.TextureDescriptor, fn ReadFunc) *TextureReadoutNode {
	return &TextureReadoutNode{desc: desc, fn: fn}
}

// Input implements graph.Node.
func (*TextureReadoutNode) Input() []graph.SlotInfo { return readoutInputs }

// Output implements graph.Node.
func (*TextureReadoutNode) Output() []graph.SlotInfo { return nil }

// Update implements graph.Node.
func (n *TextureReadoutNode) Update(_ graph.World, rc resource.Context, in, _ *graph.Slots) error {
	id, ok := in.Get(0)
	if !ok {
		rendergraph.Logger().Debug("rendergraph: readout idle, no input texture")
		return nil
	}
	tex, ok := id.Texture()
	if !ok {
		return fmt.Errorf("%w: got %v", ErrInputNotTexture, id)
	}

	if err := n.ensureStaging(rc); err != nil {
		return err
	}

	err := rc.CopyTextureToBuffer(resource.TextureBufferCopy{
		Texture:     tex,
		Buffer:      n.staging,
		BytesPerRow: n.pitch,
		Size:        n.extent(),
	})
	if err != nil {
		return fmt.Errorf("copy to staging: %w", err)
	}

	if err := rc.MapBuffer(n.staging, gputypes.MapModeRead); err != nil {
		return fmt.Errorf("map staging: %w", err)
	}
	readErr := rc.ReadMappedBuffer(n.staging, 0, n.size, func(data []byte) {
		if n.fn != nil {
			n.fn(data, n.desc)
		}
	})
	if readErr != nil {
		readErr = fmt.Errorf("read staging: %w", readErr)
	}
	if err := rc.UnmapBuffer(n.staging); err != nil {
		return errors.Join(readErr, fmt.Errorf("unmap staging: %w", err))
	}
	return readErr
}

// ensureStaging creates the staging buffer on first use.
func (n *TextureReadoutNode) ensureStaging(rc resource.Context) error {
	if n.staging != resource.InvalidID {
		return nil
	}
	ps, ok := resource.PixelSize(n.desc.Format)
	if !ok {
		return fmt.Errorf("%w: %v", resource.ErrUnsupportedFormat, n.desc.Format)
	}

	aligned := rc.AlignedTextureSize(int(n.desc.Size.Width))
	pitch := aligned * ps
	size := resource.StagingSize(n.desc, aligned)

	id, err := rc.CreateBuffer(resource.BufferInfo{
		Label: n.desc.Label + " readout",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	n.staging = id
	n.size = size
	n.pitch = uint32(pitch)
	return nil
}

func (n *TextureReadoutNode) extent() gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              n.desc.Size.Width,
		Height:             n.desc.Size.Height,
		DepthOrArrayLayers: n.desc.Depth(),
	}
}

// Descriptor returns the descriptor passed to the callback.
func (n *TextureReadoutNode) Descriptor() resource.TextureDescriptor { return n.desc }

// StagingBuffer returns the staging buffer and its size once allocated.
func (n *TextureReadoutNode) StagingBuffer() (resource.BufferID, uint64, bool) {
	return n.staging, n.size, n.staging != resource.InvalidID
}

// Release destroys the staging buffer.
func (n *TextureReadoutNode) Release(rc resource.Context) {
	if n.staging == resource.InvalidID {
		return
	}
	rc.DestroyBuffer(n.staging)
	n.staging = resource.InvalidID
	n.size = 0
	n.pitch = 0
}
