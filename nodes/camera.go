// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nodes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/resource"
)

// OutCamera is the output slot of a CameraNode.
const OutCamera = "camera"

// cameraUniformSize is one column-major 4x4 float32 matrix.
const cameraUniformSize = 16 * 4

// ErrNotCamera is returned when the World entry for a camera is of another type.
var ErrNotCamera = errors.New("nodes: world entry is not a camera")

var cameraOutputs = []graph.SlotInfo{{Name: OutCamera, Kind: resource.KindBuffer}}

// Camera is the scene state a CameraNode reads from the World.
type Camera struct {
	// ViewProjection is a column-major 4x4 matrix.
	ViewProjection [16]float32
}

// IdentityCamera returns a camera with an identity view-projection.
func IdentityCamera() Camera {
	return Camera{ViewProjection: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// CameraNode uploads the camera registered in the World under its key to a
// uniform buffer and publishes the buffer on OutCamera. Without a camera the
// node idles and publishes nothing new.
//
// CameraNode must be added with graph.AddSystemNode so Prepare runs.
type CameraNode struct {
	key string

	cam     Camera
	present bool
	buf     resource.BufferID
	scratch [cameraUniformSize]byte
}

// NewCameraNode returns a camera node reading the World entry named key.
// The entry may be a Camera or a *Camera.
func NewCameraNode(key string) *CameraNode {
	return &CameraNode{key: key}
}

// Input implements graph.Node.
func (*CameraNode) Input() []graph.SlotInfo { return nil }

// Output implements graph.Node.
func (*CameraNode) Output() []graph.SlotInfo { return cameraOutputs }

// Prepare implements graph.SystemNode.
func (n *CameraNode) Prepare(w graph.World) error {
	n.present = false
	v, ok := w.Lookup(n.key)
	if !ok {
		return nil
	}
	switch c := v.(type) {
	case Camera:
		n.cam = c
	case *Camera:
		if c == nil {
			return nil
		}
		n.cam = *c
	default:
		return fmt.Errorf("%w: %q is %T", ErrNotCamera, n.key, v)
	}
	n.present = true
	return nil
}

// Update implements graph.Node.
func (n *CameraNode) Update(_ graph.World, rc resource.Context, _, out *graph.Slots) error {
	if !n.present {
		return nil
	}
	if n.buf == resource.InvalidID {
		id, err := rc.CreateBuffer(resource.BufferInfo{
			Label: n.key + " uniforms",
			Size:  cameraUniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create camera buffer: %w", err)
		}
		n.buf = id
	}

	for i, f := range n.cam.ViewProjection {
		binary.LittleEndian.PutUint32(n.scratch[i*4:], math.Float32bits(f))
	}
	if err := rc.WriteBuffer(n.buf, 0, n.scratch[:]); err != nil {
		return fmt.Errorf("write camera buffer: %w", err)
	}
	out.Set(0, resource.BufferResource(n.buf))
	return nil
}

// Buffer returns the uniform buffer once allocated.
func (n *CameraNode) Buffer() (resource.BufferID, bool) {
	return n.buf, n.buf != resource.InvalidID
}

// Release destroys the uniform buffer.
func (n *CameraNode) Release(rc resource.Context) {
	if n.buf == resource.InvalidID {
		return
	}
	rc.DestroyBuffer(n.buf)
	n.buf = resource.InvalidID
}
