// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/wgpu/hal"
)

// Context implements resource.Context using gogpu/wgpu/hal directly.
//
// Texture and buffer IDs map to hal resources owned by the Context. Copies
// are encoded, submitted and waited on before CopyTextureToBuffer returns,
// so a readout node sees its data in the same Update. Mapping is tracked
// on the Go side; the mapped range is fetched with hal.Queue.ReadBuffer.
//
// Thread Safety: Context is safe for concurrent use from multiple goroutines.
// All resource operations are protected by a mutex.
type Context struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	opts   options

	// ID generation, 0 is invalid
	nextID uint64

	// Resource tracking maps resource IDs to hal resources
	textures map[resource.TextureID]*halTexture
	buffers  map[resource.BufferID]*halBuffer

	destroyed bool
}

type halTexture struct {
	raw  hal.Texture
	desc resource.TextureDescriptor
}

type halBuffer struct {
	raw    hal.Buffer
	info   resource.BufferInfo
	mapped bool
	// scratch receives mapped reads and is reused across frames.
	scratch []byte
}

// New creates a Context wrapping the given device and queue. The caller
// keeps ownership of device and queue; Destroy releases only the resources
// created through the Context.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		device:   device,
		queue:    queue,
		opts:     o,
		textures: make(map[resource.TextureID]*halTexture),
		buffers:  make(map[resource.BufferID]*halBuffer),
	}, nil
}

// NewFromProvider creates a Context on a shared GPU device from an external
// provider (e.g., gogpu). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return New(device, queue, opts...)
}

// Ensure Context implements resource.Context.
var _ resource.Context = (*Context)(nil)

// newID generates a unique resource ID. Callers hold mu.
func (c *Context) newID() uint64 {
	c.nextID++
	return c.nextID
}

// === Texture Management ===

// CreateTexture creates a GPU texture.
func (c *Context) CreateTexture(desc resource.TextureDescriptor) (resource.TextureID, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return resource.InvalidID, fmt.Errorf("texture dimensions must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return resource.InvalidID, ErrDestroyed
	}

	raw, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          extent(desc.Size.Width, desc.Size.Height, desc.Depth()),
		MipLevelCount: max(desc.MipLevelCount, 1),
		SampleCount:   max(desc.SampleCount, 1),
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return resource.InvalidID, fmt.Errorf("failed to create texture: %w", err)
	}

	id := resource.TextureID(c.newID())
	c.textures[id] = &halTexture{raw: raw, desc: desc}
	c.opts.log().Debug("native: texture created",
		slog.Uint64("id", uint64(id)),
		slog.String("label", desc.Label),
		slog.Int("width", int(desc.Size.Width)),
		slog.Int("height", int(desc.Size.Height)))
	return id, nil
}

// DestroyTexture releases a GPU texture.
func (c *Context) DestroyTexture(id resource.TextureID) {
	c.mu.Lock()
	t, ok := c.textures[id]
	if ok {
		delete(c.textures, id)
	}
	c.mu.Unlock()

	if ok {
		c.device.DestroyTexture(t.raw)
	}
}

// === Buffer Management ===

// CreateBuffer creates a GPU buffer.
func (c *Context) CreateBuffer(info resource.BufferInfo) (resource.BufferID, error) {
	if info.Size == 0 {
		return resource.InvalidID, fmt.Errorf("buffer size must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return resource.InvalidID, ErrDestroyed
	}

	raw, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label:            info.Label,
		Size:             info.Size,
		Usage:            info.Usage,
		MappedAtCreation: info.MappedAtCreation,
	})
	if err != nil {
		return resource.InvalidID, fmt.Errorf("failed to create buffer: %w", err)
	}

	id := resource.BufferID(c.newID())
	c.buffers[id] = &halBuffer{raw: raw, info: info, mapped: info.MappedAtCreation}
	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (c *Context) DestroyBuffer(id resource.BufferID) {
	c.mu.Lock()
	b, ok := c.buffers[id]
	if ok {
		delete(c.buffers, id)
	}
	c.mu.Unlock()

	if ok {
		c.device.DestroyBuffer(b.raw)
	}
}

// WriteBuffer writes data to a buffer through the queue.
func (c *Context) WriteBuffer(id resource.BufferID, offset uint64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.buffer(id)
	if err != nil {
		return err
	}
	if b.info.Usage&gputypes.BufferUsageCopyDst == 0 {
		return fmt.Errorf("%w: write target lacks CopyDst", resource.ErrInvalidUsage)
	}
	if offset+uint64(len(data)) > b.info.Size {
		return fmt.Errorf("%w: write of %d bytes at %d into %d", resource.ErrBufferTooSmall, len(data), offset, b.info.Size)
	}
	if len(data) > 0 {
		c.queue.WriteBuffer(b.raw, offset, data)
	}
	return nil
}

// === Transfers ===

// AlignedTextureSize rounds width up to the 256-texel copy alignment.
func (c *Context) AlignedTextureSize(width int) int {
	return resource.AlignTo(width, resource.CopyPitchAlignment)
}

// CopyTextureToBuffer encodes the copy, submits it and waits for the GPU.
func (c *Context) CopyTextureToBuffer(cp resource.TextureBufferCopy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.textures[cp.Texture]
	if !ok {
		return fmt.Errorf("%w: %d", resource.ErrUnknownTexture, cp.Texture)
	}
	b, err := c.buffer(cp.Buffer)
	if err != nil {
		return err
	}
	if b.mapped {
		return fmt.Errorf("native: copy into mapped buffer %d", cp.Buffer)
	}
	if cp.BytesPerRow%resource.CopyPitchAlignment != 0 && cp.Size.Height > 1 {
		return fmt.Errorf("native: bytes per row %d not aligned to %d", cp.BytesPerRow, resource.CopyPitchAlignment)
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "readout_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("readout_copy"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	// Render targets must leave the attachment layout before a copy.
	// This is a no-op on Metal, GLES, software, and noop backends.
	renderTarget := t.desc.Usage&gputypes.TextureUsageRenderAttachment != 0
	if renderTarget {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: t.raw,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
	}

	depth := cp.Size.DepthOrArrayLayers
	if depth == 0 {
		depth = 1
	}
	encoder.CopyTextureToBuffer(t.raw, b.raw, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       cp.Offset,
			BytesPerRow:  cp.BytesPerRow,
			RowsPerImage: cp.Size.Height,
		},
		TextureBase: hal.ImageCopyTexture{
			Texture:  t.raw,
			MipLevel: cp.MipLevel,
			Origin:   hal.Origin3D{X: cp.Origin[0], Y: cp.Origin[1], Z: cp.Origin[2]},
		},
		Size: extent(cp.Size.Width, cp.Size.Height, depth),
	}})

	if renderTarget {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: t.raw,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	return c.submitAndWait(cmdBuf)
}

// submitAndWait submits cmdBuf and blocks until the GPU has finished it.
func (c *Context) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := c.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer c.device.DestroyFence(fence)

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := c.device.Wait(fence, 1, c.opts.waitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("%w after %v", ErrGPUTimeout, c.opts.waitTimeout)
	}
	return nil
}

// === Mapping ===

// MapBuffer marks a buffer as mapped. The copy that filled it has already
// completed, so no further synchronization is needed.
func (c *Context) MapBuffer(id resource.BufferID, mode gputypes.MapMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.buffer(id)
	if err != nil {
		return err
	}
	if b.mapped {
		return fmt.Errorf("%w: %d", resource.ErrBufferAlreadyMapped, id)
	}
	need := gputypes.BufferUsageMapRead
	if mode == gputypes.MapModeWrite {
		need = gputypes.BufferUsageMapWrite
	}
	if b.info.Usage&need == 0 {
		return fmt.Errorf("%w: buffer %d cannot be mapped with mode %v", resource.ErrInvalidUsage, id, mode)
	}
	b.mapped = true
	return nil
}

// ReadMappedBuffer reads [offset, offset+size) of a mapped buffer and
// passes it to fn.
func (c *Context) ReadMappedBuffer(id resource.BufferID, offset, size uint64, fn func(data []byte)) error {
	c.mu.Lock()
	b, err := c.buffer(id)
	if err == nil && !b.mapped {
		err = fmt.Errorf("%w: %d", resource.ErrBufferNotMapped, id)
	}
	if err == nil && offset+size > b.info.Size {
		err = fmt.Errorf("%w: read [%d, %d) of %d", resource.ErrBufferTooSmall, offset, offset+size, b.info.Size)
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if uint64(cap(b.scratch)) < size {
		b.scratch = make([]byte, size)
	}
	data := b.scratch[:size]
	if err := c.queue.ReadBuffer(b.raw, offset, data); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("readback: %w", err)
	}
	c.mu.Unlock()

	fn(data)
	return nil
}

// UnmapBuffer clears the mapped state.
func (c *Context) UnmapBuffer(id resource.BufferID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.buffer(id)
	if err != nil {
		return err
	}
	if !b.mapped {
		return fmt.Errorf("%w: %d", resource.ErrBufferNotMapped, id)
	}
	b.mapped = false
	return nil
}

// === Lifecycle ===

// Live returns the number of live textures and buffers.
func (c *Context) Live() (textures, buffers int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures), len(c.buffers)
}

// Destroy releases every texture and buffer created through the Context.
// The device and queue are left to their owner.
//
// This method is idempotent - calling it multiple times is safe.
func (c *Context) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	textures, buffers := c.textures, c.buffers
	c.textures = make(map[resource.TextureID]*halTexture)
	c.buffers = make(map[resource.BufferID]*halBuffer)
	c.mu.Unlock()

	for _, t := range textures {
		c.device.DestroyTexture(t.raw)
	}
	for _, b := range buffers {
		c.device.DestroyBuffer(b.raw)
	}
	if log := c.opts.log(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("native: context destroyed",
			slog.Int("textures", len(textures)),
			slog.Int("buffers", len(buffers)))
	}
}

func (c *Context) buffer(id resource.BufferID) (*halBuffer, error) {
	b, ok := c.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", resource.ErrUnknownBuffer, id)
	}
	return b, nil
}

func extent(w, h, d uint32) hal.Extent3D {
	return hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: d}
}
