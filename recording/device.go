// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/resource"
)

// ErrOutOfMemory is returned when an allocation exceeds the memory limit.
var ErrOutOfMemory = errors.New("recording: out of device memory")

// Device is a resource.Context backed by host memory.
//
// Textures are stored with tightly packed rows (mip level 0 only), buffers
// as byte slices. Every call is appended to the command log before it is
// validated, so tests can assert exactly which device operations a node
// issued. The WebGPU validation rules that matter for readback are enforced:
// copy destinations need CopyDst, map-read buffers may only combine MapRead
// with CopyDst, reads require a mapped buffer, and copy pitches must hold a
// full row and honor the alignment.
//
// Device is safe for concurrent use; resource.Context only requires
// sequential use.
type Device struct {
	mu   sync.Mutex
	opts deviceOptions

	nextID   uint64
	used     uint64
	textures map[resource.TextureID]*texture
	buffers  map[resource.BufferID]*buffer
	commands []Command
}

type texture struct {
	desc resource.TextureDescriptor
	data []byte
}

type buffer struct {
	info   resource.BufferInfo
	data   []byte
	mapped bool
	mode   gputypes.MapMode
}

// NewDevice creates an empty device.
func NewDevice(opts ...DeviceOption) *Device {
	o := defaultDeviceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{
		opts:     o,
		textures: make(map[resource.TextureID]*texture),
		buffers:  make(map[resource.BufferID]*buffer),
		commands: make([]Command, 0, 64),
	}
}

// Ensure Device implements resource.Context.
var _ resource.Context = (*Device)(nil)

// CreateTexture implements resource.Context.
func (d *Device) CreateTexture(desc resource.TextureDescriptor) (resource.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := CreateTextureCommand{Desc: desc}
	idx := d.record(cmd)

	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return resource.InvalidID, fmt.Errorf("recording: invalid texture size %dx%d", desc.Size.Width, desc.Size.Height)
	}
	size := uint64(desc.Volume()) * uint64(desc.PixelSize())
	if err := d.reserve(size); err != nil {
		return resource.InvalidID, err
	}

	id := resource.TextureID(d.newID())
	d.textures[id] = &texture{desc: desc, data: make([]byte, size)}
	cmd.ID = id
	d.commands[idx] = cmd
	return id, nil
}

// DestroyTexture implements resource.Context.
func (d *Device) DestroyTexture(id resource.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(DestroyTextureCommand{ID: id})
	if t, ok := d.textures[id]; ok {
		d.used -= uint64(len(t.data))
		delete(d.textures, id)
	}
}

// CreateBuffer implements resource.Context.
func (d *Device) CreateBuffer(info resource.BufferInfo) (resource.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := CreateBufferCommand{Info: info}
	idx := d.record(cmd)

	if info.Size == 0 {
		return resource.InvalidID, fmt.Errorf("recording: buffer size must be positive")
	}
	if info.Usage&gputypes.BufferUsageMapRead != 0 &&
		info.Usage&^(gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst) != 0 {
		return resource.InvalidID, fmt.Errorf("%w: MapRead may only be combined with CopyDst", resource.ErrInvalidUsage)
	}
	if err := d.reserve(info.Size); err != nil {
		return resource.InvalidID, err
	}

	id := resource.BufferID(d.newID())
	b := &buffer{info: info, data: make([]byte, info.Size)}
	if info.MappedAtCreation {
		b.mapped = true
		b.mode = gputypes.MapModeWrite
	}
	d.buffers[id] = b
	cmd.ID = id
	d.commands[idx] = cmd
	return id, nil
}

// DestroyBuffer implements resource.Context.
func (d *Device) DestroyBuffer(id resource.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(DestroyBufferCommand{ID: id})
	if b, ok := d.buffers[id]; ok {
		d.used -= uint64(len(b.data))
		delete(d.buffers, id)
	}
}

// WriteBuffer implements resource.Context.
func (d *Device) WriteBuffer(id resource.BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(WriteBufferCommand{ID: id, Offset: offset, Size: uint64(len(data))})
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	if b.info.Usage&gputypes.BufferUsageCopyDst == 0 {
		return fmt.Errorf("%w: write target lacks CopyDst", resource.ErrInvalidUsage)
	}
	if b.mapped {
		return fmt.Errorf("recording: write to mapped buffer %d", id)
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("%w: write of %d bytes at %d into %d", resource.ErrBufferTooSmall, len(data), offset, len(b.data))
	}
	copy(b.data[offset:], data)
	return nil
}

// AlignedTextureSize implements resource.Context.
func (d *Device) AlignedTextureSize(width int) int {
	return resource.AlignTo(width, d.opts.alignment)
}

// CopyTextureToBuffer implements resource.Context.
func (d *Device) CopyTextureToBuffer(c resource.TextureBufferCopy) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(CopyTextureToBufferCommand{Copy: c})

	t, ok := d.textures[c.Texture]
	if !ok {
		return fmt.Errorf("%w: %d", resource.ErrUnknownTexture, c.Texture)
	}
	b, err := d.buffer(c.Buffer)
	if err != nil {
		return err
	}
	if t.desc.Usage&gputypes.TextureUsageCopySrc == 0 {
		return fmt.Errorf("%w: copy source lacks CopySrc", resource.ErrInvalidUsage)
	}
	if b.info.Usage&gputypes.BufferUsageCopyDst == 0 {
		return fmt.Errorf("%w: copy destination lacks CopyDst", resource.ErrInvalidUsage)
	}
	if b.mapped {
		return fmt.Errorf("recording: copy into mapped buffer %d", c.Buffer)
	}
	if c.MipLevel != 0 {
		return fmt.Errorf("recording: mip level %d is not stored", c.MipLevel)
	}
	ps, ok := resource.PixelSize(t.desc.Format)
	if !ok {
		return fmt.Errorf("%w: %v", resource.ErrUnsupportedFormat, t.desc.Format)
	}

	w, h, depth := int(c.Size.Width), int(c.Size.Height), int(c.Size.DepthOrArrayLayers)
	if depth == 0 {
		depth = 1
	}
	tw, th, td := int(t.desc.Size.Width), int(t.desc.Size.Height), int(t.desc.Depth())
	ox, oy, oz := int(c.Origin[0]), int(c.Origin[1]), int(c.Origin[2])
	if ox+w > tw || oy+h > th || oz+depth > td {
		return fmt.Errorf("recording: copy region exceeds texture %dx%dx%d", tw, th, td)
	}

	row := w * ps
	pitch := int(c.BytesPerRow)
	rows := h * depth
	if pitch < row {
		return fmt.Errorf("recording: bytes per row %d smaller than row %d", pitch, row)
	}
	if rows > 1 && pitch%d.opts.alignment != 0 {
		return fmt.Errorf("recording: bytes per row %d not aligned to %d", pitch, d.opts.alignment)
	}
	if rows == 0 {
		return nil
	}
	need := c.Offset + uint64(pitch)*uint64(rows-1) + uint64(row)
	if need > uint64(len(b.data)) {
		return fmt.Errorf("%w: copy needs %d bytes, buffer has %d", resource.ErrBufferTooSmall, need, len(b.data))
	}

	for z := 0; z < depth; z++ {
		for y := 0; y < h; y++ {
			src := (((oz+z)*th+oy+y)*tw + ox) * ps
			dst := int(c.Offset) + (z*h+y)*pitch
			copy(b.data[dst:dst+row], t.data[src:src+row])
		}
	}
	return nil
}

// MapBuffer implements resource.Context.
func (d *Device) MapBuffer(id resource.BufferID, mode gputypes.MapMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(MapBufferCommand{ID: id, Mode: mode})
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	if b.mapped {
		return fmt.Errorf("%w: %d", resource.ErrBufferAlreadyMapped, id)
	}
	switch mode {
	case gputypes.MapModeRead:
		if b.info.Usage&gputypes.BufferUsageMapRead == 0 {
			return fmt.Errorf("%w: map for read lacks MapRead", resource.ErrInvalidUsage)
		}
	case gputypes.MapModeWrite:
		if b.info.Usage&gputypes.BufferUsageMapWrite == 0 {
			return fmt.Errorf("%w: map for write lacks MapWrite", resource.ErrInvalidUsage)
		}
	default:
		return fmt.Errorf("recording: invalid map mode %v", mode)
	}
	b.mapped = true
	b.mode = mode
	return nil
}

// ReadMappedBuffer implements resource.Context.
func (d *Device) ReadMappedBuffer(id resource.BufferID, offset, size uint64, fn func(data []byte)) error {
	d.mu.Lock()
	d.record(ReadMappedBufferCommand{ID: id, Offset: offset, Size: size})
	b, err := d.buffer(id)
	if err == nil && !b.mapped {
		err = fmt.Errorf("%w: %d", resource.ErrBufferNotMapped, id)
	}
	if err == nil && offset+size > uint64(len(b.data)) {
		err = fmt.Errorf("%w: read [%d, %d) of %d", resource.ErrBufferTooSmall, offset, offset+size, len(b.data))
	}
	if err != nil {
		d.mu.Unlock()
		return err
	}
	data := b.data[offset : offset+size]
	d.mu.Unlock()

	// fn runs unlocked so it may inspect the device.
	fn(data)
	return nil
}

// UnmapBuffer implements resource.Context.
func (d *Device) UnmapBuffer(id resource.BufferID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(UnmapBufferCommand{ID: id})
	b, err := d.buffer(id)
	if err != nil {
		return err
	}
	if !b.mapped {
		return fmt.Errorf("%w: %d", resource.ErrBufferNotMapped, id)
	}
	b.mapped = false
	return nil
}

// WriteTexture replaces the contents of mip level 0. data must be tightly
// packed and cover the full texture.
func (d *Device) WriteTexture(id resource.TextureID, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", resource.ErrUnknownTexture, id)
	}
	if len(data) != len(t.data) {
		return fmt.Errorf("recording: texture %d holds %d bytes, got %d", id, len(t.data), len(data))
	}
	copy(t.data, data)
	return nil
}

// Texture returns the descriptor of a live texture.
func (d *Device) Texture(id resource.TextureID) (resource.TextureDescriptor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return resource.TextureDescriptor{}, false
	}
	return t.desc, true
}

// Buffer returns the creation info and a copy of the contents of a live buffer.
func (d *Device) Buffer(id resource.BufferID) (resource.BufferInfo, []byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return resource.BufferInfo{}, nil, false
	}
	return b.info, append([]byte(nil), b.data...), true
}

// Mapped reports whether a live buffer is currently mapped.
func (d *Device) Mapped(id resource.BufferID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	return ok && b.mapped
}

// Live returns the number of live textures and buffers.
func (d *Device) Live() (textures, buffers int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures), len(d.buffers)
}

// Commands returns a copy of the command log.
func (d *Device) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// Count returns how many commands of type t were recorded.
func (d *Device) Count(t CommandType) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, c := range d.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset clears the command log. Resources are kept.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = d.commands[:0]
}

// record appends c and returns its index so it can be completed later.
func (d *Device) record(c Command) int {
	d.commands = append(d.commands, c)
	return len(d.commands) - 1
}

func (d *Device) newID() uint64 {
	d.nextID++
	return d.nextID
}

func (d *Device) reserve(size uint64) error {
	if d.opts.memoryLimit > 0 && d.used+size > d.opts.memoryLimit {
		return fmt.Errorf("%w: %d bytes in use, %d requested, limit %d", ErrOutOfMemory, d.used, size, d.opts.memoryLimit)
	}
	d.used += size
	return nil
}

func (d *Device) buffer(id resource.BufferID) (*buffer, error) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", resource.ErrUnknownBuffer, id)
	}
	return b, nil
}
