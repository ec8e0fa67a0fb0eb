// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nodes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/graph"
	"github.com/gogpu/rendergraph/recording"
	"github.com/gogpu/rendergraph/resource"
)

// failingRead wraps a device whose ReadMappedBuffer always fails.
type failingRead struct {
	*recording.Device
}

var errRead = errors.New("read failed")

func (failingRead) ReadMappedBuffer(resource.BufferID, uint64, uint64, func([]byte)) error {
	return errRead
}

func rgba(w, h uint32) resource.TextureDescriptor {
	return resource.DefaultTextureDescriptor(w, h, gputypes.TextureFormatRGBA8Unorm)
}

// inputFor returns readout inputs holding a freshly created texture.
func inputFor(t *testing.T, dev *recording.Device, desc resource.TextureDescriptor) *graph.Slots {
	t.Helper()
	tex, err := dev.CreateTexture(desc)
	if err != nil {
		t.Fatal(err)
	}
	in := graph.NewSlots(readoutInputs)
	in.Set(0, resource.TextureResource(tex))
	return in
}

func TestReadout_AbsentInputIdles(t *testing.T) {
	dev := recording.NewDevice()
	calls := 0
	n := NewTextureReadoutNode(rgba(8, 8), func([]byte, resource.TextureDescriptor) { calls++ })

	for frame := 0; frame < 2; frame++ {
		if err := n.Update(graph.EmptyWorld{}, dev, graph.NewSlots(n.Input()), graph.NewSlots(nil)); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}

	if cmds := dev.Commands(); len(cmds) != 0 {
		t.Errorf("got %d device calls, want 0: %v", len(cmds), cmds)
	}
	if calls != 0 {
		t.Errorf("callback ran %d times, want 0", calls)
	}
	if _, _, ok := n.StagingBuffer(); ok {
		t.Error("staging buffer allocated without input")
	}
}

func TestReadout_WrongKindInput(t *testing.T) {
	dev := recording.NewDevice()
	n := NewTextureReadoutNode(rgba(8, 8), nil)

	// Kind checks in Slots.Set guard graph-built inputs; this simulates a
	// caller that builds the table by hand.
	loose := graph.NewSlots([]graph.SlotInfo{{Name: InTexture, Kind: resource.KindBuffer}})
	loose.Set(0, resource.BufferResource(1))

	err := n.Update(graph.EmptyWorld{}, dev, loose, graph.NewSlots(nil))
	if !errors.Is(err, ErrInputNotTexture) {
		t.Fatalf("got %v, want ErrInputNotTexture", err)
	}
	if got := dev.Count(recording.CmdCreateBuffer); got != 0 {
		t.Errorf("got %d CreateBuffer calls, want 0", got)
	}
}

func TestReadout_UnsupportedFormat(t *testing.T) {
	dev := recording.NewDevice()
	desc := resource.DefaultTextureDescriptor(8, 8, gputypes.TextureFormatDepth24PlusStencil8)
	n := NewTextureReadoutNode(desc, nil)
	in := inputFor(t, dev, desc)

	err := n.Update(graph.EmptyWorld{}, dev, in, graph.NewSlots(nil))
	if !errors.Is(err, resource.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	if got := dev.Count(recording.CmdCreateBuffer); got != 0 {
		t.Errorf("got %d CreateBuffer calls, want 0", got)
	}
}

func TestReadout_StagingSize(t *testing.T) {
	tests := []struct {
		name     string
		align    int
		w, h     uint32
		wantSize uint64
	}{
		{"aligned width", 256, 256, 4, 256 * 4 * 4},
		{"padded width", 256, 3, 2, 256 * 4 * 2},
		{"tight device", 1, 3, 2, 3 * 4 * 2},
		{"just over", 256, 257, 1, 512 * 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := recording.NewDevice(recording.WithCopyAlignment(tt.align))
			desc := rgba(tt.w, tt.h)
			n := NewTextureReadoutNode(desc, nil)
			if err := n.Update(graph.EmptyWorld{}, dev, inputFor(t, dev, desc), graph.NewSlots(nil)); err != nil {
				t.Fatal(err)
			}
			_, size, ok := n.StagingBuffer()
			if !ok {
				t.Fatal("no staging buffer")
			}
			if size != tt.wantSize {
				t.Errorf("staging size = %d, want %d", size, tt.wantSize)
			}
		})
	}
}

func TestReadout_StagingReused(t *testing.T) {
	dev := recording.NewDevice()
	desc := rgba(8, 8)
	n := NewTextureReadoutNode(desc, nil)
	in := inputFor(t, dev, desc)

	var first resource.BufferID
	for frame := 0; frame < 3; frame++ {
		if err := n.Update(graph.EmptyWorld{}, dev, in, graph.NewSlots(nil)); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		id, _, _ := n.StagingBuffer()
		if frame == 0 {
			first = id
		} else if id != first {
			t.Errorf("frame %d: staging %d, want %d", frame, id, first)
		}
	}

	tests := []struct {
		ct   recording.CommandType
		want int
	}{
		{recording.CmdCreateBuffer, 1},
		{recording.CmdCopyTextureToBuffer, 3},
		{recording.CmdMapBuffer, 3},
		{recording.CmdReadMappedBuffer, 3},
		{recording.CmdUnmapBuffer, 3},
	}
	for _, tt := range tests {
		if got := dev.Count(tt.ct); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.ct, got, tt.want)
		}
	}

	info, _, _ := dev.Buffer(first)
	if want := gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst; info.Usage != want {
		t.Errorf("staging usage = %v, want %v", info.Usage, want)
	}
	if dev.Mapped(first) {
		t.Error("staging buffer left mapped")
	}
}

func TestReadout_CopyUsesAlignedPitch(t *testing.T) {
	dev := recording.NewDevice()
	desc := rgba(10, 3)
	n := NewTextureReadoutNode(desc, nil)
	in := inputFor(t, dev, desc)
	dev.Reset()

	if err := n.Update(graph.EmptyWorld{}, dev, in, graph.NewSlots(nil)); err != nil {
		t.Fatal(err)
	}

	var copyCmd *recording.CopyTextureToBufferCommand
	for _, c := range dev.Commands() {
		if cc, ok := c.(recording.CopyTextureToBufferCommand); ok {
			copyCmd = &cc
		}
	}
	if copyCmd == nil {
		t.Fatal("no copy recorded")
	}
	if got, want := copyCmd.Copy.BytesPerRow, uint32(256*4); got != want {
		t.Errorf("BytesPerRow = %d, want %d", got, want)
	}
	if got, want := copyCmd.Copy.Size, desc.Size; got != want {
		t.Errorf("copy size = %+v, want %+v", got, want)
	}
}

func TestReadout_UnmapsAfterReadFailure(t *testing.T) {
	dev := recording.NewDevice()
	desc := rgba(4, 4)
	n := NewTextureReadoutNode(desc, nil)
	in := inputFor(t, dev, desc)

	err := n.Update(graph.EmptyWorld{}, failingRead{dev}, in, graph.NewSlots(nil))
	if !errors.Is(err, errRead) {
		t.Fatalf("got %v, want the read error", err)
	}
	staging, _, _ := n.StagingBuffer()
	if dev.Mapped(staging) {
		t.Error("staging buffer left mapped after failed read")
	}

	// The next frame maps again without tripping over stale map state.
	if err := n.Update(graph.EmptyWorld{}, dev, in, graph.NewSlots(nil)); err != nil {
		t.Errorf("next frame: %v", err)
	}
}

func TestReadout_CallbackSeesContents(t *testing.T) {
	dev := recording.NewDevice()
	desc := rgba(5, 3)
	tex, err := dev.CreateTexture(desc)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]byte, 5*3*4)
	for i := range want {
		want[i] = byte(i)
	}
	if err := dev.WriteTexture(tex, want); err != nil {
		t.Fatal(err)
	}
	in := graph.NewSlots(readoutInputs)
	in.Set(0, resource.TextureResource(tex))

	var got []byte
	var gotDesc resource.TextureDescriptor
	n := NewTextureReadoutNode(desc, func(data []byte, d resource.TextureDescriptor) {
		got = append([]byte(nil), data...)
		gotDesc = d
	})
	if err := n.Update(graph.EmptyWorld{}, dev, in, graph.NewSlots(nil)); err != nil {
		t.Fatal(err)
	}

	if gotDesc != desc {
		t.Errorf("callback desc = %+v, want %+v", gotDesc, desc)
	}
	tight, err := resource.StripRowPadding(got, desc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(tight, want) {
		t.Error("readback differs from texture contents")
	}
}

func TestReadout_Release(t *testing.T) {
	dev := recording.NewDevice()
	desc := rgba(4, 4)
	n := NewTextureReadoutNode(desc, nil)
	if err := n.Update(graph.EmptyWorld{}, dev, inputFor(t, dev, desc), graph.NewSlots(nil)); err != nil {
		t.Fatal(err)
	}

	n.Release(dev)
	if _, buffers := dev.Live(); buffers != 0 {
		t.Errorf("got %d live buffers, want 0", buffers)
	}
	if _, _, ok := n.StagingBuffer(); ok {
		t.Error("StagingBuffer reports a buffer after Release")
	}
}
