// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/rendergraph/resource"
)

// testSystemNode records Prepare calls into a shared trace.
type testSystemNode struct {
	NoSlots
	trace   *[]string
	name    string
	prepErr error
}

func (n *testSystemNode) Prepare(w World) error {
	if n.trace != nil {
		*n.trace = append(*n.trace, "prepare:"+n.name)
	}
	return n.prepErr
}

func (n *testSystemNode) Update(World, resource.Context, *Slots, *Slots) error {
	if n.trace != nil {
		*n.trace = append(*n.trace, "update:"+n.name)
	}
	return nil
}

func TestExecute_DeliversOutputsDownstream(t *testing.T) {
	g := New()
	producer := &testNode{
		outputs: texOut,
		update: func(_, out *Slots) error {
			out.Set(0, resource.TextureResource(11))
			return nil
		},
	}
	var seen []resource.ID
	consumer := &testNode{
		inputs: texIn,
		update: func(in, _ *Slots) error {
			if id, ok := in.Get(0); ok {
				seen = append(seen, id)
			}
			return nil
		},
	}
	// Consumer is inserted first; the slot edge must still run the producer first.
	mustAdd(t, g, "consumer", consumer)
	mustAdd(t, g, "producer", producer)
	if err := g.AddSlotEdge("producer", Slot("texture"), "consumer", Slot("texture")); err != nil {
		t.Fatal(err)
	}

	for frame := 0; frame < 2; frame++ {
		if err := g.Execute(EmptyWorld{}, nil); err != nil {
			t.Fatalf("frame %d: Execute() error = %v", frame, err)
		}
	}
	want := []resource.ID{resource.TextureResource(11), resource.TextureResource(11)}
	if !slices.Equal(seen, want) {
		t.Errorf("consumer saw %v, want %v", seen, want)
	}
	if g.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", g.Frame())
	}
}

func TestExecute_UnwiredInputIsAbsent(t *testing.T) {
	g := New()
	var gotAbsent bool
	mustAdd(t, g, "sink", &testNode{
		inputs: texIn,
		update: func(in, _ *Slots) error {
			_, ok := in.Get(0)
			gotAbsent = !ok
			return nil
		},
	})
	if err := g.Execute(nil, nil); err != nil {
		t.Fatal(err)
	}
	if !gotAbsent {
		t.Error("input without an edge should be absent")
	}
}

func TestExecute_UnpublishedOutputIsAbsent(t *testing.T) {
	g := New()
	mustAdd(t, g, "idle", &testNode{outputs: texOut})
	var present bool
	mustAdd(t, g, "sink", &testNode{
		inputs: texIn,
		update: func(in, _ *Slots) error {
			_, present = in.Get(0)
			return nil
		},
	})
	if err := g.AddSlotEdge("idle", SlotAt(0), "sink", SlotAt(0)); err != nil {
		t.Fatal(err)
	}
	if err := g.Execute(nil, nil); err != nil {
		t.Fatal(err)
	}
	if present {
		t.Error("input fed by an idle producer should be absent")
	}
}

func TestExecute_OutputsPersistAcrossFrames(t *testing.T) {
	g := New()
	var frames []bool
	mustAdd(t, g, "memo", &testNode{
		outputs: texOut,
		update: func(_, out *Slots) error {
			_, had := out.Get(0)
			frames = append(frames, had)
			out.Set(0, resource.TextureResource(5))
			return nil
		},
	})
	for i := 0; i < 3; i++ {
		if err := g.Execute(nil, nil); err != nil {
			t.Fatal(err)
		}
	}
	if want := []bool{false, true, true}; !slices.Equal(frames, want) {
		t.Errorf("output present at frame start = %v, want %v", frames, want)
	}
	out, err := g.Outputs("memo")
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := out.Get(0); id != resource.TextureResource(5) {
		t.Errorf("Outputs(memo)[0] = %v, want Texture(5)", id)
	}
}

func TestExecute_PrepareRunsBeforeUpdates(t *testing.T) {
	var trace []string
	g := New()
	mustAdd(t, g, "plain", &testNode{update: func(_, _ *Slots) error {
		trace = append(trace, "update:plain")
		return nil
	}})
	if err := g.AddSystemNode("camera", &testSystemNode{trace: &trace, name: "camera"}); err != nil {
		t.Fatal(err)
	}
	// A system node added with AddNode is not prepared.
	if err := g.AddNode("passive", &testSystemNode{trace: &trace, name: "passive"}); err != nil {
		t.Fatal(err)
	}

	if err := g.Execute(nil, nil); err != nil {
		t.Fatal(err)
	}
	want := []string{"prepare:camera", "update:plain", "update:camera", "update:passive"}
	if !slices.Equal(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestExecute_ErrorAbandonsFrame(t *testing.T) {
	g := New()
	boom := errors.New("device lost")
	first := &testNode{}
	failing := &testNode{update: func(_, _ *Slots) error { return boom }}
	last := &testNode{}
	mustAdd(t, g, "first", first)
	mustAdd(t, g, "failing", failing)
	mustAdd(t, g, "last", last)

	err := g.Execute(nil, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Execute() error = %v, want wrapped %v", err, boom)
	}
	var ne *NodeError
	if !errors.As(err, &ne) || ne.Node != "failing" {
		t.Errorf("Execute() error = %v, want *NodeError for failing", err)
	}
	if first.calls != 1 || last.calls != 0 {
		t.Errorf("calls first=%d last=%d, want 1 and 0", first.calls, last.calls)
	}
	if g.Frame() != 0 {
		t.Errorf("Frame() = %d after failed frame, want 0", g.Frame())
	}
}

func TestExecute_PrepareErrorRunsNoUpdate(t *testing.T) {
	var trace []string
	g := New()
	mustAdd(t, g, "plain", &testNode{update: func(_, _ *Slots) error {
		trace = append(trace, "update:plain")
		return nil
	}})
	_ = g.AddSystemNode("camera", &testSystemNode{trace: &trace, name: "camera", prepErr: errors.New("no scene")})

	err := g.Execute(nil, nil)
	var ne *NodeError
	if !errors.As(err, &ne) || ne.Node != "camera" {
		t.Fatalf("Execute() error = %v, want *NodeError for camera", err)
	}
	if slices.Contains(trace, "update:plain") {
		t.Errorf("trace = %v, no update should run after a failed Prepare", trace)
	}
}

func TestExecute_LogsThroughOption(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := New(WithLogger(l))
	mustAdd(t, g, "only", &testNode{})
	if err := g.Execute(nil, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "execution order") {
		t.Errorf("expected order diagnostics in log, got: %s", buf.String())
	}
}

func TestExecute_EmptyGraph(t *testing.T) {
	g := New()
	if err := g.Execute(nil, nil); err != nil {
		t.Errorf("Execute() on empty graph error = %v", err)
	}
	if order, err := g.Order(); err != nil || len(order) != 0 {
		t.Errorf("Order() on empty graph = (%v, %v)", order, err)
	}
}
