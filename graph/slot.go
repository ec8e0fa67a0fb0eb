// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"fmt"
	"strconv"

	"github.com/gogpu/rendergraph/resource"
)

// SlotInfo describes one named, typed input or output of a node.
type SlotInfo struct {
	Name string
	Kind resource.Kind
}

// Slots is an index-aligned table of resolved resource handles for a node's
// declared slots. A slot is absent until something sets it.
//
// Slots is not safe for concurrent use. The graph hands a Slots value to
// exactly one Update call at a time.
type Slots struct {
	infos []SlotInfo
	ids   []resource.ID
}

// NewSlots returns an empty table for the given declarations.
func NewSlots(infos []SlotInfo) *Slots {
	return &Slots{
		infos: infos,
		ids:   make([]resource.ID, len(infos)),
	}
}

// Len returns the number of declared slots.
func (s *Slots) Len() int { return len(s.ids) }

// Get returns the handle in slot i. Absent and out-of-range slots report false.
func (s *Slots) Get(i int) (resource.ID, bool) {
	if i < 0 || i >= len(s.ids) {
		return resource.ID{}, false
	}
	id := s.ids[i]
	return id, id.IsValid()
}

// Set stores id in slot i, overwriting any previous handle.
//
// Slot counts and kinds are fixed by the node's declaration, so writing out
// of range or writing a handle of the wrong kind is a programming error and
// panics.
func (s *Slots) Set(i int, id resource.ID) {
	if i < 0 || i >= len(s.ids) {
		panic(fmt.Sprintf("graph: slot index %d out of range [0, %d)", i, len(s.ids)))
	}
	if want := s.infos[i].Kind; id.Kind() != want {
		panic(fmt.Sprintf("graph: slot %q expects %v, got %v", s.infos[i].Name, want, id.Kind()))
	}
	s.ids[i] = id
}

// Info returns the declaration of slot i.
func (s *Slots) Info(i int) (SlotInfo, bool) {
	if i < 0 || i >= len(s.infos) {
		return SlotInfo{}, false
	}
	return s.infos[i], true
}

// Index returns the index of the slot named name.
func (s *Slots) Index(name string) (int, bool) {
	return Slot(name).resolve(s.infos)
}

// Reset makes every slot absent.
func (s *Slots) Reset() {
	clear(s.ids)
}

// SlotLabel identifies a slot either by name or by index.
type SlotLabel struct {
	name  string
	index int
}

// Slot returns a label addressing a slot by name.
func Slot(name string) SlotLabel { return SlotLabel{name: name, index: -1} }

// SlotAt returns a label addressing a slot by index.
func SlotAt(index int) SlotLabel { return SlotLabel{index: index} }

// String returns the slot name, or the index for index labels.
func (l SlotLabel) String() string {
	if l.index < 0 {
		return strconv.Quote(l.name)
	}
	return strconv.Itoa(l.index)
}

func (l SlotLabel) resolve(infos []SlotInfo) (int, bool) {
	if l.index >= 0 {
		return l.index, l.index < len(infos)
	}
	for i, info := range infos {
		if info.Name == l.name {
			return i, true
		}
	}
	return -1, false
}
