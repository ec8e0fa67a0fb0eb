// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/resource"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one resource.Context method.
type CommandType uint8

const (
	// Allocation commands
	CmdCreateTexture  CommandType = iota // Allocate a texture
	CmdDestroyTexture                    // Release a texture
	CmdCreateBuffer                      // Allocate a buffer
	CmdDestroyBuffer                     // Release a buffer

	// Transfer commands
	CmdWriteBuffer         // Upload bytes into a buffer
	CmdCopyTextureToBuffer // Copy texels into a buffer

	// Mapping commands
	CmdMapBuffer        // Map a buffer for host access
	CmdReadMappedBuffer // Read a mapped range
	CmdUnmapBuffer      // End host access
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateTexture:       "CreateTexture",
	CmdDestroyTexture:      "DestroyTexture",
	CmdCreateBuffer:        "CreateBuffer",
	CmdDestroyBuffer:       "DestroyBuffer",
	CmdWriteBuffer:         "WriteBuffer",
	CmdCopyTextureToBuffer: "CopyTextureToBuffer",
	CmdMapBuffer:           "MapBuffer",
	CmdReadMappedBuffer:    "ReadMappedBuffer",
	CmdUnmapBuffer:         "UnmapBuffer",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
// Commands are recorded when the call is made, whether or not it succeeds.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// CreateTextureCommand records CreateTexture. ID is zero if creation failed.
type CreateTextureCommand struct {
	ID   resource.TextureID
	Desc resource.TextureDescriptor
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

// DestroyTextureCommand records DestroyTexture.
type DestroyTextureCommand struct {
	ID resource.TextureID
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// CreateBufferCommand records CreateBuffer. ID is zero if creation failed.
type CreateBufferCommand struct {
	ID   resource.BufferID
	Info resource.BufferInfo
}

// Type implements Command.
func (CreateBufferCommand) Type() CommandType { return CmdCreateBuffer }

// DestroyBufferCommand records DestroyBuffer.
type DestroyBufferCommand struct {
	ID resource.BufferID
}

// Type implements Command.
func (DestroyBufferCommand) Type() CommandType { return CmdDestroyBuffer }

// WriteBufferCommand records WriteBuffer.
type WriteBufferCommand struct {
	ID     resource.BufferID
	Offset uint64
	Size   uint64
}

// Type implements Command.
func (WriteBufferCommand) Type() CommandType { return CmdWriteBuffer }

// CopyTextureToBufferCommand records CopyTextureToBuffer.
type CopyTextureToBufferCommand struct {
	Copy resource.TextureBufferCopy
}

// Type implements Command.
func (CopyTextureToBufferCommand) Type() CommandType { return CmdCopyTextureToBuffer }

// MapBufferCommand records MapBuffer.
type MapBufferCommand struct {
	ID   resource.BufferID
	Mode gputypes.MapMode
}

// Type implements Command.
func (MapBufferCommand) Type() CommandType { return CmdMapBuffer }

// ReadMappedBufferCommand records ReadMappedBuffer.
type ReadMappedBufferCommand struct {
	ID     resource.BufferID
	Offset uint64
	Size   uint64
}

// Type implements Command.
func (ReadMappedBufferCommand) Type() CommandType { return CmdReadMappedBuffer }

// UnmapBufferCommand records UnmapBuffer.
type UnmapBufferCommand struct {
	ID resource.BufferID
}

// Type implements Command.
func (UnmapBufferCommand) Type() CommandType { return CmdUnmapBuffer }
