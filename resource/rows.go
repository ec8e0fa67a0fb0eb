// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "fmt"

// StripRowPadding removes per-row padding from a readout of desc.
//
// The padded row pitch is derived from len(data), which must hold
// height*depth rows of equal length. If the data is already tight it is
// returned as-is without copying.
func StripRowPadding(data []byte, desc TextureDescriptor) ([]byte, error) {
	ps, ok := PixelSize(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	rows := int(desc.Size.Height) * int(desc.Depth())
	if rows == 0 {
		return data[:0], nil
	}
	tight := int(desc.Size.Width) * ps
	if len(data)%rows != 0 || len(data)/rows < tight {
		return nil, fmt.Errorf("%w: %d bytes for %d rows of %d bytes", ErrBufferTooSmall, len(data), rows, tight)
	}
	pitch := len(data) / rows
	if pitch == tight {
		return data, nil
	}
	out := make([]byte, tight*rows)
	for row := 0; row < rows; row++ {
		copy(out[row*tight:(row+1)*tight], data[row*pitch:row*pitch+tight])
	}
	return out, nil
}
