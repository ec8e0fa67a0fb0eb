// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/resource"
)

// ErrUnsupportedFormat is returned for texture formats that have no 8-bit
// color image representation.
var ErrUnsupportedFormat = errors.New("snapshot: unsupported texture format")

// Image converts readout bytes into an image. data may carry row padding;
// only the first depth slice is used.
func Image(data []byte, desc resource.TextureDescriptor) (*image.NRGBA, error) {
	switch desc.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatR8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}

	tight, err := resource.StripRowPadding(data, desc)
	if err != nil {
		return nil, err
	}

	w, h := int(desc.Size.Width), int(desc.Size.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := w * h

	switch desc.Format {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		convertBGRAToRGBA(tight, img.Pix, n)
	case gputypes.TextureFormatR8Unorm:
		for i := 0; i < n; i++ {
			v := tight[i]
			img.Pix[i*4+0] = v
			img.Pix[i*4+1] = v
			img.Pix[i*4+2] = v
			img.Pix[i*4+3] = 0xff
		}
	default:
		copy(img.Pix, tight[:n*4])
	}
	return img, nil
}

// convertBGRAToRGBA swaps the red and blue channels of n pixels.
func convertBGRAToRGBA(src, dst []byte, n int) {
	for i := 0; i < n; i++ {
		o := i * 4
		dst[o+0] = src[o+2]
		dst[o+1] = src[o+1]
		dst[o+2] = src[o+0]
		dst[o+3] = src[o+3]
	}
}
