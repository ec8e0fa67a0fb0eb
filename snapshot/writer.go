// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/nodes"
	"github.com/gogpu/rendergraph/resource"
)

// ErrUnknownExtension is returned for output paths without a supported
// image extension.
var ErrUnknownExtension = errors.New("snapshot: unknown image extension")

// Encode writes img to w in the format named by ext (".png", ".bmp",
// ".tif" or ".tiff").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
}

// Save converts a readout to an image and writes it to path.
func Save(path string, data []byte, desc resource.TextureDescriptor) error {
	img, err := Image(data, desc)
	if err != nil {
		return err
	}
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := Encode(f, img, ext); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Writer returns a callback that saves each readout to pattern. If pattern
// contains a '%' verb it is formatted with the zero-based frame index, so
// "frame-%03d.png" keeps every frame; otherwise each frame overwrites the
// file.
//
// Failures are logged, not returned: unsupported formats as warnings,
// encoding and I/O errors as errors.
func Writer(pattern string) nodes.ReadFunc {
	var frame atomic.Uint64
	numbered := strings.Contains(pattern, "%")

	return func(data []byte, desc resource.TextureDescriptor) {
		n := frame.Add(1) - 1
		path := pattern
		if numbered {
			path = fmt.Sprintf(pattern, n)
		}

		err := Save(path, data, desc)
		switch {
		case err == nil:
			rendergraph.Logger().Debug("snapshot: saved",
				slog.String("path", path),
				slog.Uint64("frame", n))
		case errors.Is(err, ErrUnsupportedFormat):
			rendergraph.Logger().Warn("snapshot: skipped",
				slog.String("path", path),
				slog.String("format", fmt.Sprint(desc.Format)))
		default:
			rendergraph.Logger().Error("snapshot: save failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}
}
