// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"log/slog"
	"time"

	"github.com/gogpu/rendergraph"
)

// Option configures a Context.
type Option func(*options)

type options struct {
	waitTimeout time.Duration
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		waitTimeout: 5 * time.Second,
	}
}

// WithWaitTimeout sets how long CopyTextureToBuffer waits for the GPU.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.waitTimeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to rendergraph.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return rendergraph.Logger()
}
