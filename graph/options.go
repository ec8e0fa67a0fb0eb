// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"log/slog"

	"github.com/gogpu/rendergraph"
)

// Option configures a Graph during creation.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		logger: nil, // resolved to rendergraph.Logger() per call
	}
}

// WithLogger sets the logger for this graph. By default the graph logs
// through rendergraph.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (g *Graph) logger() *slog.Logger {
	if g.opts.logger != nil {
		return g.opts.logger
	}
	return rendergraph.Logger()
}
