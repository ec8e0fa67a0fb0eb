// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Option configures layout decoding.
type Option func(*options)

type options struct {
	vars map[string]cty.Value
}

// WithVariables makes vars available to expressions as var.<name>, for
// example width = var.size.
func WithVariables(vars map[string]cty.Value) Option {
	return func(o *options) {
		for k, v := range vars {
			o.vars[k] = v
		}
	}
}

// WithVariable sets a single variable. The raw value is a number when it
// parses as one and a string otherwise, which suits command-line flags.
func WithVariable(name, raw string) Option {
	return func(o *options) {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			o.vars[name] = cty.NumberFloatVal(n)
			return
		}
		o.vars[name] = cty.StringVal(raw)
	}
}

func newOptions(opts []Option) options {
	o := options{vars: make(map[string]cty.Value)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// evalContext exposes the variables under var. With no variables it has
// none, so any var reference is an error.
func (o *options) evalContext() *hcl.EvalContext {
	if len(o.vars) == 0 {
		return nil
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(o.vars),
		},
	}
}
