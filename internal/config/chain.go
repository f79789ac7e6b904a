// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"sort"
	"strings"
)

// Chain is an ordered list of layers, highest precedence first.
//
// The order is fixed when the chain is built and never changes afterwards.
type Chain struct {
	layers []*Layer
}

// NewChain builds a chain from layers in precedence order. Nil layers are
// skipped.
func NewChain(layers ...*Layer) *Chain {
	c := &Chain{layers: make([]*Layer, 0, len(layers))}
	for _, l := range layers {
		if l != nil {
			c.layers = append(c.layers, l)
		}
	}
	return c
}

// Lookup returns the value of key from the first layer that defines it,
// together with that layer's origin.
func (c *Chain) Lookup(key string) (Value, Origin, bool) {
	for _, l := range c.layers {
		if v, ok := l.Lookup(key); ok {
			return v, l.Origin(), true
		}
	}
	return Value{}, OriginDefault, false
}

// Contains reports whether any layer defines key.
func (c *Chain) Contains(key string) bool {
	_, _, ok := c.Lookup(key)
	return ok
}

// Keys returns the sorted union of the keys of all layers.
func (c *Chain) Keys() []string {
	seen := make(map[string]struct{})
	for _, l := range c.layers {
		for _, k := range l.Keys() {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Layers returns the layers in precedence order.
func (c *Chain) Layers() []*Layer {
	return append([]*Layer(nil), c.layers...)
}

// String implements fmt.Stringer.
func (c *Chain) String() string {
	parts := make([]string, 0, len(c.layers))
	for _, l := range c.layers {
		parts = append(parts, l.String())
	}
	return "Chain(" + strings.Join(parts, ", ") + ")"
}
