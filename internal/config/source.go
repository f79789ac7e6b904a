// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"sort"
	"strings"
)

// Origin indicates where a configuration value came from.
type Origin int

// Configuration origins, lowest precedence first.
const (
	// OriginDefault is a compiled-in default of a registered key.
	OriginDefault Origin = iota
	// OriginFile is a key of a parsed INI config file.
	OriginFile
	// OriginEnvironment is a process environment variable.
	OriginEnvironment
	// OriginCommandLine is a flag or positional argument explicitly given
	// by the user.
	OriginCommandLine
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginEnvironment:
		return "env"
	case OriginCommandLine:
		return "flag"
	default:
		return "default"
	}
}

// Layer is an immutable key→value view over one configuration origin.
//
// Keys are logical key names (see [NormalizeKey]), never raw flag or
// environment variable names. Absent values are dropped on construction so a
// Layer only ever reports keys it really defines.
type Layer struct {
	origin Origin
	name   string
	data   map[string]Value
}

// NewLayer builds a Layer from data. The map is copied; later changes to
// data are not observed.
func NewLayer(origin Origin, name string, data map[string]Value) *Layer {
	l := &Layer{
		origin: origin,
		name:   name,
		data:   make(map[string]Value, len(data)),
	}
	for k, v := range data {
		if v.Absent() {
			continue
		}
		l.data[NormalizeKey(k)] = v
	}
	return l
}

// Origin returns the origin the layer was built from.
func (l *Layer) Origin() Origin {
	return l.origin
}

// Name returns a human readable label of the layer, such as the config file
// path it was read from.
func (l *Layer) Name() string {
	return l.name
}

// Lookup returns the value stored under key.
func (l *Layer) Lookup(key string) (Value, bool) {
	v, ok := l.data[NormalizeKey(key)]
	return v, ok
}

// Len returns the number of keys defined by the layer.
func (l *Layer) Len() int {
	return len(l.data)
}

// Keys returns the sorted keys defined by the layer.
func (l *Layer) Keys() []string {
	keys := make([]string, 0, len(l.data))
	for k := range l.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String implements fmt.Stringer.
func (l *Layer) String() string {
	parts := make([]string, 0, len(l.data))
	for _, k := range l.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%q", k, l.data[k].String()))
	}
	label := l.origin.String()
	if l.name != "" {
		label += ":" + l.name
	}
	return label + "{" + strings.Join(parts, ", ") + "}"
}

// NormalizeKey maps a raw key spelling to its canonical logical form.
//
// The canonical spelling is lower case with underscores, so "consumer.key",
// "Consumer-Key" and "consumer_key" all name the same key.
func NormalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer(".", "_", "-", "_").Replace(key)
}

// defaultsLayer exposes the compiled defaults of the registered keys.
func defaultsLayer(keys []*keySpec) *Layer {
	data := make(map[string]Value, len(keys))
	for _, k := range keys {
		data[k.name] = k.def
	}
	return NewLayer(OriginDefault, "", data)
}
