// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Environ returns a snapshot of the process environment as a name→value map.
func Environ() map[string]string {
	return env.ToMap(os.Environ())
}

// envName builds the default environment variable name of a key:
// <PREFIX>_<SECTION>_<KEY>, upper-cased, with dots and dashes replaced by
// underscores.
func envName(prefix, section, key string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, section, key} {
		if p = strings.Trim(NormalizeKey(p), "_"); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToUpper(strings.Join(parts, "_"))
}

// environmentLayer reads the environment variable of every registered key
// from the snapshot. Positional keys have one too, e.g.
// OPENPHOTO_IMPORTER_TARGET.
func environmentLayer(keys []*keySpec, environ map[string]string) *Layer {
	data := make(map[string]Value, len(keys))
	for _, k := range keys {
		if k.env == "" {
			continue
		}
		raw, ok := environ[k.env]
		if !ok {
			continue
		}
		data[k.name] = parseRaw(k.kind, raw)
	}
	return NewLayer(OriginEnvironment, "", data)
}

// parseRaw converts textual input (environment or file) to a value of the
// requested kind. A bool that cannot be interpreted comes back absent.
func parseRaw(kind Kind, raw string) Value {
	s := StringValue(strings.TrimSpace(raw))
	switch kind {
	case KindBool:
		b, ok := s.Bool()
		if !ok {
			return Value{}
		}
		return BoolValue(b)
	case KindList:
		return ListValue(s.Items())
	default:
		return s
	}
}
