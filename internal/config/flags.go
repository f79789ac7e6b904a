// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// Flag declares the command-line flag backing a configuration key.
//
// Name is the long flag name. Within a prefixed section both "api-host" and
// "host" declare the same --api-host flag. Default is the compiled default in
// textual form ("true"/"false" for bools, comma-separated for lists); it never
// becomes the pflag default, so an unset flag cannot shadow other sources.
type Flag struct {
	Name       string
	Shorthand  string
	Usage      string
	Kind       Kind
	Default    string
	Positional bool
}

// CommandLine is the parsed command-line surface a [Section] reads explicit
// values from. Args holds the positional arguments left after flag parsing.
type CommandLine struct {
	Flags *pflag.FlagSet
	Args  []string
}

// keySpec is one registered key of a section.
type keySpec struct {
	name       string
	flag       string
	shorthand  string
	env        string
	usage      string
	kind       Kind
	def        Value
	required   bool
	positional bool
}

// define adds the key's flag to fs with a zero default.
func (k *keySpec) define(fs *pflag.FlagSet) {
	usage := k.usageText()
	switch k.kind {
	case KindBool:
		fs.BoolP(k.flag, k.shorthand, false, usage)
	case KindList:
		fs.StringArrayP(k.flag, k.shorthand, nil, usage)
	default:
		fs.StringP(k.flag, k.shorthand, "", usage)
	}
}

func (k *keySpec) usageText() string {
	usage := k.usage
	if !k.def.Absent() {
		usage += fmt.Sprintf(" (default %s)", k.def.String())
	}
	if k.env != "" {
		usage += fmt.Sprintf(" [$%s]", k.env)
	}
	if k.required {
		usage += " (required)"
	}
	return usage
}

// commandLineLayer exposes the explicitly supplied flags of the registered
// keys plus the positional arguments bound to a positional key.
func commandLineLayer(keys []*keySpec, cl CommandLine) *Layer {
	data := make(map[string]Value, len(keys))
	for _, k := range keys {
		if k.positional {
			if len(cl.Args) > 0 {
				data[k.name] = positionalValue(k.kind, cl.Args)
			}
			continue
		}
		if cl.Flags == nil {
			continue
		}

		f := cl.Flags.Lookup(k.flag)
		if f == nil || !f.Changed {
			continue
		}
		data[k.name] = flagValue(k.kind, f)
	}
	return NewLayer(OriginCommandLine, "", data)
}

func flagValue(kind Kind, f *pflag.Flag) Value {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(f.Value.String())
		if err != nil {
			return Value{}
		}
		return BoolValue(b)
	case KindList:
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return ListValue(sv.GetSlice())
		}
		return parseRaw(KindList, f.Value.String())
	default:
		return StringValue(f.Value.String())
	}
}

func positionalValue(kind Kind, args []string) Value {
	if kind == KindList {
		return ListValue(args)
	}
	return parseRaw(kind, args[0])
}
