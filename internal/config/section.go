// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Section is a named group of configuration keys, e.g. "api" or "importer".
//
// Every registered key becomes a flag in the section's flag group (and on the
// root command-line surface), gets an environment variable name and may be
// marked required. Resolving a section builds its priority chain
// [command line, environment, files..., defaults] and checks the required
// keys.
type Section struct {
	name        string
	description string
	argPrefix   string
	envPrefix   string

	flags   *pflag.FlagSet
	surface *pflag.FlagSet
	environ map[string]string

	keys  []*keySpec
	index map[string]*keySpec

	resolved *Resolved
	err      error
}

// SectionOption customizes a section at declaration time.
type SectionOption func(*Section)

// WithDescription sets the help text shown above the section's flags.
func WithDescription(description string) SectionOption {
	return func(s *Section) {
		s.description = description
	}
}

// WithArgPrefix replaces the default "<name>-" flag prefix. An empty prefix
// leaves the section's flags unprefixed.
func WithArgPrefix(prefix string) SectionOption {
	return func(s *Section) {
		prefix = strings.Trim(prefix, "-")
		if prefix != "" {
			prefix += "-"
		}
		s.argPrefix = prefix
	}
}

func newSection(name, envPrefix string, surface *pflag.FlagSet, environ map[string]string, opts ...SectionOption) *Section {
	s := &Section{
		name:      name,
		argPrefix: name + "-",
		envPrefix: envPrefix,
		flags:     pflag.NewFlagSet(name, pflag.ContinueOnError),
		surface:   surface,
		environ:   environ,
		index:     make(map[string]*keySpec),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Description returns the section help text.
func (s *Section) Description() string {
	return s.description
}

// Flags returns the section's flag group.
func (s *Section) Flags() *pflag.FlagSet {
	return s.flags
}

// Keys returns the logical names of the registered keys in registration
// order.
func (s *Section) Keys() []string {
	names := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		names = append(names, k.name)
	}
	return names
}

// Required returns the logical names of the required keys in registration
// order.
func (s *Section) Required() []string {
	names := make([]string, 0)
	for _, k := range s.keys {
		if k.required {
			names = append(names, k.name)
		}
	}
	return names
}

// EnvName returns the environment variable read for key.
func (s *Section) EnvName(key string) (string, bool) {
	k, ok := s.index[NormalizeKey(key)]
	if !ok {
		return "", false
	}
	return k.env, true
}

// FlagName returns the long flag name of key. Positional keys have none.
func (s *Section) FlagName(key string) (string, bool) {
	k, ok := s.index[NormalizeKey(key)]
	if !ok || k.positional {
		return "", false
	}
	return k.flag, true
}

// Err returns the declaration errors recorded so far.
func (s *Section) Err() error {
	return s.err
}

// Resolved returns the resolved view committed by the last successful
// [Root.ResolveAll], or nil.
func (s *Section) Resolved() *Resolved {
	return s.resolved
}

// KeyOption customizes a key registration.
type KeyOption func(*keyOptions)

type keyOptions struct {
	env      string
	required bool
}

// WithEnv overrides the environment variable name of a key.
func WithEnv(name string) KeyOption {
	return func(o *keyOptions) {
		o.env = strings.TrimSpace(name)
	}
}

// Required marks a key as required: resolution fails when no layer defines it.
func Required() KeyOption {
	return func(o *keyOptions) {
		o.required = true
	}
}

// RegisterKey registers a key backed by flag and returns its logical name.
//
// The flag is added with a zero default; the compiled default only feeds the
// defaults layer. Registering the same logical key, flag name or shorthand
// twice is a programming error: it is recorded and reported by [Section.Err]
// (and [Root.Load]) and the second registration is ignored.
func (s *Section) RegisterKey(flag Flag, opts ...KeyOption) string {
	raw := strings.TrimLeft(strings.TrimSpace(flag.Name), "-")
	if raw == "" {
		s.fail(fmt.Errorf("%w: empty flag name in %s section", ErrInvalidFlag, s.name))
		return ""
	}

	longName := raw
	if s.argPrefix != "" && !strings.HasPrefix(raw, s.argPrefix) {
		longName = s.argPrefix + raw
	}
	name := NormalizeKey(strings.TrimPrefix(longName, s.argPrefix))

	var o keyOptions
	for _, opt := range opts {
		opt(&o)
	}

	if _, ok := s.index[name]; ok {
		s.fail(fmt.Errorf("%w: %s in %s section", ErrDuplicateKey, name, s.name))
		return name
	}

	def := parseRaw(flag.Kind, flag.Default)
	if flag.Default != "" && def.Absent() {
		s.fail(fmt.Errorf("%w: default %q of %s is not a valid %s", ErrInvalidFlag, flag.Default, name, flag.Kind))
		return name
	}

	spec := &keySpec{
		name:       name,
		usage:      flag.Usage,
		kind:       flag.Kind,
		def:        def,
		required:   o.required,
		positional: flag.Positional,
		env:        o.env,
	}
	if spec.env == "" {
		spec.env = envName(s.envPrefix, s.name, name)
	}

	if spec.positional {
		for _, k := range s.keys {
			if k.positional {
				s.fail(fmt.Errorf("%w: %s section already binds positional key %s", ErrInvalidFlag, s.name, k.name))
				return name
			}
		}
	} else {
		spec.flag = longName
		spec.shorthand = strings.TrimLeft(flag.Shorthand, "-")
		if err := s.defineFlag(spec); err != nil {
			s.fail(err)
			return name
		}
	}

	s.keys = append(s.keys, spec)
	s.index[name] = spec
	return name
}

func (s *Section) defineFlag(spec *keySpec) error {
	if len(spec.shorthand) > 1 {
		return fmt.Errorf("%w: shorthand %q of --%s is more than one character", ErrInvalidFlag, spec.shorthand, spec.flag)
	}

	for _, fs := range []*pflag.FlagSet{s.flags, s.surface} {
		if fs == nil {
			continue
		}
		if fs.Lookup(spec.flag) != nil {
			return fmt.Errorf("%w: flag --%s", ErrDuplicateKey, spec.flag)
		}
		if spec.shorthand != "" && fs.ShorthandLookup(spec.shorthand) != nil {
			return fmt.Errorf("%w: shorthand -%s of --%s", ErrDuplicateKey, spec.shorthand, spec.flag)
		}
	}

	spec.define(s.flags)
	if s.surface != nil {
		s.surface.AddFlag(s.flags.Lookup(spec.flag))
	}
	return nil
}

func (s *Section) fail(err error) {
	s.err = errors.Join(s.err, err)
}

// Chain builds the section's priority chain for one resolution pass:
// explicit command-line values, environment variables, each file in the
// given order, compiled defaults.
func (s *Section) Chain(cl CommandLine, files []*FileSource) *Chain {
	layers := make([]*Layer, 0, len(files)+3)
	layers = append(layers,
		commandLineLayer(s.keys, cl),
		environmentLayer(s.keys, s.environ),
	)
	for _, f := range files {
		layers = append(layers, fileLayer(s.name, s.keys, f))
	}
	layers = append(layers, defaultsLayer(s.keys))

	return NewChain(layers...)
}

// Resolve builds the priority chain and validates the required keys. On
// success it returns a read-only snapshot of the section; on failure it
// returns a [*MissingKeyError] and no view. Resolve does not commit the view
// to the section, see [Root.ResolveAll].
func (s *Section) Resolve(cl CommandLine, files []*FileSource) (*Resolved, error) {
	chain := s.Chain(cl, files)
	if err := s.validate(chain); err != nil {
		return nil, err
	}
	return newResolved(s.name, s.keys, chain), nil
}
