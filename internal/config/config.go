// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/openphoto-utils/internal/logger"
)

const (
	// DefaultEnvPrefix is the first component of every derived environment
	// variable name, e.g. OPENPHOTO_API_HOST.
	DefaultEnvPrefix = "OPENPHOTO"

	configFlag      = "config"
	configShorthand = "c"
)

// Options configures a [Root].
type Options struct {
	// AppName labels the command-line surface in help output.
	AppName string
	// ToolSection names the tool-specific section declared right after
	// "api". Its flags are unprefixed. Empty declares no tool section.
	ToolSection string
	// EnvPrefix defaults to DefaultEnvPrefix.
	EnvPrefix string
	// DefaultConfigPath is read when present; a missing or broken file there
	// is not an error. Defaults to [DefaultConfigPath].
	DefaultConfigPath string
	// NoDefaultConfig disables the default config file entirely.
	NoDefaultConfig bool
	// Environ is the environment snapshot used by every section. Defaults to
	// the process environment at the time NewRoot is called.
	Environ map[string]string
	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

func defaultOptions() Options {
	opts := Options{
		AppName:   "openphoto",
		EnvPrefix: DefaultEnvPrefix,
	}
	if path, err := DefaultConfigPath(); err == nil {
		opts.DefaultConfigPath = path
	}
	return opts
}

// Root owns the declared sections, the command-line surface and the parsed
// config files, and drives the two-phase build: sections and keys are
// declared first without any I/O, then [Root.Parse] (or [Root.Load]) reads
// the command line and config files and [Root.ResolveAll] resolves and
// validates every section.
type Root struct {
	opts Options
	log  *logger.Logger

	flags   *pflag.FlagSet
	general *pflag.FlagSet

	sections []*Section
	byName   map[string]*Section
	api      *Section
	tool     *Section

	configPath      *string
	positional      []string
	positionalOwner *Section
	files           []*FileSource

	loaded bool
	err    error
}

// NewRoot creates a Root and declares the "api" section followed by the
// tool section, if any. Zero fields of opts are filled with defaults.
func NewRoot(opts Options) (*Root, error) {
	if err := mergo.Merge(&opts, defaultOptions()); err != nil {
		return nil, fmt.Errorf("error merging config options: %w", err)
	}
	if opts.Environ == nil {
		opts.Environ = Environ()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r := &Root{
		opts:    opts,
		log:     opts.Logger.GetChildLogger("config"),
		flags:   pflag.NewFlagSet(opts.AppName, pflag.ContinueOnError),
		general: pflag.NewFlagSet("general", pflag.ContinueOnError),
		byName:  make(map[string]*Section),
	}
	r.flags.SortFlags = false
	r.flags.Usage = func() {}
	r.general.SortFlags = false

	r.configPath = r.general.StringP(configFlag, configShorthand, "",
		fmt.Sprintf("Config file [$%s]", r.configEnv()))
	r.flags.AddFlag(r.general.Lookup(configFlag))

	r.api = r.AddSection(APISection, WithDescription("OpenPhoto API connection"))
	declareAPI(r.api)

	if opts.ToolSection != "" {
		r.tool = r.AddSection(opts.ToolSection, WithArgPrefix(""))
	}

	return r, nil
}

// AddSection declares a new section after the ones already declared. Flags
// are prefixed with "<name>-" unless [WithArgPrefix] says otherwise.
// Declaring the same name twice returns the existing section and records an
// error reported by [Root.Load].
func (r *Root) AddSection(name string, opts ...SectionOption) *Section {
	name = strings.ToLower(strings.TrimSpace(name))
	if s, ok := r.byName[name]; ok {
		r.err = errors.Join(r.err, fmt.Errorf("%w: section %s", ErrDuplicateKey, name))
		return s
	}

	s := newSection(name, r.opts.EnvPrefix, r.flags, r.opts.Environ, opts...)
	s.flags.SortFlags = false
	r.sections = append(r.sections, s)
	r.byName[name] = s
	return s
}

// Section returns the declared section called name.
func (r *Root) Section(name string) (*Section, bool) {
	s, ok := r.byName[strings.ToLower(name)]
	return s, ok
}

// Sections returns the declared sections in declaration order.
func (r *Root) Sections() []*Section {
	return append([]*Section(nil), r.sections...)
}

// APISection returns the "api" section.
func (r *Root) APISection() *Section {
	return r.api
}

// Tool returns the tool section, or nil when none was declared.
func (r *Root) Tool() *Section {
	return r.tool
}

// Flags returns the command-line surface holding every section's flags and
// the --config flag. Outer commands (cobra) may add it to their own flag set
// and call [Root.Load] once they parsed the arguments.
func (r *Root) Flags() *pflag.FlagSet {
	return r.flags
}

// ConfigFiles returns the paths of the config files loaded by the last
// [Root.Load], highest precedence first.
func (r *Root) ConfigFiles() []string {
	paths := make([]string, 0, len(r.files))
	for _, f := range r.files {
		paths = append(paths, f.Path())
	}
	return paths
}

// Parse parses args with the root flag set and then loads the config files,
// see [Root.Load]. Flag parsing failures are returned as [*ArgumentError];
// pflag.ErrHelp is returned as is.
func (r *Root) Parse(args []string) error {
	if err := r.flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &ArgumentError{Err: err}
	}
	return r.Load(r.flags.Args())
}

// Load completes the parse phase once the flag set has been parsed: it
// reports declaration errors, binds positional arguments and reads the
// config files.
//
// The config file given with --config (or $<PREFIX>_CONFIG) must exist and be
// readable, otherwise Load fails with an [*ArgumentError]; a file that cannot
// be parsed is logged and skipped. The default config file is optional.
func (r *Root) Load(positional []string) error {
	if err := r.declarationErr(); err != nil {
		return err
	}
	if err := r.bindPositional(positional); err != nil {
		return err
	}
	if err := r.loadFiles(); err != nil {
		return err
	}
	r.loaded = true
	return nil
}

func (r *Root) declarationErr() error {
	err := r.err
	for _, s := range r.sections {
		err = errors.Join(err, s.Err())
	}
	if err != nil {
		return fmt.Errorf("error occured during declaring config: %w", err)
	}
	return nil
}

func (r *Root) bindPositional(args []string) error {
	r.positional, r.positionalOwner = nil, nil
	if len(args) == 0 {
		return nil
	}

	for _, s := range r.sections {
		for _, k := range s.keys {
			if !k.positional {
				continue
			}
			if k.kind != KindList && len(args) > 1 {
				return argumentError("%w: %s", ErrUnexpectedArgument, strings.Join(args[1:], " "))
			}
			r.positional = append([]string(nil), args...)
			r.positionalOwner = s
			return nil
		}
	}

	return argumentError("%w: %s", ErrUnexpectedArgument, strings.Join(args, " "))
}

func (r *Root) configEnv() string {
	return envName(r.opts.EnvPrefix, "", configFlag)
}

func (r *Root) explicitConfigPath() string {
	if path := strings.TrimSpace(*r.configPath); path != "" {
		return path
	}
	return strings.TrimSpace(r.opts.Environ[r.configEnv()])
}

func (r *Root) loadFiles() error {
	files := make([]*FileSource, 0, 2)

	explicit := r.explicitConfigPath()
	if explicit != "" {
		src, err := LoadFile(explicit)
		switch {
		case errors.Is(err, ErrConfigUnreadable):
			return &ArgumentError{Err: err}
		case err != nil:
			r.log.Warn().Err(err).Str("path", explicit).Msg("cannot parse config file, ignoring it")
		default:
			files = append(files, src)
		}
	}

	if !r.opts.NoDefaultConfig && r.opts.DefaultConfigPath != "" && !samePath(explicit, r.opts.DefaultConfigPath) {
		src, err := LoadFile(r.opts.DefaultConfigPath)
		if err != nil {
			r.log.Debug().Err(err).Str("path", r.opts.DefaultConfigPath).Msg("default config file not loaded")
		} else {
			files = append(files, src)
		}
	}

	r.files = files
	return nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ea, errA := expandPath(a)
	eb, errB := expandPath(b)
	return errA == nil && errB == nil && ea == eb
}

func (r *Root) commandLine(s *Section) CommandLine {
	cl := CommandLine{Flags: r.flags}
	if s == r.positionalOwner {
		cl.Args = r.positional
	}
	return cl
}

// ResolveAll resolves every section in declaration order. The resolved views
// are committed only when all sections succeed; the first missing required
// key aborts resolution and is returned as an [*ArgumentError] wrapping a
// [*MissingKeyError]. Resolving again from the same inputs yields equal
// views.
func (r *Root) ResolveAll() error {
	if !r.loaded {
		return fmt.Errorf("%w: call Parse or Load first", ErrNotParsed)
	}

	views := make([]*Resolved, len(r.sections))
	for i, s := range r.sections {
		res, err := s.Resolve(r.commandLine(s), r.files)
		if err != nil {
			return &ArgumentError{Err: err}
		}
		r.log.Debug().
			Str("section", s.name).
			Strs("keys", res.Keys()).
			Msg("section resolved")
		views[i] = res
	}

	for i, s := range r.sections {
		s.resolved = views[i]
	}
	return nil
}

// Resolved returns the committed resolved view of the section called name.
func (r *Root) Resolved(name string) (*Resolved, error) {
	s, ok := r.Section(name)
	if !ok {
		return nil, fmt.Errorf("unknown config section %q", name)
	}
	if s.resolved == nil {
		return nil, fmt.Errorf("%w: section %s", ErrNotResolved, s.name)
	}
	return s.resolved, nil
}

// Usage renders the flags grouped by section.
func (r *Root) Usage() string {
	var b strings.Builder

	b.WriteString("general:\n")
	b.WriteString(r.general.FlagUsages())

	for _, s := range r.sections {
		b.WriteString("\n" + s.name + ":")
		if s.description != "" {
			b.WriteString(" " + s.description)
		}
		b.WriteString("\n")
		for _, k := range s.keys {
			if k.positional {
				fmt.Fprintf(&b, "      %-28s %s\n", strings.ToUpper(k.name), k.usageText())
			}
		}
		b.WriteString(s.flags.FlagUsages())
	}
	return b.String()
}
