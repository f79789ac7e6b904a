// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the configuration, logging and API client shared by the
// openphoto commands.
//
// A [Bootstrap] declares the sections of one tool before the command line is
// parsed; once the outer command parsed its arguments, [Bootstrap.Load]
// resolves them into an [Env].
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/openphoto-utils/internal/adapter"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
)

// LoggingSection holds the logging keys of every tool. Its flags are
// --log-level and --log-format.
const LoggingSection = "logging"

// Logical keys of the logging section.
const (
	KeyLogLevel  = "level"
	KeyLogFormat = "format"
)

// Tool describes the tool-specific configuration section.
type Tool struct {
	// Name is the section name; empty declares no tool section.
	Name string
	// Declare registers the tool keys.
	Declare func(s *config.Section)
}

// Options tunes a [Bootstrap]; zero values use the process environment, the
// default config file and stderr.
type Options struct {
	Environ           map[string]string
	DefaultConfigPath string
	NoDefaultConfig   bool
	LogOutput         io.Writer
}

// Bootstrap owns the configuration root of one command.
type Bootstrap struct {
	tool    Tool
	opts    Options
	root    *config.Root
	logger  *logger.Logger
	logging *config.Section
}

// New declares the api, tool and logging sections.
func New(tool Tool, opts Options) (*Bootstrap, error) {
	if opts.Environ == nil {
		opts.Environ = config.Environ()
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	// config file warnings are logged before the logging section resolves
	early := logger.New(roleOf(tool), logger.Settings{
		Level:  opts.Environ[config.DefaultEnvPrefix+"_LOGGING_LEVEL"],
		Format: opts.Environ[config.DefaultEnvPrefix+"_LOGGING_FORMAT"],
		Output: opts.LogOutput,
	})

	root, err := config.NewRoot(config.Options{
		AppName:           "openphoto " + tool.Name,
		ToolSection:       tool.Name,
		Environ:           opts.Environ,
		DefaultConfigPath: opts.DefaultConfigPath,
		NoDefaultConfig:   opts.NoDefaultConfig,
		Logger:            early,
	})
	if err != nil {
		return nil, err
	}
	if tool.Declare != nil && root.Tool() != nil {
		tool.Declare(root.Tool())
	}

	logging := root.AddSection(LoggingSection, config.WithArgPrefix("log"), config.WithDescription("Logging"))
	logging.RegisterKey(config.Flag{Name: "log-level", Usage: "Log level: debug, info, warn or error", Default: "info"})
	logging.RegisterKey(config.Flag{Name: "log-format", Usage: "Log format: auto, json or console", Default: logger.FormatAuto})

	return &Bootstrap{
		tool:    tool,
		opts:    opts,
		root:    root,
		logger:  early,
		logging: logging,
	}, nil
}

func roleOf(tool Tool) string {
	if tool.Name == "" {
		return "openphoto"
	}
	return "openphoto-" + tool.Name
}

// Root returns the configuration root.
func (b *Bootstrap) Root() *config.Root {
	return b.root
}

// Flags returns the flags of every declared section.
func (b *Bootstrap) Flags() *pflag.FlagSet {
	return b.root.Flags()
}

// Parse parses args itself, for commands that do not let cobra parse
// flags, and loads the configuration like [Bootstrap.Load] without
// resolving it.
func (b *Bootstrap) Parse(args []string) error {
	return b.root.Parse(args)
}

// Load binds the positional arguments, reads the config files and resolves
// every section. Missing required keys are returned as
// [*config.ArgumentError].
func (b *Bootstrap) Load(positional []string) (*Env, error) {
	if err := b.root.Load(positional); err != nil {
		return nil, err
	}
	return b.Resolve()
}

// Resolve resolves a configuration loaded by [Bootstrap.Parse].
func (b *Bootstrap) Resolve() (*Env, error) {
	if err := b.root.ResolveAll(); err != nil {
		return nil, err
	}

	res, err := b.root.Resolved(LoggingSection)
	if err != nil {
		return nil, err
	}
	log := logger.New(roleOf(b.tool), logger.Settings{
		Level:  res.String(KeyLogLevel),
		Format: res.String(KeyLogFormat),
		Output: b.opts.LogOutput,
	})

	api, err := b.root.API()
	if err != nil {
		return nil, err
	}

	env := &Env{
		Root:   b.root,
		Logger: log,
		API:    api,
		tool:   b.tool.Name,
	}
	log.Debug().
		Strs("config_files", b.root.ConfigFiles()).
		Str("host", api.Host).
		Msg("configuration resolved")
	return env, nil
}

// Env is the resolved environment of a command.
type Env struct {
	Root   *config.Root
	Logger *logger.Logger
	API    config.APISettings

	tool string
}

// ToolConfig returns the resolved tool section.
func (e *Env) ToolConfig() (*config.Resolved, error) {
	if e.tool == "" {
		return nil, fmt.Errorf("no tool section declared")
	}
	return e.Root.Resolved(e.tool)
}

// Client builds the photo API client from the api settings.
func (e *Env) Client() (adapter.PhotoClient, error) {
	return adapter.NewHTTPPhotoClient(e.API, e.Logger.GetChildLogger("api"))
}
