// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func credentialsEnv() map[string]string {
	return map[string]string{
		"OPENPHOTO_API_HOST":            "env.example.com",
		"OPENPHOTO_API_CONSUMER_KEY":    "env-ck",
		"OPENPHOTO_API_CONSUMER_SECRET": "env-cs",
		"OPENPHOTO_API_OAUTH_TOKEN":     "env-ot",
		"OPENPHOTO_API_OAUTH_SECRET":    "env-os",
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestRoot(t *testing.T, environ map[string]string, tool string) *Root {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	r, err := NewRoot(Options{ToolSection: tool, Environ: environ, NoDefaultConfig: true})
	require.NoError(t, err)
	return r
}

const fullFile = `
[api]
host = file.example.com
consumer_key = file-ck
consumer_secret = file-cs
oauth_token = file-ot
oauth_secret = file-os
`

// ── precedence ────────────────────────────────────────────────────────────────

// TestRoot_Precedence verifies command line > environment > file > default.
func TestRoot_Precedence(t *testing.T) {
	path := writeConfig(t, fullFile)

	tests := []struct {
		name       string
		environ    map[string]string
		args       []string
		want       string
		wantOrigin Origin
	}{
		{
			name:       "command line beats environment and file",
			environ:    credentialsEnv(),
			args:       []string{"--config", path, "--api-host=cli.example.com"},
			want:       "cli.example.com",
			wantOrigin: OriginCommandLine,
		},
		{
			name:       "environment beats file",
			environ:    credentialsEnv(),
			args:       []string{"--config", path},
			want:       "env.example.com",
			wantOrigin: OriginEnvironment,
		},
		{
			name:       "file when nothing else is set",
			args:       []string{"-c", path},
			want:       "file.example.com",
			wantOrigin: OriginFile,
		},
		{
			name:       "empty flag is absent",
			environ:    credentialsEnv(),
			args:       []string{"--config", path, "--api-host="},
			want:       "env.example.com",
			wantOrigin: OriginEnvironment,
		},
		{
			name:       "empty environment variable is absent",
			environ:    map[string]string{"OPENPHOTO_API_HOST": ""},
			args:       []string{"--config", path},
			want:       "file.example.com",
			wantOrigin: OriginFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoot(t, tt.environ, "")
			require.NoError(t, r.Parse(tt.args))
			require.NoError(t, r.ResolveAll())

			res, err := r.Resolved(APISection)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.String(APIHost))
			origin, ok := res.Origin(APIHost)
			require.True(t, ok)
			assert.Equal(t, tt.wantOrigin, origin)
		})
	}
}

// TestRoot_Defaults verifies that compiled defaults fill unset keys and that
// unset keys without defaults stay undefined.
func TestRoot_Defaults(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "")
	require.NoError(t, r.Parse(nil))
	require.NoError(t, r.ResolveAll())

	res, err := r.Resolved(APISection)
	require.NoError(t, err)
	assert.Equal(t, "30s", res.String(APITimeout))
	origin, _ := res.Origin(APITimeout)
	assert.Equal(t, OriginDefault, origin)
	assert.False(t, res.Has(APIDebugHTTP))
}

// ── required keys ─────────────────────────────────────────────────────────────

// TestRoot_ResolveAll_MissingRequired verifies that a file lacking a required
// key fails resolution and commits nothing.
func TestRoot_ResolveAll_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
[api]
host = file.example.com
consumer_key = ck
consumer_secret = cs
oauth_token = ot
`)
	r := newTestRoot(t, nil, "importer")
	r.Tool().RegisterKey(Flag{Name: "album"})
	require.NoError(t, r.Parse([]string{"--config", path}))

	err := r.ResolveAll()
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))

	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, APISection, missing.Section)
	assert.Equal(t, APIOAuthSecret, missing.Key)

	_, err = r.Resolved(APISection)
	assert.ErrorIs(t, err, ErrNotResolved)
	_, err = r.Resolved("importer")
	assert.ErrorIs(t, err, ErrNotResolved)
}

// TestRoot_ResolveAll_FirstMissingInOrder verifies that the first missing
// required key in registration order is reported.
func TestRoot_ResolveAll_FirstMissingInOrder(t *testing.T) {
	r := newTestRoot(t, map[string]string{"OPENPHOTO_API_HOST": "h"}, "")
	require.NoError(t, r.Parse(nil))

	var missing *MissingKeyError
	require.True(t, errors.As(r.ResolveAll(), &missing))
	assert.Equal(t, APIConsumerKey, missing.Key)
}

// TestRoot_ResolveAll_FailureKeepsPreviousViews verifies that a failed pass
// leaves the previously committed views untouched.
func TestRoot_ResolveAll_FailureKeepsPreviousViews(t *testing.T) {
	r := newTestRoot(t, nil, "")
	require.NoError(t, r.Parse([]string{
		"-H", "h", "-K", "ck", "-S", "cs", "-T", "ot", "-X", "os",
	}))
	require.NoError(t, r.ResolveAll())
	before, err := r.Resolved(APISection)
	require.NoError(t, err)

	require.NoError(t, r.Flags().Set("api-host", ""))
	require.Error(t, r.ResolveAll())

	after, err := r.Resolved(APISection)
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestRoot_ResolveAll_BeforeParse(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "")
	assert.ErrorIs(t, r.ResolveAll(), ErrNotParsed)
}

// ── idempotence and isolation ─────────────────────────────────────────────────

// TestRoot_ResolveAll_Idempotent verifies that resolving twice from the same
// inputs yields equal views.
func TestRoot_ResolveAll_Idempotent(t *testing.T) {
	path := writeConfig(t, fullFile+"\n[importer]\nalbum = Holidays\n")
	r := newTestRoot(t, map[string]string{"OPENPHOTO_API_OAUTH_TOKEN": "env-ot"}, "importer")
	r.Tool().RegisterKey(Flag{Name: "album", Shorthand: "a"})
	r.Tool().RegisterKey(Flag{Name: "public", Kind: KindBool})
	require.NoError(t, r.Parse([]string{"--config", path, "--public"}))

	require.NoError(t, r.ResolveAll())
	firstAPI, _ := r.Resolved(APISection)
	firstTool, _ := r.Resolved("importer")

	require.NoError(t, r.ResolveAll())
	secondAPI, _ := r.Resolved(APISection)
	secondTool, _ := r.Resolved("importer")

	assert.True(t, firstAPI.Equal(secondAPI))
	assert.True(t, firstTool.Equal(secondTool))
	assert.Equal(t, firstTool.Map(), secondTool.Map())
}

// TestRoot_SectionIsolation verifies that the same key name in two sections
// resolves independently.
func TestRoot_SectionIsolation(t *testing.T) {
	path := writeConfig(t, fullFile+"\n[importer]\nhost = importer.example.com\n")
	r := newTestRoot(t, map[string]string{"OPENPHOTO_IMPORTER_TIMEOUT": "5s"}, "importer")
	r.Tool().RegisterKey(Flag{Name: "host"})
	r.Tool().RegisterKey(Flag{Name: "timeout"})
	require.NoError(t, r.Parse([]string{"--config", path}))
	require.NoError(t, r.ResolveAll())

	api, err := r.Resolved(APISection)
	require.NoError(t, err)
	tool, err := r.Resolved("importer")
	require.NoError(t, err)

	assert.Equal(t, "file.example.com", api.String("host"))
	assert.Equal(t, "importer.example.com", tool.String("host"))
	assert.Equal(t, "30s", api.String("timeout"))
	assert.Equal(t, "5s", tool.String("timeout"))
}

// ── config files ──────────────────────────────────────────────────────────────

// TestRoot_Load_ExplicitConfigMissing verifies that a missing explicit config
// file is a user error.
func TestRoot_Load_ExplicitConfigMissing(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "")

	err := r.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.ini")})
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))
	assert.ErrorIs(t, err, ErrConfigUnreadable)
}

// TestRoot_Load_ExplicitConfigFromEnv verifies that $OPENPHOTO_CONFIG names
// the explicit config file.
func TestRoot_Load_ExplicitConfigFromEnv(t *testing.T) {
	path := writeConfig(t, fullFile)
	r := newTestRoot(t, map[string]string{"OPENPHOTO_CONFIG": path}, "")

	require.NoError(t, r.Parse(nil))
	require.NoError(t, r.ResolveAll())

	settings, err := r.API()
	require.NoError(t, err)
	assert.Equal(t, "file.example.com", settings.Host)
	assert.Equal(t, []string{path}, r.ConfigFiles())
}

// TestRoot_Load_InvalidConfigSkipped verifies that an unparsable explicit
// config file is skipped instead of failing.
func TestRoot_Load_InvalidConfigSkipped(t *testing.T) {
	path := writeConfig(t, "[api\nhost = broken\n")
	r := newTestRoot(t, credentialsEnv(), "")

	require.NoError(t, r.Parse([]string{"--config", path}))
	assert.Empty(t, r.ConfigFiles())
	require.NoError(t, r.ResolveAll())
}

// TestRoot_Load_DefaultConfig verifies that the default file is read after
// the explicit one and that a missing default file is ignored.
func TestRoot_Load_DefaultConfig(t *testing.T) {
	defaultPath := writeConfig(t, fullFile+"timeout = 1m\n")
	explicitPath := writeConfig(t, "[api]\nhost = explicit.example.com\n")

	r, err := NewRoot(Options{Environ: map[string]string{}, DefaultConfigPath: defaultPath})
	require.NoError(t, err)
	require.NoError(t, r.Parse([]string{"--config", explicitPath}))
	require.NoError(t, r.ResolveAll())

	assert.Equal(t, []string{explicitPath, defaultPath}, r.ConfigFiles())
	settings, err := r.API()
	require.NoError(t, err)
	assert.Equal(t, "explicit.example.com", settings.Host)
	assert.Equal(t, "file-ck", settings.ConsumerKey)

	missing, err := NewRoot(Options{
		Environ:           credentialsEnv(),
		DefaultConfigPath: filepath.Join(t.TempDir(), "absent.ini"),
	})
	require.NoError(t, err)
	require.NoError(t, missing.Parse(nil))
	assert.Empty(t, missing.ConfigFiles())
}

// TestRoot_Load_SameFileOnce verifies that the default file is not read twice
// when it is also given explicitly.
func TestRoot_Load_SameFileOnce(t *testing.T) {
	path := writeConfig(t, fullFile)
	r, err := NewRoot(Options{Environ: map[string]string{}, DefaultConfigPath: path})
	require.NoError(t, err)

	require.NoError(t, r.Parse([]string{"--config", path}))
	assert.Equal(t, []string{path}, r.ConfigFiles())
}

// TestRoot_DottedKeysAndDefaultSection verifies key normalization and the
// DEFAULT section of config files.
func TestRoot_DottedKeysAndDefaultSection(t *testing.T) {
	path := writeConfig(t, `
[DEFAULT]
timeout = 10s
jobs = 4

[api]
host = file.example.com
consumer.key = dotted-ck
consumer-secret = dashed-cs
oauth_token = ot
oauth_secret = os
`)
	r := newTestRoot(t, nil, "importer")
	r.Tool().RegisterKey(Flag{Name: "jobs", Default: "1"})
	require.NoError(t, r.Parse([]string{"--config", path}))
	require.NoError(t, r.ResolveAll())

	settings, err := r.API()
	require.NoError(t, err)
	assert.Equal(t, "dotted-ck", settings.ConsumerKey)
	assert.Equal(t, "dashed-cs", settings.ConsumerSecret)
	assert.Equal(t, "10s", settings.Timeout.String())

	tool, err := r.Resolved("importer")
	require.NoError(t, err)
	assert.Equal(t, "1", tool.String("jobs"), "DEFAULT applies only to sections present in the file")
}

// ── command line ──────────────────────────────────────────────────────────────

// TestRoot_Parse_Positional verifies binding of positional arguments to the
// tool section.
func TestRoot_Parse_Positional(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "importer")
	r.Tool().RegisterKey(Flag{Name: "target", Kind: KindList, Positional: true}, Required())
	r.Tool().RegisterKey(Flag{Name: "recurse", Shorthand: "r", Kind: KindBool})

	require.NoError(t, r.Parse([]string{"-r", "a.jpg", "dir"}))
	require.NoError(t, r.ResolveAll())

	tool, err := r.Resolved("importer")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "dir"}, tool.Strings("target"))
	assert.True(t, tool.Bool("recurse"))

	api, err := r.Resolved(APISection)
	require.NoError(t, err)
	assert.False(t, api.Has("target"))
}

func TestRoot_Parse_UnexpectedArgument(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "")

	err := r.Parse([]string{"stray"})
	assert.True(t, IsArgumentError(err))
	assert.ErrorIs(t, err, ErrUnexpectedArgument)
}

func TestRoot_Parse_Errors(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "")

	err := r.Parse([]string{"--no-such-flag"})
	assert.True(t, IsArgumentError(err))

	r = newTestRoot(t, credentialsEnv(), "")
	assert.ErrorIs(t, r.Parse([]string{"--help"}), pflag.ErrHelp)
}

// TestRoot_DuplicateDeclarations verifies that declaration errors surface on
// Load and are not user errors.
func TestRoot_DuplicateDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		declare func(r *Root)
	}{
		{
			name: "key registered twice",
			declare: func(r *Root) {
				r.Tool().RegisterKey(Flag{Name: "album"})
				r.Tool().RegisterKey(Flag{Name: "album"})
			},
		},
		{
			name: "shorthand of the api section",
			declare: func(r *Root) {
				r.Tool().RegisterKey(Flag{Name: "hashes", Shorthand: "H", Kind: KindBool})
			},
		},
		{
			name: "config flag",
			declare: func(r *Root) {
				r.Tool().RegisterKey(Flag{Name: "config"})
			},
		},
		{
			name: "section declared twice",
			declare: func(r *Root) {
				r.AddSection(APISection)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoot(t, credentialsEnv(), "importer")
			tt.declare(r)

			err := r.Parse(nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDuplicateKey)
			assert.False(t, IsArgumentError(err))
		})
	}
}

// TestRoot_Load_AfterExternalParse verifies the path used by outer commands
// that parse the flag set themselves.
func TestRoot_Load_AfterExternalParse(t *testing.T) {
	r := newTestRoot(t, credentialsEnv(), "downloader")
	r.Tool().RegisterKey(Flag{Name: "photo-directory", Shorthand: "d"}, Required())

	fs := pflag.NewFlagSet("outer", pflag.ContinueOnError)
	fs.AddFlagSet(r.Flags())
	require.NoError(t, fs.Parse([]string{"-d", "/tmp/photos"}))

	require.NoError(t, r.Load(fs.Args()))
	require.NoError(t, r.ResolveAll())

	tool, err := r.Resolved("downloader")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/photos", tool.String("photo_directory"))
}

func TestRoot_Usage(t *testing.T) {
	r := newTestRoot(t, nil, "importer")
	r.Tool().RegisterKey(Flag{Name: "target", Kind: KindList, Positional: true, Usage: "Files to import"})
	r.AddSection("logging", WithArgPrefix("log"), WithDescription("Logging")).
		RegisterKey(Flag{Name: "level", Default: "info"})

	usage := r.Usage()
	assert.Contains(t, usage, "general:")
	assert.Contains(t, usage, "--config")
	assert.Contains(t, usage, "api: OpenPhoto API connection")
	assert.Contains(t, usage, "--api-host")
	assert.Contains(t, usage, "[$OPENPHOTO_API_HOST] (required)")
	assert.Contains(t, usage, "TARGET")
	assert.Contains(t, usage, "--log-level")
	assert.Contains(t, usage, "(default info)")
}

func TestRoot_Sections(t *testing.T) {
	r := newTestRoot(t, nil, "importer")
	logging := r.AddSection("Logging")

	names := make([]string, 0)
	for _, s := range r.Sections() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"api", "importer", "logging"}, names)

	s, ok := r.Section("LOGGING")
	require.True(t, ok)
	assert.Same(t, logging, s)
	assert.Same(t, r.APISection(), r.Sections()[0])
	assert.Nil(t, newTestRoot(t, nil, "").Tool())
}
