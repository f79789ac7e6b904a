// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const defaultConfigLocation = "~/.config/openphoto-utils/config.ini"

// FileSource is one parsed INI config file.
type FileSource struct {
	path string
	file *ini.File
}

// Path returns the absolute path the file was read from.
func (f *FileSource) Path() string {
	return f.path
}

// Sections returns the lower-cased names of the sections defined in the file,
// excluding the DEFAULT section.
func (f *FileSource) Sections() []string {
	names := make([]string, 0)
	for _, s := range f.file.Sections() {
		if strings.EqualFold(s.Name(), ini.DefaultSection) {
			continue
		}
		names = append(names, s.Name())
	}
	return names
}

// DefaultConfigPath returns the absolute path of the default configuration
// file, ~/.config/openphoto-utils/config.ini.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// ExpandPath exposes the path expansion rules (tilde, clean, absolute) for
// other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// LoadFile reads and parses an INI config file.
//
// Errors wrap [ErrConfigUnreadable] when the file cannot be opened or read,
// and [ErrConfigInvalid] when its content is not valid INI.
func LoadFile(path string) (*FileSource, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}

	data, err := readFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigInvalid, resolved, err)
	}

	return &FileSource{path: resolved, file: file}, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return io.ReadAll(f)
}

// fileLayer exposes one section of a config file. Keys of the DEFAULT section
// are visible unless the section overrides them. Registered keys are parsed
// according to their kind, unknown keys are kept as strings.
func fileLayer(section string, keys []*keySpec, src *FileSource) *Layer {
	if src == nil || src.file == nil {
		return nil
	}

	kinds := make(map[string]Kind, len(keys))
	for _, k := range keys {
		kinds[k.name] = k.kind
	}

	data := make(map[string]Value)
	collect := func(sec *ini.Section) {
		for _, key := range sec.Keys() {
			logical := NormalizeKey(key.Name())
			// Value, not String: values are taken verbatim, no %(name)s expansion.
			data[logical] = parseRaw(kinds[logical], key.Value())
		}
	}

	named, err := src.file.GetSection(strings.ToLower(section))
	if err != nil || strings.EqualFold(section, ini.DefaultSection) {
		// DEFAULT values only apply to sections present in the file.
		return NewLayer(OriginFile, src.path, nil)
	}

	// The parser keeps DEFAULT under its upper-case name even when section
	// names are lower-cased.
	for _, sec := range src.file.Sections() {
		if strings.EqualFold(sec.Name(), ini.DefaultSection) {
			collect(sec)
		}
	}
	collect(named)

	return NewLayer(OriginFile, src.path, data)
}
