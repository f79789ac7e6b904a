// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package downloader

import (
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/openphoto-utils/internal/config"
)

// Section is the name of the downloader configuration section.
const Section = "downloader"

// Logical keys of the downloader section.
const (
	KeyPhotoDirectory      = "photo_directory"
	KeyPhotoCacheDirectory = "photo_cache_directory"
	KeyIndex               = "index"
)

// DefaultIndexName is the file name of the cache index inside the cache
// directory.
const DefaultIndexName = ".openphoto-index.db"

// Options is the typed downloader configuration.
type Options struct {
	// PhotoDirectory is the destination; it must exist.
	PhotoDirectory string
	// CacheDirectory is searched for photos before downloading them. Empty
	// disables the cache.
	CacheDirectory string
	// IndexPath is the sqlite index of the cache directory.
	IndexPath string
}

// Declare registers the downloader keys on s.
func Declare(s *config.Section) {
	s.RegisterKey(config.Flag{Name: "photo-directory", Shorthand: "d", Usage: "Photo directory"}, config.Required())
	s.RegisterKey(config.Flag{Name: "photo-cache-directory", Usage: "Search for photos in this directory before downloading"})
	s.RegisterKey(config.Flag{Name: "index", Usage: "Cache index database (default <cache>/" + DefaultIndexName + ")"})
}

// OptionsFromConfig maps the resolved downloader section to [Options] with
// every path expanded to an absolute one.
func OptionsFromConfig(res *config.Resolved) (Options, error) {
	var (
		opts Options
		err  error
	)
	if opts.PhotoDirectory, err = expand(res, KeyPhotoDirectory); err != nil {
		return Options{}, err
	}
	if opts.CacheDirectory, err = expand(res, KeyPhotoCacheDirectory); err != nil {
		return Options{}, err
	}
	if opts.IndexPath, err = expand(res, KeyIndex); err != nil {
		return Options{}, err
	}
	if opts.IndexPath == "" && opts.CacheDirectory != "" {
		opts.IndexPath = filepath.Join(opts.CacheDirectory, DefaultIndexName)
	}
	return opts, nil
}

func expand(res *config.Resolved, key string) (string, error) {
	path, err := config.ExpandPath(res.String(key))
	if err != nil {
		return "", &config.ArgumentError{Err: fmt.Errorf("%w: %s: %w", ErrInvalidOptions, key, err)}
	}
	return path, nil
}
