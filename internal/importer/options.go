// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package importer

import (
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
)

// Section is the name of the importer configuration section.
const Section = "importer"

// Logical keys of the importer section.
const (
	KeyTarget       = "target"
	KeyAlbum        = "album"
	KeyRecurse      = "recurse"
	KeyCreateAlbums = "create_albums"
	KeyHashes       = "hashes"
	KeyTag          = "tag"
	KeyRemoveTag    = "remove_tag"
	KeyPublic       = "public"
	KeyJobs         = "jobs"
)

// Options is the typed importer configuration.
type Options struct {
	// Targets are either all files or all directories.
	Targets       []string
	Album         string
	Recurse       bool
	CreateAlbums  bool
	CompareHashes bool
	Tags          []string
	RemoveTags    []string
	Public        bool
	// Jobs bounds the number of concurrent uploads.
	Jobs int
}

// Declare registers the importer keys on s.
func Declare(s *config.Section) {
	s.RegisterKey(config.Flag{Name: "target", Kind: config.KindList, Positional: true, Usage: "Directory or file to upload"}, config.Required())
	s.RegisterKey(config.Flag{Name: "album", Shorthand: "a", Usage: "Upload to this album, created when missing"})
	s.RegisterKey(config.Flag{Name: "recurse", Shorthand: "r", Kind: config.KindBool, Usage: "Recurse into subdirectories"})
	s.RegisterKey(config.Flag{Name: "create-albums", Shorthand: "C", Kind: config.KindBool, Usage: "Create albums from directories"})
	s.RegisterKey(config.Flag{Name: "hashes", Kind: config.KindBool, Usage: "Compare hashes before uploading"})
	s.RegisterKey(config.Flag{Name: "tag", Shorthand: "t", Kind: config.KindList, Usage: "Add tags to photos (can be specified multiple times)"})
	s.RegisterKey(config.Flag{Name: "remove-tag", Shorthand: "R", Kind: config.KindList, Usage: "Remove tags from photos (can be specified multiple times)"})
	s.RegisterKey(config.Flag{Name: "public", Kind: config.KindBool, Usage: "Make photos public"})
	s.RegisterKey(config.Flag{Name: "jobs", Shorthand: "j", Usage: "Number of concurrent uploads", Default: "1"})
}

// OptionsFromConfig maps the resolved importer section to [Options]. A jobs
// value that is not a positive number is logged and replaced by 1.
func OptionsFromConfig(res *config.Resolved, log *logger.Logger) (Options, error) {
	if log == nil {
		log = logger.Nop()
	}
	opts := Options{
		Targets:       res.Strings(KeyTarget),
		Album:         res.String(KeyAlbum),
		Recurse:       res.Bool(KeyRecurse),
		CreateAlbums:  res.Bool(KeyCreateAlbums),
		CompareHashes: res.Bool(KeyHashes),
		Tags:          res.Strings(KeyTag),
		RemoveTags:    res.Strings(KeyRemoveTag),
		Public:        res.Bool(KeyPublic),
		Jobs:          1,
	}

	if res.Has(KeyJobs) {
		jobs, ok := res.Int(KeyJobs)
		if ok && jobs >= 1 {
			opts.Jobs = jobs
		} else {
			log.Warn().Str("jobs", res.String(KeyJobs)).Msg("jobs is not a positive number, uploading one photo at a time")
		}
	}
	return opts, nil
}
