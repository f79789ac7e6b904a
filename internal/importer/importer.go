// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package importer uploads local photos to the photo server.
//
// Targets are either a list of files or a list of directories. Directories
// are walked (subdirectories only with Recurse) and, with CreateAlbums, every
// directory gets an album named after it. With CompareHashes the remote photo
// hashes are fetched once and files already on the server are updated
// instead of uploaded again.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MKhiriev/openphoto-utils/internal/adapter"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

// Mode tells how the targets are interpreted.
type Mode int

const (
	ModeFiles Mode = iota
	ModeDirectories
)

// Report counts the outcome of an import.
type Report struct {
	Uploaded int64
	Updated  int64
	Existing int64
	Failed   int64
}

// Importer uploads photos with a [adapter.PhotoClient].
type Importer struct {
	client adapter.PhotoClient
	logger *logger.Logger
	title  cases.Caser
}

type job struct {
	path   string
	albums []string
}

type counters struct {
	uploaded, updated, existing, failed atomic.Int64
}

func (c *counters) report() Report {
	return Report{
		Uploaded: c.uploaded.Load(),
		Updated:  c.updated.Load(),
		Existing: c.existing.Load(),
		Failed:   c.failed.Load(),
	}
}

// New constructs an Importer.
func New(client adapter.PhotoClient, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{
		client: client,
		logger: log,
		title:  cases.Title(language.Und),
	}
}

// Validate checks option combinations and the targets on disk. Violations
// are returned as [*config.ArgumentError].
func (o Options) Validate() (Mode, error) {
	if len(o.Targets) == 0 {
		return 0, invalid("no target given")
	}
	if o.Album != "" && o.CreateAlbums {
		return 0, invalid("conflicting options --album and --create-albums")
	}

	dirs := 0
	for _, target := range o.Targets {
		info, err := os.Stat(target)
		if err != nil {
			return 0, &config.ArgumentError{Err: fmt.Errorf("%w: %w", ErrInvalidOptions, err)}
		}
		switch {
		case info.IsDir():
			dirs++
		case !info.Mode().IsRegular():
			return 0, invalid("%s is neither a file nor a directory", target)
		}
	}

	switch dirs {
	case 0:
		return ModeFiles, nil
	case len(o.Targets):
		if len(o.Targets) > 1 && o.Album != "" {
			return 0, invalid("cannot set --album with multiple target directories")
		}
		return ModeDirectories, nil
	default:
		return 0, invalid("cannot mix files and directories")
	}
}

func invalid(format string, args ...any) error {
	return &config.ArgumentError{Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...)}
}

// Run imports the targets of opts. Per-photo failures are logged and
// counted; Run then returns an error wrapping [ErrUploadsFailed] together
// with the report. Invalid options, album creation and hash listing failures
// abort the import.
func (i *Importer) Run(ctx context.Context, opts Options) (Report, error) {
	mode, err := opts.Validate()
	if err != nil {
		return Report{}, err
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	var jobs []job
	switch mode {
	case ModeDirectories:
		jobs, err = i.directoryJobs(ctx, opts)
	default:
		jobs, err = i.fileJobs(ctx, opts)
	}
	if err != nil {
		return Report{}, err
	}

	var hashes map[string]models.Photo
	if opts.CompareHashes {
		if hashes, err = i.remoteHashes(ctx); err != nil {
			return Report{}, err
		}
	}

	var c counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			i.importPhoto(gctx, j, opts, hashes, &c)
			return nil
		})
	}
	err = g.Wait()

	report := c.report()
	i.logger.Info().
		Int64("uploaded", report.Uploaded).
		Int64("updated", report.Updated).
		Int64("existing", report.Existing).
		Int64("failed", report.Failed).
		Msg("import finished")

	if err != nil {
		return report, fmt.Errorf("import interrupted: %w", err)
	}
	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrUploadsFailed, report.Failed, len(jobs))
	}
	return report, nil
}

func (i *Importer) fileJobs(ctx context.Context, opts Options) ([]job, error) {
	if opts.Recurse {
		i.logger.Warn().Msg("--recurse ignored with files")
	}
	if opts.CreateAlbums {
		i.logger.Warn().Msg("--create-albums ignored with files")
	}

	albums, err := i.albumIDs(ctx, opts.Album)
	if err != nil {
		return nil, err
	}

	jobs := make([]job, 0, len(opts.Targets))
	for _, target := range opts.Targets {
		path, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", target, err)
		}
		jobs = append(jobs, job{path: path, albums: albums})
	}
	return jobs, nil
}

func (i *Importer) directoryJobs(ctx context.Context, opts Options) ([]job, error) {
	if opts.Recurse && !opts.CreateAlbums {
		i.logger.Warn().Msg("--recurse without --create-albums puts every photo in the same album")
	}

	albums, err := i.albumIDs(ctx, opts.Album)
	if err != nil {
		return nil, err
	}

	var jobs []job
	dirAlbums := make(map[string][]string)
	for _, target := range opts.Targets {
		root := filepath.Clean(target)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if path == root {
					return walkErr
				}
				i.logger.Warn().Err(walkErr).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}

			if d.IsDir() {
				if path != root && !opts.Recurse {
					return fs.SkipDir
				}
				if opts.CreateAlbums {
					ids, err := i.albumIDs(ctx, i.albumName(path))
					if err != nil {
						return err
					}
					dirAlbums[path] = ids
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if opts.CreateAlbums {
				jobs = append(jobs, job{path: path, albums: dirAlbums[filepath.Dir(path)]})
			} else {
				jobs = append(jobs, job{path: path, albums: albums})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}
	return jobs, nil
}

// albumName derives an album name from a directory path: its base name,
// title-cased.
func (i *Importer) albumName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return i.title.String(filepath.Base(abs))
}

func (i *Importer) albumIDs(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}
	album, err := i.client.CreateAlbum(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create album %q: %w", name, err)
	}
	i.logger.Info().Str("album", album.Name).Str("id", album.ID).Msg("uploading to album")
	return []string{album.ID}, nil
}

func (i *Importer) remoteHashes(ctx context.Context) (map[string]models.Photo, error) {
	i.logger.Info().Msg("getting remote hashes")

	photos, err := i.client.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote photos: %w", err)
	}
	hashes := make(map[string]models.Photo, len(photos))
	for _, p := range photos {
		if p.Hash != "" {
			hashes[p.Hash] = p
		}
	}
	return hashes, nil
}

func (i *Importer) importPhoto(ctx context.Context, j job, opts Options, hashes map[string]models.Photo, c *counters) {
	log := i.logger.With().Str("path", j.path).Logger()

	if hashes != nil {
		sum, err := utils.HashFile(j.path)
		if err != nil {
			log.Error().Err(err).Msg("cannot hash photo")
			c.failed.Add(1)
			return
		}
		if photo, ok := hashes[sum]; ok {
			log.Info().Str("id", photo.ID).Msg("hash found, skipping upload, updating info")
			public := opts.Public
			_, err = i.client.UpdatePhoto(ctx, photo.ID, models.PhotoUpdate{
				AddTags:    opts.Tags,
				RemoveTags: opts.RemoveTags,
				Albums:     j.albums,
				Public:     &public,
			})
			if err != nil {
				log.Error().Err(err).Str("id", photo.ID).Msg("error while updating photo")
				c.failed.Add(1)
				return
			}
			c.updated.Add(1)
			return
		}
	}

	photo, err := i.client.UploadPhoto(ctx, j.path, models.UploadOptions{
		Tags:   opts.Tags,
		Albums: j.albums,
		Public: opts.Public,
	})
	switch {
	case errors.Is(err, adapter.ErrConflict):
		log.Debug().Msg("photo hash already exists, skipping")
		c.existing.Add(1)
	case err != nil:
		log.Error().Err(err).Strs("albums", j.albums).Msg("error while uploading photo")
		c.failed.Add(1)
	default:
		log.Info().Str("id", photo.ID).Msg("photo uploaded")
		c.uploaded.Add(1)
	}
}
