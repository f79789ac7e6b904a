// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package downloader mirrors the photos of the server into a local
// directory.
//
// Originals are stored as <dest>/.photos/<hash><ext>, so a photo is fetched
// at most once, and hard-linked to <dest>/<original file name> when that name
// is free. Photos found in the cache directory are linked (or copied) from
// there instead of being downloaded. The cache directory is indexed by hash
// in a sqlite database so unchanged files are hashed only once.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/openphoto-utils/internal/adapter"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/store"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

const (
	// PhotosDir is the directory of <dest> holding the originals.
	PhotosDir = ".photos"
	// LockName is the lock file created in <dest> for the duration of a run.
	LockName = ".openphoto.lock"
)

// Report counts the outcome of a download.
type Report struct {
	Downloaded int
	Cached     int
	Existing   int
	Linked     int
	Failed     int
	// Failures holds the error of every failed photo, keyed by photo id.
	Failures map[string]error
}

// IndexOpener opens the cache index at path.
type IndexOpener func(ctx context.Context, path string, log *logger.Logger) (store.PhotoIndex, error)

// Downloader fetches photos with a [adapter.PhotoClient].
type Downloader struct {
	client    adapter.PhotoClient
	logger    *logger.Logger
	openIndex IndexOpener
}

// New constructs a Downloader using the sqlite cache index.
func New(client adapter.PhotoClient, log *logger.Logger) *Downloader {
	if log == nil {
		log = logger.Nop()
	}
	return &Downloader{
		client:    client,
		logger:    log,
		openIndex: store.OpenPhotoIndex,
	}
}

// Validate checks that the destination is an existing directory. Violations
// are returned as [*config.ArgumentError].
func (o Options) Validate() error {
	if o.PhotoDirectory == "" {
		return &config.ArgumentError{Err: fmt.Errorf("%w: no photo directory given", ErrInvalidOptions)}
	}
	info, err := os.Stat(o.PhotoDirectory)
	if err != nil || !info.IsDir() {
		return &config.ArgumentError{Err: fmt.Errorf("%w '%s'", ErrNotDirectory, o.PhotoDirectory)}
	}
	if o.CacheDirectory != "" {
		info, err = os.Stat(o.CacheDirectory)
		if err != nil || !info.IsDir() {
			return &config.ArgumentError{Err: fmt.Errorf("%w '%s'", ErrNotDirectory, o.CacheDirectory)}
		}
	}
	return nil
}

// Run downloads every photo of the server into opts.PhotoDirectory. Only one
// Run may work on a directory at a time; a concurrent one fails with
// [ErrLocked]. Per-photo failures are collected in the report and Run then
// returns an error wrapping [ErrDownloadsFailed].
func (d *Downloader) Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	lock := flock.New(filepath.Join(opts.PhotoDirectory, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return Report{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrLocked, opts.PhotoDirectory)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			d.logger.Warn().Err(err).Msg("failed to release download lock")
		}
	}()

	photoDir := filepath.Join(opts.PhotoDirectory, PhotosDir)
	if err = os.MkdirAll(photoDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create %s: %w", photoDir, err)
	}

	cache, err := d.loadCache(ctx, opts)
	if err != nil {
		return Report{}, err
	}

	photos, err := d.client.ListPhotos(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list remote photos: %w", err)
	}
	d.logger.Info().Int("photos", len(photos)).Str("destination", opts.PhotoDirectory).Msg("downloading photos")

	report := Report{Failures: make(map[string]error)}
	for _, photo := range photos {
		if err = ctx.Err(); err != nil {
			return report, fmt.Errorf("download interrupted: %w", err)
		}
		if err = d.fetch(ctx, photo, opts.PhotoDirectory, photoDir, cache, &report); err != nil {
			d.logger.Error().Err(err).Str("id", photo.ID).Msg("error while downloading photo")
			report.Failed++
			report.Failures[photo.ID] = err
		}
	}

	d.logger.Info().
		Int("downloaded", report.Downloaded).
		Int("cached", report.Cached).
		Int("existing", report.Existing).
		Int("linked", report.Linked).
		Int("failed", report.Failed).
		Msg("download finished")

	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrDownloadsFailed, report.Failed, len(photos))
	}
	return report, nil
}

func (d *Downloader) loadCache(ctx context.Context, opts Options) (Cache, error) {
	if opts.CacheDirectory == "" {
		return Cache{}, nil
	}

	indexPath := opts.IndexPath
	if indexPath == "" {
		indexPath = filepath.Join(opts.CacheDirectory, DefaultIndexName)
	}
	index, err := d.openIndex(ctx, indexPath, d.logger)
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}
	defer index.Close()

	// the index with its journal files and the lock are not cache content
	skip := []string{indexPath, filepath.Join(opts.PhotoDirectory, LockName)}
	cache, stats, err := scanCache(ctx, opts.CacheDirectory, index, skip, d.logger)
	if err != nil {
		return nil, err
	}
	d.logger.Info().
		Str("cache", opts.CacheDirectory).
		Int("files", stats.Files).
		Int("hashed", stats.Hashed).
		Int("removed", stats.Removed).
		Msg("cache directory indexed")
	return cache, nil
}

func (d *Downloader) fetch(ctx context.Context, photo models.Photo, dest, photoDir string, cache Cache, report *Report) error {
	name := photo.Hash
	if name == "" {
		name = photo.ID
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return ErrMissingPhotoName
	}
	target := filepath.Join(photoDir, name+photo.Extension())
	log := d.logger.With().Str("id", photo.ID).Str("path", target).Logger()

	switch _, err := os.Stat(target); {
	case err == nil:
		log.Debug().Msg("photo already stored, skipping")
		report.Existing++
	case !errors.Is(err, os.ErrNotExist):
		return err
	case photo.Hash != "" && cache[photo.Hash] != "":
		if err = linkOrCopy(cache[photo.Hash], target); err != nil {
			return fmt.Errorf("from cache: %w", err)
		}
		log.Info().Str("cache", cache[photo.Hash]).Msg("photo taken from cache")
		report.Cached++
	default:
		if err = d.download(ctx, photo, target); err != nil {
			return err
		}
		log.Info().Msg("photo downloaded")
		report.Downloaded++
	}

	linked, err := linkOriginalName(photo, dest, target)
	if err != nil {
		return err
	}
	if linked {
		report.Linked++
	}
	return nil
}

// download writes the photo to a temporary file next to target and renames
// it once complete and verified.
func (d *Downloader) download(ctx context.Context, photo models.Photo, target string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".download-*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = d.client.DownloadPhoto(ctx, photo, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}

	if photo.Hash != "" {
		sum, err := utils.HashFile(tmp.Name())
		if err != nil {
			return err
		}
		if !strings.EqualFold(sum, photo.Hash) {
			return fmt.Errorf("%w: got %s, want %s", ErrHashMismatch, sum, photo.Hash)
		}
	}

	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// linkOriginalName links target to dest/<original file name> unless the
// photo has no usable name or the name is taken.
func linkOriginalName(photo models.Photo, dest, target string) (bool, error) {
	name := filepath.Base(filepath.Clean("/" + photo.FilenameOriginal))
	if photo.FilenameOriginal == "" || name == "/" || name == "." || strings.HasPrefix(name, ".") {
		return false, nil
	}

	link := filepath.Join(dest, name)
	if _, err := os.Lstat(link); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := linkOrCopy(target, link); err != nil {
		return false, fmt.Errorf("link %s: %w", name, err)
	}
	return true, nil
}

// linkOrCopy hard-links src to dst and falls back to copying when links are
// not possible, e.g. across file systems.
func linkOrCopy(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
