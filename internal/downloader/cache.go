// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package downloader

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/store"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

// Cache maps photo hashes to files found in the cache directory.
type Cache map[string]string

// CacheStats counts what a scan did.
type CacheStats struct {
	Files   int
	Hashed  int
	Removed int
}

// scanCache walks dir and brings index up to date with it: files whose size
// and modification time did not change since the last scan keep their
// entry, other files are hashed again and entries of vanished files are
// removed. skip lists paths that are never indexed.
func scanCache(ctx context.Context, dir string, index store.PhotoIndex, skip []string, log *logger.Logger) (Cache, CacheStats, error) {
	var stats CacheStats

	entries, err := index.All(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("read cache index: %w", err)
	}
	byPath := make(map[string]models.IndexEntry, len(entries))
	for _, e := range entries {
		byPath[e.Path] = e
	}

	cache := make(Cache, len(entries))
	seen := make(map[string]struct{}, len(entries))

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			log.Warn().Err(walkErr).Str("path", path).Msg("skipping unreadable cache entry")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || skipped(path, skip) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable cache entry")
			return nil
		}
		stats.Files++

		entry, ok := byPath[path]
		if !ok || !entry.Matches(info.Size(), info.ModTime()) {
			sum, err := utils.HashFile(path)
			if err != nil {
				log.Warn().Err(err).Msg("skipping unreadable cache entry")
				return nil
			}
			entry = models.IndexEntry{
				Hash:       sum,
				Path:       path,
				Size:       info.Size(),
				ModifiedAt: info.ModTime(),
				IndexedAt:  time.Now(),
			}
			if err = index.Put(ctx, entry); err != nil {
				return fmt.Errorf("update cache index: %w", err)
			}
			stats.Hashed++
		}

		seen[path] = struct{}{}
		cache[entry.Hash] = path
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("scan cache directory %s: %w", dir, err)
	}

	var stale []string
	for _, e := range entries {
		if _, ok := seen[e.Path]; !ok {
			stale = append(stale, e.Hash)
		}
	}
	// a rehashed file may have taken over the hash of a stale entry
	stale = withoutLive(stale, cache)
	if err = index.Delete(ctx, stale...); err != nil {
		return nil, stats, fmt.Errorf("prune cache index: %w", err)
	}
	stats.Removed = len(stale)

	return cache, stats, nil
}

func withoutLive(hashes []string, cache Cache) []string {
	out := hashes[:0]
	for _, h := range hashes {
		if _, ok := cache[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

func skipped(path string, skip []string) bool {
	for _, s := range skip {
		if s != "" && strings.HasPrefix(path, s) {
			return true
		}
	}
	return false
}
