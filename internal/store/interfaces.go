// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store keeps the downloader's cache index: a sqlite database that
// maps photo hashes to files already present in the cache directory.
package store

import (
	"context"

	"github.com/MKhiriev/openphoto-utils/models"
)

// PhotoIndex is the persistent hash to path mapping of the cache directory.
type PhotoIndex interface {
	// Put inserts the entry or replaces the one with the same hash.
	Put(ctx context.Context, entry models.IndexEntry) error
	// Lookup returns the entry for hash or [ErrEntryNotFound].
	Lookup(ctx context.Context, hash string) (models.IndexEntry, error)
	// All returns every entry ordered by path.
	All(ctx context.Context) ([]models.IndexEntry, error)
	// Delete removes the entries for the given hashes; unknown hashes are
	// ignored.
	Delete(ctx context.Context, hashes ...string) error
	// Close releases the underlying database.
	Close() error
}
