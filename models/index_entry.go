// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IndexEntry maps the SHA-1 hash of a file in the downloader cache directory
// to its location. Size and ModifiedAt let a rescan skip hashing files that
// did not change.
type IndexEntry struct {
	Hash       string
	Path       string
	Size       int64
	ModifiedAt time.Time
	IndexedAt  time.Time
}

// Matches reports whether the entry still describes a file of the given size
// and modification time.
func (e IndexEntry) Matches(size int64, modifiedAt time.Time) bool {
	return e.Size == size && e.ModifiedAt.Unix() == modifiedAt.Unix()
}
