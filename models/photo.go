// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"path"
	"strings"
)

// Permission values of a photo as returned by the API.
const (
	PermissionPrivate = "0"
	PermissionPublic  = "1"
)

// Photo is a photo stored on the OpenPhoto server.
//
// The server returns some numeric fields either as JSON numbers or as quoted
// strings depending on its version, so they are decoded as [json.Number].
type Photo struct {
	// ID is the server-side photo identifier.
	ID string `json:"id"`

	// Hash is the SHA-1 hex digest of the original file content, computed by
	// the server at upload time.
	Hash string `json:"hash"`

	Title            string `json:"title,omitempty"`
	FilenameOriginal string `json:"filenameOriginal,omitempty"`

	// PathDownload is the absolute URL of the original file.
	PathDownload string `json:"pathDownload,omitempty"`
	PathOriginal string `json:"pathOriginal,omitempty"`

	Tags   []string `json:"tags,omitempty"`
	Albums []string `json:"albums,omitempty"`

	// Permission is PermissionPublic or PermissionPrivate.
	Permission json.Number `json:"permission,omitempty"`

	// Paging information repeated on every item of a list response.
	CurrentPage int `json:"currentPage,omitempty"`
	TotalPages  int `json:"totalPages,omitempty"`
}

// IsPublic reports whether the photo is visible to everyone.
func (p Photo) IsPublic() bool {
	return p.Permission.String() == PermissionPublic
}

// Extension returns the lower-cased extension of the original file name,
// including the dot, or "" when it has none.
func (p Photo) Extension() string {
	name := p.FilenameOriginal
	if name == "" {
		name = p.PathOriginal
	}
	return strings.ToLower(path.Ext(name))
}

// UploadOptions are the attributes applied to a newly uploaded photo.
type UploadOptions struct {
	Title  string
	Tags   []string
	Albums []string
	Public bool
}

// PhotoUpdate describes a partial update of a photo. Empty fields are left
// untouched on the server.
type PhotoUpdate struct {
	AddTags    []string
	RemoveTags []string
	Albums     []string
	// Public is nil when the permission must not change.
	Public *bool
}

// IsEmpty reports whether the update changes nothing.
func (u PhotoUpdate) IsEmpty() bool {
	return len(u.AddTags) == 0 && len(u.RemoveTags) == 0 && len(u.Albums) == 0 && u.Public == nil
}
