// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client of the OpenPhoto (Trovebox) photo API.
//
// The primary abstraction is [PhotoClient], which decouples the tools from
// the REST transport. [NewHTTPPhotoClient] builds the only implementation
// from the resolved api configuration section: every request is signed with
// the configured OAuth1 credentials, tagged with an X-Request-ID and, when a
// rate limit is set, throttled client-side.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// from the response envelope code by mapHTTPError so that callers can use
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/openphoto-utils/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/photo_client_mock.go -package=mock

// PhotoClient defines the photo API operations used by the tools.
type PhotoClient interface {
	// Host returns the normalized base URL of the API.
	Host() string

	// ListPhotos returns every photo of the account, following pagination.
	ListPhotos(ctx context.Context) ([]models.Photo, error)

	// UploadPhoto uploads the file at path with the given attributes and
	// returns the created photo. Returns [ErrConflict] (wrapped) when the
	// server already stores a photo with the same content.
	UploadPhoto(ctx context.Context, path string, opts models.UploadOptions) (models.Photo, error)

	// UpdatePhoto applies upd to the photo identified by id and returns the
	// updated photo.
	UpdatePhoto(ctx context.Context, id string, upd models.PhotoUpdate) (models.Photo, error)

	// CreateAlbum creates an album called name. An album with the same name
	// that already exists is returned instead of creating a duplicate.
	CreateAlbum(ctx context.Context, name string) (models.Album, error)

	// ListAlbums returns every album of the account.
	ListAlbums(ctx context.Context) ([]models.Album, error)

	// ListTags returns every tag of the account.
	ListTags(ctx context.Context) ([]models.Tag, error)

	// DownloadPhoto streams the original file of photo to w.
	DownloadPhoto(ctx context.Context, photo models.Photo, w io.Writer) error
}
