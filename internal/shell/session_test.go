// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package shell

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/openphoto-utils/internal/adapter"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/mock"
	"github.com/MKhiriev/openphoto-utils/models"
)

var testPhotos = []models.Photo{
	{
		ID:               "a1",
		Title:            "Sunset",
		FilenameOriginal: "IMG_1.jpg",
		PathDownload:     "https://photos.example.com/photo/a1/download",
		Tags:             []string{"beach", "summer"},
		Permission:       models.PermissionPublic,
	},
	{
		ID:               "b2",
		Title:            "Mountains",
		FilenameOriginal: "IMG_2.jpg",
		PathOriginal:     "https://photos.example.com/original/b2.jpg",
		Tags:             []string{"winter"},
	},
	{ID: "c3", Title: "No url"},
}

type clipboardStub struct {
	copied []string
	err    error
}

func (c *clipboardStub) write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

func newTestSession(t *testing.T) (*Session, *mock.MockPhotoClient, *clipboardStub) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockPhotoClient(ctrl)
	client.EXPECT().Host().Return("https://photos.example.com").AnyTimes()

	s := NewSession(client, nil, logger.Nop())
	clip := &clipboardStub{}
	s.clipboard = clip.write
	return s, client, clip
}

func TestSession_Blank(t *testing.T) {
	s, _, _ := newTestSession(t)

	res, err := s.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestSession_Unknown(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Execute(context.Background(), "frobnicate now")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), `"frobnicate"`)
}

func TestSession_Help(t *testing.T) {
	s, _, _ := newTestSession(t)

	for _, line := range []string{"help", "HELP", "?"} {
		res, err := s.Execute(context.Background(), line)
		require.NoError(t, err)
		for _, name := range []string{"help", "config", "photos", "albums", "tags", "copy <photo-id>", "quit"} {
			assert.Contains(t, res.Output, name)
		}
		assert.False(t, res.Quit)
	}
}

func TestSession_Quit(t *testing.T) {
	s, _, _ := newTestSession(t)

	for _, line := range []string{"quit", "exit"} {
		res, err := s.Execute(context.Background(), line)
		require.NoError(t, err)
		assert.True(t, res.Quit)
	}
}

func TestSession_Photos(t *testing.T) {
	s, client, _ := newTestSession(t)
	client.EXPECT().ListPhotos(gomock.Any()).Return(testPhotos, nil).Times(3)

	res, err := s.Execute(context.Background(), "photos")
	require.NoError(t, err)
	for _, id := range []string{"a1", "b2", "c3"} {
		assert.Contains(t, res.Output, id)
	}
	assert.Contains(t, res.Output, "beach, summer")

	res, err = s.Execute(context.Background(), "ls winter")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "Mountains")
	assert.NotContains(t, res.Output, "Sunset")

	res, err = s.Execute(context.Background(), "photos nothing-matches")
	require.NoError(t, err)
	assert.Equal(t, "no photos", res.Output)
}

func TestSession_PhotosError(t *testing.T) {
	s, client, _ := newTestSession(t)
	client.EXPECT().ListPhotos(gomock.Any()).Return(nil, adapter.ErrUnauthorized)

	_, err := s.Execute(context.Background(), "photos")
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestSession_Albums(t *testing.T) {
	s, client, _ := newTestSession(t)
	client.EXPECT().ListAlbums(gomock.Any()).Return([]models.Album{
		{ID: "1", Name: "Holidays", Count: "12"},
	}, nil)
	client.EXPECT().ListAlbums(gomock.Any()).Return(nil, nil)

	res, err := s.Execute(context.Background(), "albums")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "Holidays")
	assert.Contains(t, res.Output, "12")

	res, err = s.Execute(context.Background(), "albums")
	require.NoError(t, err)
	assert.Equal(t, "no albums", res.Output)
}

func TestSession_TagsSortedByCount(t *testing.T) {
	s, client, _ := newTestSession(t)
	client.EXPECT().ListTags(gomock.Any()).Return([]models.Tag{
		{ID: "rare", Count: "1"},
		{ID: "common", Count: "40"},
		{ID: "medium", Count: "7"},
	}, nil)

	res, err := s.Execute(context.Background(), "tags")
	require.NoError(t, err)
	common := strings.Index(res.Output, "common")
	medium := strings.Index(res.Output, "medium")
	rare := strings.Index(res.Output, "rare")
	assert.True(t, common < medium && medium < rare, res.Output)
}

func TestSession_Copy(t *testing.T) {
	s, client, clip := newTestSession(t)
	// the second copy is served from the photos fetched by the first one
	client.EXPECT().ListPhotos(gomock.Any()).Return(testPhotos, nil).Times(1)

	res, err := s.Execute(context.Background(), "copy a1")
	require.NoError(t, err)
	assert.Equal(t, "copied https://photos.example.com/photo/a1/download", res.Output)

	_, err = s.Execute(context.Background(), "copy b2")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://photos.example.com/photo/a1/download",
		"https://photos.example.com/original/b2.jpg",
	}, clip.copied)
}

func TestSession_CopyErrors(t *testing.T) {
	t.Run("usage", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		_, err := s.Execute(context.Background(), "copy")
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("not found", func(t *testing.T) {
		s, client, _ := newTestSession(t)
		client.EXPECT().ListPhotos(gomock.Any()).Return(testPhotos, nil)
		_, err := s.Execute(context.Background(), "copy zz")
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})

	t.Run("no url", func(t *testing.T) {
		s, client, _ := newTestSession(t)
		client.EXPECT().ListPhotos(gomock.Any()).Return(testPhotos, nil)
		_, err := s.Execute(context.Background(), "copy c3")
		assert.ErrorIs(t, err, ErrNoDownloadURL)
	})

	t.Run("clipboard", func(t *testing.T) {
		s, client, clip := newTestSession(t)
		clip.err = errors.New("no clipboard utility")
		client.EXPECT().ListPhotos(gomock.Any()).Return(testPhotos, nil)
		_, err := s.Execute(context.Background(), "copy a1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no clipboard utility")
	})
}

func TestSession_Config(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Execute(context.Background(), "config")
	assert.ErrorIs(t, err, ErrNoConfiguration)

	root, err := config.NewRoot(config.Options{
		ToolSection:     Section,
		NoDefaultConfig: true,
		Environ: map[string]string{
			"OPENPHOTO_API_HOST":            "photos.example.com",
			"OPENPHOTO_API_CONSUMER_KEY":    "consumer-key-value",
			"OPENPHOTO_API_CONSUMER_SECRET": "consumer-secret-value",
			"OPENPHOTO_API_OAUTH_TOKEN":     "oauth-token-value",
			"OPENPHOTO_API_OAUTH_SECRET":    "oauth-secret-value",
		},
	})
	require.NoError(t, err)
	Declare(root.Tool())
	require.NoError(t, root.Parse(nil))
	require.NoError(t, root.ResolveAll())
	s.root = root

	res, err := s.Execute(context.Background(), "config")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "photos.example.com")
	assert.Contains(t, res.Output, "env")
	assert.Contains(t, res.Output, "auto")
	assert.NotContains(t, res.Output, "consumer-secret-value")
	assert.NotContains(t, res.Output, "oauth-token-value")
}
