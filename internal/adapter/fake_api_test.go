// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

// fakeAPI is an in-memory photo server speaking the subset of the OpenPhoto
// REST API used by the client.
type fakeAPI struct {
	mu sync.Mutex

	photos []models.Photo
	files  map[string][]byte
	albums []models.Album
	tags   []models.Tag

	requests    []string
	requestIDs  []string
	authHeaders []string
	forms       []url.Values
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	f := &fakeAPI{files: make(map[string][]byte)}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/photos/list.json", f.listPhotos)
	r.Post("/photo/upload.json", f.uploadPhoto)
	r.Post("/photo/{id}/update.json", f.updatePhoto)
	r.Get("/photo/{id}/download", f.downloadPhoto)
	r.Get("/files/{id}", f.downloadPhoto)
	r.Get("/albums/list.json", f.listAlbums)
	r.Post("/album/create.json", f.createAlbum)
	r.Get("/tags/list.json", f.listTags)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.requestIDs = append(f.requestIDs, r.Header.Get(requestIDHeader))
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) addPhoto(p models.Photo, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, p)
	f.files[p.ID] = content
}

func (f *fakeAPI) requestCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) lastForm() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.forms) == 0 {
		return nil
	}
	return f.forms[len(f.forms)-1]
}

func (f *fakeAPI) listPhotos(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if size <= 0 {
		size = len(f.photos)
	}
	if page <= 0 {
		page = 1
	}
	total := (len(f.photos) + size - 1) / size

	batch := make([]models.Photo, 0)
	for i := (page - 1) * size; i < len(f.photos) && i < page*size; i++ {
		p := f.photos[i]
		p.CurrentPage, p.TotalPages = page, total
		batch = append(batch, p)
	}
	_, _ = utils.WriteResult(w, http.StatusOK, "Photo list", batch)
}

func (f *fakeAPI) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		_, _ = utils.WriteResult(w, http.StatusBadRequest, err.Error(), false)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		_, _ = utils.WriteResult(w, http.StatusBadRequest, "missing photo", false)
		return
	}
	defer file.Close()
	content, _ := io.ReadAll(file)
	hash, _ := utils.HashReader(strings.NewReader(string(content)))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, r.MultipartForm.Value)

	for _, p := range f.photos {
		if p.Hash == hash {
			_, _ = utils.WriteResult(w, http.StatusConflict, "Duplicate photo", false)
			return
		}
	}

	p := models.Photo{
		ID:               fmt.Sprintf("p%d", len(f.photos)+1),
		Hash:             hash,
		Title:            r.FormValue("title"),
		FilenameOriginal: header.Filename,
		Tags:             splitList(r.FormValue("tags")),
		Albums:           splitList(r.FormValue("albums")),
		Permission:       json.Number(r.FormValue("permission")),
	}
	f.photos = append(f.photos, p)
	f.files[p.ID] = content
	_, _ = utils.WriteResult(w, http.StatusCreated, "Photo uploaded", p)
}

func (f *fakeAPI) updatePhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, _ = utils.WriteResult(w, http.StatusBadRequest, err.Error(), false)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, r.PostForm)

	id := chi.URLParam(r, "id")
	for i, p := range f.photos {
		if p.ID != id {
			continue
		}
		p.Tags = append(p.Tags, splitList(r.PostForm.Get("tagsAdd"))...)
		p.Albums = append(p.Albums, splitList(r.PostForm.Get("albumsAdd"))...)
		if perm := r.PostForm.Get("permission"); perm != "" {
			p.Permission = json.Number(perm)
		}
		f.photos[i] = p
		_, _ = utils.WriteResult(w, http.StatusOK, "Photo updated", p)
		return
	}
	_, _ = utils.WriteResult(w, http.StatusNotFound, "Photo not found", false)
}

func (f *fakeAPI) downloadPhoto(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	content, ok := f.files[chi.URLParam(r, "id")]
	f.mu.Unlock()

	if !ok {
		_, _ = utils.WriteResult(w, http.StatusNotFound, "Photo not found", false)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(content)
}

func (f *fakeAPI) listAlbums(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = utils.WriteResult(w, http.StatusOK, "Album list", append([]models.Album{}, f.albums...))
}

func (f *fakeAPI) createAlbum(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, _ = utils.WriteResult(w, http.StatusBadRequest, err.Error(), false)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, r.PostForm)

	name := r.PostForm.Get("name")
	for _, a := range f.albums {
		if a.Name == name {
			_, _ = utils.WriteResult(w, http.StatusConflict, "Album exists", false)
			return
		}
	}
	a := models.Album{ID: fmt.Sprintf("a%d", len(f.albums)+1), Name: name, Count: "0"}
	f.albums = append(f.albums, a)
	_, _ = utils.WriteResult(w, http.StatusCreated, "Album created", a)
}

func (f *fakeAPI) listTags(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = utils.WriteResult(w, http.StatusOK, "Tag list", append([]models.Tag{}, f.tags...))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
