// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/openphoto-utils/internal/adapter"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

// Result is the outcome of one command.
type Result struct {
	Output string
	// Quit asks the interface to stop.
	Quit bool
}

type command struct {
	name  string
	args  string
	usage string
	run   func(s *Session, ctx context.Context, args []string) (Result, error)
}

// commands is filled in init: help lists it.
var commands []command

func init() {
	commands = []command{
		{name: "help", usage: "list the commands", run: (*Session).help},
		{name: "config", usage: "show the resolved configuration", run: (*Session).config},
		{name: "photos", args: "[text]", usage: "list photos, optionally filtered by title, file name or tag", run: (*Session).photos},
		{name: "albums", usage: "list albums", run: (*Session).albums},
		{name: "tags", usage: "list tags", run: (*Session).tags},
		{name: "copy", args: "<photo-id>", usage: "copy the download url of a photo to the clipboard", run: (*Session).copy},
		{name: "quit", usage: "leave the shell", run: (*Session).quit},
	}
}

var aliases = map[string]string{
	"?":    "help",
	"exit": "quit",
	"ls":   "photos",
}

// Session runs shell commands against a configured client. It is not safe
// for concurrent use; the interfaces run one command at a time.
type Session struct {
	client    adapter.PhotoClient
	root      *config.Root
	logger    *logger.Logger
	clipboard func(string) error

	photoCache []models.Photo
}

// NewSession constructs a Session. root is used by the config command and
// may be nil.
func NewSession(client adapter.PhotoClient, root *config.Root, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		client:    client,
		root:      root,
		logger:    log,
		clipboard: clipboard.WriteAll,
	}
}

// Host returns the API endpoint of the session's client.
func (s *Session) Host() string {
	return s.client.Host()
}

// Execute runs one command line. Blank lines do nothing.
func (s *Session) Execute(ctx context.Context, line string) (Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}, nil
	}

	name := strings.ToLower(fields[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	for _, c := range commands {
		if c.name == name {
			s.logger.Debug().Str("command", name).Strs("args", fields[1:]).Msg("running shell command")
			return c.run(s, ctx, fields[1:])
		}
	}
	return Result{}, fmt.Errorf("%w %q, type help for the list of commands", ErrUnknownCommand, fields[0])
}

func (s *Session) help(context.Context, []string) (Result, error) {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range commands {
		name := c.name
		if c.args != "" {
			name += " " + c.args
		}
		fmt.Fprintf(&b, "  %-18s %s\n", name, c.usage)
	}
	return Result{Output: strings.TrimRight(b.String(), "\n")}, nil
}

func (s *Session) config(context.Context, []string) (Result, error) {
	if s.root == nil {
		return Result{}, ErrNoConfiguration
	}
	entries, err := s.root.Entries()
	if err != nil {
		return Result{}, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if !e.Set {
			continue
		}
		rows = append(rows, []string{e.Section, e.Key, e.Value, e.Origin.String()})
	}
	out := utils.RenderTable([]string{"section", "key", "value", "origin"}, rows)
	if files := s.root.ConfigFiles(); len(files) > 0 {
		out += "\nconfig files: " + strings.Join(files, ", ")
	}
	return Result{Output: out}, nil
}

func (s *Session) photos(ctx context.Context, args []string) (Result, error) {
	photos, err := s.refreshPhotos(ctx)
	if err != nil {
		return Result{}, err
	}

	filter := strings.ToLower(strings.Join(args, " "))
	rows := make([][]string, 0, len(photos))
	for _, p := range photos {
		if filter != "" && !matches(p, filter) {
			continue
		}
		public := "no"
		if p.IsPublic() {
			public = "yes"
		}
		rows = append(rows, []string{p.ID, p.Title, p.FilenameOriginal, strings.Join(p.Tags, ", "), public})
	}
	if len(rows) == 0 {
		return Result{Output: "no photos"}, nil
	}
	return Result{Output: utils.RenderTable([]string{"id", "title", "file", "tags", "public"}, rows)}, nil
}

func matches(p models.Photo, filter string) bool {
	if strings.Contains(strings.ToLower(p.Title), filter) ||
		strings.Contains(strings.ToLower(p.FilenameOriginal), filter) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.EqualFold(tag, filter) {
			return true
		}
	}
	return false
}

func (s *Session) albums(ctx context.Context, _ []string) (Result, error) {
	albums, err := s.client.ListAlbums(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(albums) == 0 {
		return Result{Output: "no albums"}, nil
	}

	rows := make([][]string, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, []string{a.ID, a.Name, a.Count.String()})
	}
	return Result{Output: utils.RenderTable([]string{"id", "name", "photos"}, rows, 2)}, nil
}

func (s *Session) tags(ctx context.Context, _ []string) (Result, error) {
	tags, err := s.client.ListTags(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(tags) == 0 {
		return Result{Output: "no tags"}, nil
	}

	sort.Slice(tags, func(i, j int) bool {
		ci, _ := strconv.Atoi(tags[i].Count.String())
		cj, _ := strconv.Atoi(tags[j].Count.String())
		if ci != cj {
			return ci > cj
		}
		return tags[i].ID < tags[j].ID
	})

	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.ID, t.Count.String()})
	}
	return Result{Output: utils.RenderTable([]string{"tag", "photos"}, rows, 1)}, nil
}

func (s *Session) copy(ctx context.Context, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, fmt.Errorf("%w: copy <photo-id>", ErrUsage)
	}
	id := args[0]

	photo, ok := findPhoto(s.photoCache, id)
	if !ok {
		photos, err := s.refreshPhotos(ctx)
		if err != nil {
			return Result{}, err
		}
		if photo, ok = findPhoto(photos, id); !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrPhotoNotFound, id)
		}
	}

	url := photo.PathDownload
	if url == "" {
		url = photo.PathOriginal
	}
	if url == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrNoDownloadURL, id)
	}
	if err := s.clipboard(url); err != nil {
		return Result{}, fmt.Errorf("copy to clipboard: %w", err)
	}
	return Result{Output: "copied " + url}, nil
}

func (s *Session) quit(context.Context, []string) (Result, error) {
	return Result{Output: "bye", Quit: true}, nil
}

func (s *Session) refreshPhotos(ctx context.Context) ([]models.Photo, error) {
	photos, err := s.client.ListPhotos(ctx)
	if err != nil {
		return nil, err
	}
	s.photoCache = photos
	return photos, nil
}

func findPhoto(photos []models.Photo, id string) (models.Photo, bool) {
	for _, p := range photos {
		if p.ID == id {
			return p, true
		}
	}
	return models.Photo{}, false
}
