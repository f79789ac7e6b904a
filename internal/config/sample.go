// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const sampleConfig = `; openphoto-utils configuration.
;
; Every key can also be given on the command line (--api-host, --album, ...)
; or in the environment (OPENPHOTO_API_HOST, OPENPHOTO_IMPORTER_ALBUM, ...).
; Command line wins over environment, environment over this file.

[api]
host = photos.example.com
consumer_key =
consumer_secret =
oauth_token =
oauth_secret =
; debug_http = 1
; rate_limit = 5
; timeout = 30s

[logging]
level = info
; format = console

[importer]
; album = Holidays
; recurse = true
; create_albums = true
; hashes = true
; tag = imported, camera
; public = false
; jobs = 4

[downloader]
; photo_directory = ~/Pictures/openphoto
; photo_cache_directory = ~/Pictures/archive
; index = ~/Pictures/archive/.openphoto-index.db

[shell]
; mode = auto
`

// CreateSample writes a sample configuration file to path, creating the
// parent directory.
func CreateSample(path string) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
