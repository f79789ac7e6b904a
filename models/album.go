// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Album is a named collection of photos.
type Album struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Count json.Number `json:"count,omitempty"`
}

// String returns the album name.
func (a Album) String() string {
	return a.Name
}
