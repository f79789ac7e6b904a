// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Tag is a photo tag together with the number of photos carrying it.
type Tag struct {
	ID    string      `json:"id"`
	Count json.Number `json:"count,omitempty"`
}
