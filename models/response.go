// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response is the envelope wrapping every OpenPhoto API response body.
//
// Code mirrors the HTTP status code and Message carries a human-readable
// description; Result holds the payload of the call.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}
