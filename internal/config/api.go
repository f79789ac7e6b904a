// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strconv"
	"strings"
	"time"
)

// APISection is the name of the section holding the API connection settings.
const APISection = "api"

// Logical keys of the api section.
const (
	APIHost           = "host"
	APIConsumerKey    = "consumer_key"
	APIConsumerSecret = "consumer_secret"
	APIOAuthToken     = "oauth_token"
	APIOAuthSecret    = "oauth_secret"
	APIDebugHTTP      = "debug_http"
	APIRateLimit      = "rate_limit"
	APITimeout        = "timeout"
)

// APISettings is the typed view of the resolved api section and the only
// input the API client is built from.
type APISettings struct {
	// Host is the API endpoint, with or without scheme.
	Host string
	// ConsumerKey and ConsumerSecret identify the OAuth consumer.
	ConsumerKey    string
	ConsumerSecret string
	// OAuthToken and OAuthSecret are the access token credentials.
	OAuthToken  string
	OAuthSecret string
	// DebugHTTP enables request/response dumps when greater than zero.
	// Values that are not integers resolve to zero.
	DebugHTTP int
	// RateLimit caps requests per second; zero disables the limit.
	RateLimit float64
	// Timeout bounds a single request; zero keeps the client default.
	Timeout time.Duration
}

// declareAPI registers the api keys: the five credentials are required.
func declareAPI(s *Section) {
	s.RegisterKey(Flag{Name: "api-host", Shorthand: "H", Usage: "API endpoint"}, Required())
	s.RegisterKey(Flag{Name: "api-consumer-key", Shorthand: "K", Usage: "API consumer key"}, Required())
	s.RegisterKey(Flag{Name: "api-consumer-secret", Shorthand: "S", Usage: "API consumer secret"}, Required())
	s.RegisterKey(Flag{Name: "api-oauth-token", Shorthand: "T", Usage: "API oauth token"}, Required())
	s.RegisterKey(Flag{Name: "api-oauth-secret", Shorthand: "X", Usage: "API oauth secret"}, Required())
	s.RegisterKey(Flag{Name: "api-debug-http", Usage: "Debug level of the HTTP client (0 disables)"})
	s.RegisterKey(Flag{Name: "api-rate-limit", Usage: "Maximum API requests per second (0 disables)", Default: "0"})
	s.RegisterKey(Flag{Name: "api-timeout", Usage: "Timeout of a single API request", Default: "30s"})
}

// API returns the typed api settings. It fails with [ErrNotResolved] until
// [Root.ResolveAll] succeeded.
func (r *Root) API() (APISettings, error) {
	res, err := r.Resolved(APISection)
	if err != nil {
		return APISettings{}, err
	}
	return apiSettings(res), nil
}

func apiSettings(res *Resolved) APISettings {
	settings := APISettings{
		Host:           res.String(APIHost),
		ConsumerKey:    res.String(APIConsumerKey),
		ConsumerSecret: res.String(APIConsumerSecret),
		OAuthToken:     res.String(APIOAuthToken),
		OAuthSecret:    res.String(APIOAuthSecret),
	}

	if level, ok := res.Int(APIDebugHTTP); ok && level > 0 {
		settings.DebugHTTP = level
	}
	if rps, err := strconv.ParseFloat(strings.TrimSpace(res.String(APIRateLimit)), 64); err == nil && rps > 0 {
		settings.RateLimit = rps
	}
	if d, err := time.ParseDuration(strings.TrimSpace(res.String(APITimeout))); err == nil && d > 0 {
		settings.Timeout = d
	}
	return settings
}
