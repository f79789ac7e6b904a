package utils

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(nil)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance on top of
// httpClient. A nil httpClient gives a default-configured resty client.
//
// Passing an *http.Client lets callers plug in a transport that decorates
// every request, e.g. an OAuth1 signing transport:
//
//	signed := oauthConfig.Client(ctx, token)
//	client := utils.NewHTTPClient(signed)
func NewHTTPClient(httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		return &HTTPClient{Client: resty.New()}
	}
	return &HTTPClient{Client: resty.NewWithClient(httpClient)}
}
