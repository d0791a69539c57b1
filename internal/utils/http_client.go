package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with its own resty.Client. Every
// request sends and accepts JSON.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}

// WithBaseURL sets the base URL and per-request timeout and returns the same
// client for chaining.
func (c *HTTPClient) WithBaseURL(baseURL string, timeout time.Duration) *HTTPClient {
	c.SetBaseURL(baseURL).SetTimeout(timeout)
	return c
}
