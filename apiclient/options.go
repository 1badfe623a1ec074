package apiclient

import (
	"net/http"
	"net/url"
	"time"
)

type Option func(*Client)

// WithHTTPClient replaces the transport client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds each network call (the refresh and the original call individually)
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithExpiryMargin sets how much validity an access token must have left to be sent without refreshing
func WithExpiryMargin(margin time.Duration) Option {
	return func(c *Client) {
		if margin >= 0 {
			c.margin = margin
		}
	}
}

// WithRefreshPath overrides the refresh endpoint path
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.refreshPath = path
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithSessionExpiredHandler subscribes fn to the session-expired signal
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.OnSessionExpired(fn)
	}
}

type requestConfig struct {
	query     url.Values
	header    http.Header
	binary    bool
	anonymous bool
}

type RequestOption func(*requestConfig)

func newRequestConfig(opts []RequestOption) requestConfig {
	cfg := requestConfig{header: http.Header{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithQuery adds query parameters; empty values are dropped
func WithQuery(query url.Values) RequestOption {
	return func(cfg *requestConfig) {
		if cfg.query == nil {
			cfg.query = url.Values{}
		}
		for k, values := range query {
			for _, v := range values {
				if v != "" {
					cfg.query.Add(k, v)
				}
			}
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(cfg *requestConfig) {
		cfg.header.Set(key, value)
	}
}

// ExpectBinary marks the response as raw bytes (documents, resumes) so it is
// never treated as structured text
func ExpectBinary() RequestOption {
	return func(cfg *requestConfig) {
		cfg.binary = true
	}
}

// Unauthenticated sends the request without consulting the session store
func Unauthenticated() RequestOption {
	return func(cfg *requestConfig) {
		cfg.anonymous = true
	}
}
