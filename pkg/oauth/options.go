package oauth

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single token exchange.
const DefaultTimeout = 10 * time.Second

// Option configures an OAuth client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	endpoint   *oauth2.Endpoint
	stateFunc  func() string
	timeout    time.Duration
}

// WithHTTPClient sets a custom HTTP client for token requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, tracing).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides the provider's authorization and token URLs.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &endpoint
	}
}

// WithTimeout sets the upper bound for a token exchange.
// Default: 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithStateGenerator replaces the anti-forgery token generator.
// The generator must be unpredictable; the default is crypto/rand.Text.
func WithStateGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.stateFunc = fn
		}
	}
}
