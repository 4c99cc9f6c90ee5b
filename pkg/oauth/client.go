package oauth

import "context"

// AuthorizationRequest is a single login attempt: the provider URL the browser is
// sent to, and the anti-forgery token embedded in its state parameter.
type AuthorizationRequest struct {
	URL   string
	State string
}

// Client abstracts provider-facing OAuth operations.
// HTTP handlers depend on this interface and never talk to the provider directly.
type Client interface {
	// BuildAuthorizationRequest generates a fresh anti-forgery token and the
	// authorization URL carrying it.
	BuildAuthorizationRequest() AuthorizationRequest

	// ExchangeCode trades a single-use authorization code for a validated credential.
	// The exchange is attempted exactly once.
	ExchangeCode(ctx context.Context, code string) (*Credential, error)
}
