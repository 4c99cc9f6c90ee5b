package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrTokenRequest is returned when the token endpoint could not be reached,
	// timed out, or answered with a non-2xx status.
	ErrTokenRequest = errors.New("oauth: token request failed")

	// ErrTokenResponseBody is returned when the token response body could not be read.
	ErrTokenResponseBody = errors.New("oauth: failed to read token response")

	// ErrTokenResponseParse is returned when the token response body is not a valid grant.
	// It is always joined with one of the parse errors below.
	ErrTokenResponseParse = errors.New("oauth: failed to parse token response")
)

// Token response parse errors.
var (
	// ErrMalformedPair is returned when a response segment has no '=' separator.
	ErrMalformedPair = errors.New("oauth: malformed key-value pair")

	// ErrMalformedResponse is returned for duplicate keys or invalid percent-encoding.
	ErrMalformedResponse = errors.New("oauth: malformed token response")

	// ErrMissingField is returned when the response does not carry exactly
	// access_token, scope and token_type.
	ErrMissingField = errors.New("oauth: missing or unexpected field")

	// ErrUnexpectedTokenType is returned when token_type is not "bearer".
	ErrUnexpectedTokenType = errors.New("oauth: unexpected token type")

	// ErrEmptyScope is returned when the provider granted no scopes.
	ErrEmptyScope = errors.New("oauth: empty scope")

	// ErrScopeMismatch is returned when a granted scope was never requested.
	ErrScopeMismatch = errors.New("oauth: granted scope was not requested")
)
