package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/oauth"
)

// Kind classifies every way the login flow can fail.
type Kind int

const (
	KindMissingState Kind = iota + 1
	KindEmptyToken
	KindStateMismatch
	KindMissingCode
	KindTokenRequest
	KindTokenResponseBody
	KindTokenResponseParse
	KindScopeMismatch
	KindUnexpectedTokenType
	KindSession
	KindUnauthorized
)

// kinds lists every declared Kind.
var kinds = []Kind{
	KindMissingState,
	KindEmptyToken,
	KindStateMismatch,
	KindMissingCode,
	KindTokenRequest,
	KindTokenResponseBody,
	KindTokenResponseParse,
	KindScopeMismatch,
	KindUnexpectedTokenType,
	KindSession,
	KindUnauthorized,
}

type kindEntry struct {
	status int
	code   string
	label  string
}

var kindInfo = map[Kind]kindEntry{
	KindMissingState:        {http.StatusBadRequest, "missing_state", "no login in progress"},
	KindEmptyToken:          {http.StatusBadRequest, "empty_token", "state parameter is empty"},
	KindStateMismatch:       {http.StatusUnauthorized, "state_mismatch", "state does not match"},
	KindMissingCode:         {http.StatusBadRequest, "missing_code", "authorization code is missing"},
	KindTokenRequest:        {http.StatusBadGateway, "token_request", "token request to provider failed"},
	KindTokenResponseBody:   {http.StatusBadGateway, "token_response_body", "could not read provider response"},
	KindTokenResponseParse:  {http.StatusBadGateway, "token_response_parse", "provider response is invalid"},
	KindScopeMismatch:       {http.StatusBadGateway, "scope_mismatch", "provider granted unexpected scopes"},
	KindUnexpectedTokenType: {http.StatusBadGateway, "unexpected_token_type", "provider returned an unsupported token type"},
	KindSession:             {http.StatusInternalServerError, "session", "session unavailable"},
	KindUnauthorized:        {http.StatusUnauthorized, "unauthorized", "login required"},
}

// String returns the stable machine-readable code.
func (k Kind) String() string {
	if e, ok := kindInfo[k]; ok {
		return e.code
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Status returns the HTTP status for k.
func (k Kind) Status() int {
	if e, ok := kindInfo[k]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}

// Label returns the client-facing message for k.
func (k Kind) Label() string {
	if e, ok := kindInfo[k]; ok {
		return e.label
	}
	return http.StatusText(http.StatusInternalServerError)
}

// Error is a login flow failure. Err is for logs only.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "auth: " + e.Kind.String()
	}
	return "auth: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPError renders e for the app error handler: Kind's status and label,
// Kind's code, and e itself as the logged cause.
func (e *Error) HTTPError() *internal.HTTPError {
	return internal.NewHTTPError(e.Kind.Status(), e.Kind.Label(),
		internal.WithErrorCode(e.Kind.String()),
		internal.WithError(e),
	)
}

func fail(kind Kind, err error) error {
	return (&Error{Kind: kind, Err: err}).HTTPError()
}

// KindOf returns the Kind carried by err, or false.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// exchangeKind maps a failed code exchange to its Kind. The parser's specific
// sentinels are checked before the generic parse error they are joined with.
func exchangeKind(err error) Kind {
	switch {
	case errors.Is(err, oauth.ErrScopeMismatch):
		return KindScopeMismatch
	case errors.Is(err, oauth.ErrUnexpectedTokenType):
		return KindUnexpectedTokenType
	case errors.Is(err, oauth.ErrTokenResponseBody):
		return KindTokenResponseBody
	case errors.Is(err, oauth.ErrTokenResponseParse):
		return KindTokenResponseParse
	default:
		return KindTokenRequest
	}
}
