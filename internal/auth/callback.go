package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

// CallbackParams are the query parameters the provider appends to the redirect URL.
// Code is secret and never logged.
type CallbackParams struct {
	Code  string
	State string
}

func callbackParams(c internal.Context) CallbackParams {
	return CallbackParams{
		Code:  c.Query("code"),
		State: c.Query("state"),
	}
}

// CallbackResponse is written when no post-login destination is recorded.
type CallbackResponse struct {
	Status string   `json:"status"`
	Scopes []string `json:"scopes"`
}

// callback completes the flow.
//
// The stored state is taken (read and removed) before anything else, so a
// callback can be attempted at most once per login whatever its outcome.
// The code is exchanged only when both states are non-empty and equal.
// Exchange and session writes use c.Context(), so a request deadline bounds
// them all; once it has passed the session is left untouched.
func (h *Handler) callback(c internal.Context) error {
	params := callbackParams(c)

	stored, err := c.TakeSessionValue(KeyState)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return fail(KindMissingState, err)
	default:
		return fail(KindSession, err)
	}

	if stored == "" || params.State == "" {
		return fail(KindEmptyToken, nil)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(params.State)) != 1 {
		return fail(KindStateMismatch, nil)
	}
	if params.Code == "" {
		return fail(KindMissingCode, nil)
	}

	cred, err := h.client.ExchangeCode(c.Context(), params.Code)
	if err != nil {
		return fail(exchangeKind(err), err)
	}

	// Past the deadline the client has been given up on: write nothing.
	if err := c.Context().Err(); err != nil {
		return err
	}

	encoded, err := encodeCredential(cred)
	if err != nil {
		return fail(KindSession, err)
	}

	// Rotate first: the credential only ever lands under the post-login ID,
	// whose cookie is already on the response.
	if err := c.RotateSession(); err != nil {
		return fail(KindSession, err)
	}
	if err := c.SetSessionValue(KeyCredential, encoded); err != nil {
		return fail(KindSession, err)
	}

	c.LogInfo("login completed", "credential", cred)

	dest, err := c.TakeSessionValue(KeyRedirect)
	if err == nil && isLocalPath(dest) {
		return c.Redirect(http.StatusFound, dest)
	}
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		c.LogWarn("failed to read post-login destination", "error", err)
	}

	return c.JSON(http.StatusOK, CallbackResponse{Status: "success", Scopes: cred.Scopes})
}

// isLocalPath accepts absolute paths on this host only, rejecting
// scheme-relative forms such as "//evil.example" and "/\evil.example".
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
