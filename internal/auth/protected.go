package auth

import (
	"errors"
	"net/http"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

// RequireCredential lets requests through only for logged-in sessions.
// Anonymous GET requests have their path recorded under KeyRedirect and are
// sent to loginPath; when that is not possible the request gets a 401.
func RequireCredential(loginPath string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			_, err := CredentialFromContext(c)
			if err == nil {
				return next(c)
			}
			if errors.Is(err, session.ErrNotConfigured) {
				return fail(KindSession, err)
			}
			if !errors.Is(err, session.ErrNotFound) {
				// Unreadable credential: drop it and start over.
				c.LogWarn("discarding stored credential", "error", err)
				if derr := c.DeleteSessionValue(KeyCredential); derr != nil {
					return fail(KindSession, derr)
				}
			}

			if c.Request().Method != http.MethodGet {
				return fail(KindUnauthorized, nil)
			}
			if err := c.SetSessionValue(KeyRedirect, c.Request().URL.RequestURI()); err != nil {
				c.LogWarn("cannot record post-login destination", "error", err)
				return fail(KindUnauthorized, err)
			}
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}

// CommitsResponse is the placeholder body of the protected route.
type CommitsResponse struct {
	Commits []string `json:"commits"`
	Scopes  []string `json:"scopes"`
}

// commits is a placeholder that proves the credential gate works.
func (h *Handler) commits(c internal.Context) error {
	cred, err := CredentialFromContext(c)
	if err != nil {
		return fail(KindUnauthorized, err)
	}
	return c.JSON(http.StatusOK, CommitsResponse{Commits: []string{}, Scopes: cred.Scopes})
}
