package auth

import (
	"net/http"

	"github.com/ptcdevs/ghlogin/internal"
)

// login starts the flow: a fresh state is stored in the session, replacing
// any pending one, and the browser is sent to the provider.
func (h *Handler) login(c internal.Context) error {
	req := h.client.BuildAuthorizationRequest()

	if err := c.SetSessionValue(KeyState, req.State); err != nil {
		return fail(KindSession, err)
	}

	c.LogInfo("login started")
	return c.Redirect(http.StatusFound, req.URL)
}

// logout destroys the session and its cookie.
func (h *Handler) logout(c internal.Context) error {
	if err := c.DestroySession(); err != nil {
		return fail(KindSession, err)
	}
	c.LogInfo("logged out")
	return c.NoContent(http.StatusNoContent)
}
