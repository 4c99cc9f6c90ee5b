// Package internal provides the HTTP application core: App, Context, Router,
// Handler and Middleware, plus session and graceful-shutdown plumbing.
//
// # Handlers
//
// Handlers implement Handler and declare routes. They receive dependencies
// through their constructor and return errors instead of writing error
// responses themselves:
//
//	func (h *AuthHandler) Routes(r internal.Router) {
//	    r.GET("/login", h.login)
//	}
//
//	func (h *AuthHandler) login(c internal.Context) error {
//	    if err := c.SetSessionValue("state", state); err != nil {
//	        return err
//	    }
//	    return c.Redirect(http.StatusFound, url)
//	}
//
// A returned error is passed to the ErrorHandler configured with
// WithErrorHandler, unless the handler already wrote a response.
//
// # Sessions
//
// WithSession enables server-side sessions. The cookie carries a signed
// session ID; values live in the session.Store and are written one key at a
// time. TakeSessionValue reads and deletes a value atomically, which makes it
// the right tool for single-use values.
//
// Sessions are created on the first SetSessionValue call. RotateSession moves
// the values to a fresh ID and should be called after a privilege change such
// as login.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to anything
// that accepts one. Cancellation follows the request.
package internal
