package auth

import "github.com/ptcdevs/ghlogin/pkg/session"

// Session keys owned by the login flow.
const (
	// KeyState holds the anti-forgery token while a login is pending.
	KeyState session.Key = "state"
	// KeyCredential holds the JSON-encoded credential after a successful login.
	KeyCredential session.Key = "credential"
	// KeyRedirect holds the local path to return to after login.
	KeyRedirect session.Key = "redirect_url"
)
