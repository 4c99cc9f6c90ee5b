// Package cookie reads and writes HTTP cookies with shared attributes and
// optional HMAC signing.
//
// Signed cookies carry base64(value).base64(hmac) where the MAC covers both
// the cookie name and the value. The value is visible to the client but
// cannot be altered or replayed under another cookie name without detection.
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("SESSION_SECRET")), // 32+ bytes
//		cookie.WithSecure(true),
//	)
//	if err := m.SetSigned(w, "__sid", sessionID, 7200); err != nil {
//		// ErrNoSecret: secret missing or too short
//	}
//	id, err := m.GetSigned(r, "__sid") // ErrNotFound, ErrBadSig
//
// Defaults are Path "/", HttpOnly and SameSite=Lax. Lax lets the session
// cookie accompany the top-level redirect back from an OAuth provider.
package cookie
