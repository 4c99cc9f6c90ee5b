// Package auth implements the GitHub login flow on top of internal.App.
//
// GET /login stores a fresh anti-forgery state in the session and redirects
// to GitHub. GET /callback takes the stored state atomically, compares it
// with the state query parameter in constant time, exchanges the code via
// oauth.Client and stores the resulting credential in the session, whose ID
// is then rotated. POST /logout destroys the session. GET /commits is a
// placeholder guarded by RequireCredential.
//
// Every failure is an *Error whose Kind fixes the HTTP status and the
// client-facing label; the cause is logged and never returned to the client.
package auth
