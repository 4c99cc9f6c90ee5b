package internal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ptcdevs/ghlogin/pkg/session"
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// SetContext replaces the request's context.
	// Values stored with Set are lost unless ctx derives from Context().
	SetContext(ctx context.Context)

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	// The error should be returned from the handler to trigger the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any

	// Session returns the current session, loading it on first call.
	// Returns nil, nil if the client has no valid session.
	// Returns session.ErrNotConfigured if WithSession was not used.
	Session() (*session.Session, error)

	// SessionValue returns a value from the current session.
	// Returns session.ErrNotFound if there is no session or no such key.
	SessionValue(key session.Key) (string, error)

	// SetSessionValue stores a value, creating the session if needed.
	SetSessionValue(key session.Key, val string) error

	// TakeSessionValue reads and removes a value in one atomic store operation.
	// Returns session.ErrNotFound if there is no session or no such key.
	TakeSessionValue(key session.Key) (string, error)

	// DeleteSessionValue removes a value from the current session.
	DeleteSessionValue(key session.Key) error

	// RotateSession moves the session's values to a fresh ID and reissues the cookie.
	RotateSession() error

	// DestroySession removes the session and clears the cookie.
	DestroySession() error
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	sessionManager *SessionManager
	session        *session.Session
	sessionLoaded  bool
}

// newContext creates a new context, wrapping w unless it is already wrapped.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		sessionManager: app.sessionManager,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	if c.sessionLoaded {
		return c.session, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired), errors.Is(err, session.ErrInvalidToken):
		// A stale or tampered cookie behaves like no cookie.
		c.LogDebug("discarding session cookie", "reason", err.Error())
		sess = nil
	default:
		return nil, err
	}

	c.session = sess
	c.sessionLoaded = true
	return c.session, nil
}

func (c *requestContext) SessionValue(key session.Key) (string, error) {
	sess, err := c.Session()
	if err != nil {
		return "", err
	}
	return session.Value(sess, key)
}

func (c *requestContext) SetSessionValue(key session.Key, val string) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}

	if sess != nil {
		err = c.sessionManager.Store().Set(c.Context(), sess.ID, key, val)
		if err == nil {
			sess.SetValue(key, val)
			return nil
		}
		if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrExpired) {
			return err
		}
		// Expired since it was loaded: start over with a fresh session.
	}

	sess = c.sessionManager.NewSession()
	sess.SetValue(key, val)
	if err := c.sessionManager.CreateSession(c.Context(), c.response, sess); err != nil {
		return err
	}
	c.session = sess
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) TakeSessionValue(key session.Key) (string, error) {
	sess, err := c.Session()
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", session.ErrNotFound
	}

	val, err := c.sessionManager.Store().Take(c.Context(), sess.ID, key)
	sess.DeleteValue(key)
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *requestContext) DeleteSessionValue(key session.Key) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	if err := c.sessionManager.Store().Unset(c.Context(), sess.ID, key); err != nil {
		return err
	}
	sess.DeleteValue(key)
	return nil
}

func (c *requestContext) RotateSession() error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}

	rotated, err := c.sessionManager.RotateSession(c.Context(), c.response, sess)
	if err != nil {
		return err
	}
	c.session = rotated
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), sess.ID); err != nil {
			return err
		}
	}

	c.sessionManager.DeleteSession(c.response)
	c.session = nil
	c.sessionLoaded = true
	return nil
}
