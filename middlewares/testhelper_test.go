package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

// testContext is a minimal internal.Context backed by a recorder.
type testContext struct {
	mu       sync.Mutex
	response http.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
	written  bool
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func (c *testContext) req() *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request
}

func (c *testContext) Request() *http.Request        { return c.req() }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.req().Context() }
func (c *testContext) Param(string) string           { return "" }
func (c *testContext) Query(name string) string      { return c.req().URL.Query().Get(name) }
func (c *testContext) Header(name string) string     { return c.req().Header.Get(name) }
func (c *testContext) SetHeader(name, value string)  { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	c.markWritten()
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.markWritten()
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.markWritten()
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.markWritten()
	http.Redirect(c.response, c.req(), url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) markWritten() {
	c.mu.Lock()
	c.written = true
	c.mu.Unlock()
}

func (c *testContext) Written() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written
}

func (c *testContext) Logger() *slog.Logger              { return c.logger }
func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.Debug(msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.Info(msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.Warn(msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.Error(msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any { return c.req().Context().Value(key) }

func (c *testContext) Session() (*session.Session, error)              { return nil, session.ErrNotConfigured }
func (c *testContext) SessionValue(session.Key) (string, error)        { return "", session.ErrNotConfigured }
func (c *testContext) SetSessionValue(session.Key, string) error       { return session.ErrNotConfigured }
func (c *testContext) TakeSessionValue(session.Key) (string, error)    { return "", session.ErrNotConfigured }
func (c *testContext) DeleteSessionValue(session.Key) error            { return session.ErrNotConfigured }
func (c *testContext) RotateSession() error                            { return session.ErrNotConfigured }
func (c *testContext) DestroySession() error                           { return session.ErrNotConfigured }
func (c *testContext) Deadline() (time.Time, bool)                     { return c.req().Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                           { return c.req().Context().Done() }
func (c *testContext) Err() error                                      { return c.req().Context().Err() }
func (c *testContext) Value(key any) any                               { return c.req().Context().Value(key) }

var _ internal.Context = (*testContext)(nil)
