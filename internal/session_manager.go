package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ptcdevs/ghlogin/pkg/cookie"
	"github.com/ptcdevs/ghlogin/pkg/logger"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

// Default session configuration.
const (
	defaultSessionCookieName = "__sid"
	defaultSessionTTL        = 2 * time.Hour
)

// SessionManager ties the session store to the session cookie.
// The cookie carries only the session ID, signed with the cookie secret.
type SessionManager struct {
	store      session.Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	cookieName string
	ttl        time.Duration
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a new SessionManager.
// The cookie manager must be configured with a secret; signed cookies fail otherwise.
func NewSessionManager(store session.Store, cookies *cookie.Manager, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		cookies:    cookies,
		logger:     logger.NewNope(),
		cookieName: defaultSessionCookieName,
		ttl:        defaultSessionTTL,
	}

	for _, opt := range opts {
		opt(sm)
	}

	return sm
}

// WithSessionCookieName sets the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionTTL sets how long a session lives after creation.
// The cookie Max-Age matches it.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if ttl > 0 {
			sm.ttl = ttl
		}
	}
}

// SetLogger sets the logger for session events. Called by App after initialization.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Store returns the underlying session store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// TTL returns the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// NewSession returns an unsaved session with the configured lifetime.
func (sm *SessionManager) NewSession() *session.Session {
	return session.New(sm.ttl)
}

// LoadSession loads the session referenced by the request cookie.
// Returns nil, nil if no session cookie exists.
// Returns session.ErrInvalidToken if the cookie signature is invalid.
func (sm *SessionManager) LoadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	id, err := sm.cookies.GetSigned(r, sm.cookieName)
	switch {
	case errors.Is(err, cookie.ErrNotFound):
		return nil, nil
	case errors.Is(err, cookie.ErrBadSig):
		return nil, session.ErrInvalidToken
	case err != nil:
		return nil, fmt.Errorf("read session cookie: %w", err)
	}
	if id == "" {
		return nil, nil
	}

	return sm.store.Get(ctx, id)
}

// CreateSession persists sess and writes its cookie.
func (sm *SessionManager) CreateSession(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	if err := sm.store.Create(ctx, sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := sm.SaveSession(w, sess); err != nil {
		return err
	}
	sm.logger.DebugContext(ctx, "session created", slog.Duration("ttl", sess.TTL()))
	return nil
}

// SaveSession writes the session cookie to the response.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, sess *session.Session) error {
	maxAge := int(sess.TTL() / time.Second)
	if err := sm.cookies.SetSigned(w, sm.cookieName, sess.ID, maxAge); err != nil {
		return fmt.Errorf("write session cookie: %w", err)
	}
	return nil
}

// RotateSession moves the stored values of sess to a new ID, removes the old
// one and reissues the cookie. Called after login so a session ID seen before
// authentication never carries a credential.
//
// Values are re-read from the store rather than taken from sess, so writes
// made by concurrent requests since sess was loaded survive the move.
// Returns session.ErrNotFound if the session no longer exists.
func (sm *SessionManager) RotateSession(ctx context.Context, w http.ResponseWriter, sess *session.Session) (*session.Session, error) {
	current, err := sm.store.Get(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}

	rotated := sm.NewSession()
	for k, v := range current.Values {
		rotated.SetValue(k, v)
	}

	if err := sm.CreateSession(ctx, w, rotated); err != nil {
		return nil, err
	}
	if err := sm.store.Delete(ctx, sess.ID); err != nil {
		sm.logger.WarnContext(ctx, "failed to delete rotated session", slog.Any("error", err))
	}
	return rotated, nil
}

// DeleteSession clears the session cookie.
func (sm *SessionManager) DeleteSession(w http.ResponseWriter) {
	sm.cookies.Delete(w, sm.cookieName)
}
