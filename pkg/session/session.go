package session

import (
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Key names a value held in a session.
type Key string

// Session is a snapshot of a server-side session.
// Values reflects the store at load time plus the writes made through the
// request context; it is never persisted wholesale.
type Session struct {
	CreatedAt time.Time
	ExpiresAt time.Time
	Values    map[Key]string
	ID        string

	isNew bool // not yet seen by the client
}

// New creates a session with a random identifier that expires after ttl.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Values:    make(map[Key]string),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		isNew:     true,
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	if c.Values == nil {
		c.Values = make(map[Key]string)
	}
	return &c
}

// IsNew returns true if the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// ClearNew marks the session as known to the client.
func (s *Session) ClearNew() {
	s.isNew = false
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the time left until expiry, or zero if already expired.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

// GetValue returns the cached value for key.
func (s *Session) GetValue(key Key) (string, bool) {
	if s == nil || s.Values == nil {
		return "", false
	}
	v, ok := s.Values[key]
	return v, ok
}

// SetValue updates the cached value for key.
func (s *Session) SetValue(key Key, val string) {
	if s.Values == nil {
		s.Values = make(map[Key]string)
	}
	s.Values[key] = val
}

// DeleteValue removes key from the cached values.
func (s *Session) DeleteValue(key Key) {
	delete(s.Values, key)
}

// Value returns the cached value for key.
// Returns ErrNotFound if the session is nil or the key is absent.
func Value(s *Session, key Key) (string, error) {
	if s == nil {
		return "", ErrNotFound
	}
	v, ok := s.GetValue(key)
	if !ok {
		return "", errors.Join(ErrNotFound, errors.New("key: "+string(key)))
	}
	return v, nil
}

// ValueOr returns the cached value for key or def if it is absent.
func ValueOr(s *Session, key Key, def string) string {
	v, err := Value(s, key)
	if err != nil {
		return def
	}
	return v
}
