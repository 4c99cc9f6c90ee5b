package session

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often MemoryStore drops expired sessions.
const DefaultCleanupInterval = time.Minute

// MemoryStore keeps sessions in process memory.
// All operations hold a single mutex, which makes Take atomic.
type MemoryStore struct {
	items  map[string]*Session
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are removed by the
// background janitor. Zero disables the janitor.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// NewMemoryStore creates an in-memory session store.
// Call Close to stop the janitor goroutine.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := &memoryOptions{cleanupInterval: DefaultCleanupInterval}
	for _, opt := range opts {
		opt(o)
	}

	m := &MemoryStore{
		items: make(map[string]*Session),
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor(o.cleanupInterval)
	}

	return m
}

// Create persists a copy of s.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	stored := s.Clone()
	stored.ClearNew()
	m.items[s.ID] = stored
	return nil
}

// Get returns a copy of the stored session.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Set stores a single value.
func (m *MemoryStore) Set(_ context.Context, id string, key Key, val string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.SetValue(key, val)
	return nil
}

// Take reads and removes a single value under the store lock.
func (m *MemoryStore) Take(_ context.Context, id string, key Key) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	v, ok := s.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	delete(s.Values, key)
	return v, nil
}

// Unset removes a single value.
func (m *MemoryStore) Unset(_ context.Context, id string, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	delete(s.Values, key)
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, id)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet
// removed by the janitor.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the background janitor. Close is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

// lookup returns the live session. Caller must hold the mutex.
func (m *MemoryStore) lookup(id string) (*Session, error) {
	if m.closed {
		return nil, ErrClosed
	}
	s, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		delete(m.items, id)
		return nil, ErrExpired
	}
	return s, nil
}

func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, s := range m.items {
		if now.After(s.ExpiresAt) {
			delete(m.items, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
