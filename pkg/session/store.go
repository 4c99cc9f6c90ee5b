package session

import (
	"context"
)

// Store defines the interface for session persistence.
//
// Values are written field by field so that concurrent requests on the same
// session never overwrite each other's keys. Take must remove the value in the
// same atomic step that reads it: of two concurrent Take calls for the same
// key, at most one observes the value.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its ID.
	// Returns ErrNotFound if the session doesn't exist.
	// Returns ErrExpired if the session has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a single value on an existing session.
	// Returns ErrNotFound if the session doesn't exist.
	Set(ctx context.Context, id string, key Key, val string) error

	// Take reads and removes a single value atomically.
	// Returns ErrNotFound if the session or the key doesn't exist.
	Take(ctx context.Context, id string, key Key) (string, error)

	// Unset removes a single value. Missing keys are not an error.
	Unset(ctx context.Context, id string, key Key) error

	// Delete removes a session by its ID.
	Delete(ctx context.Context, id string) error
}
