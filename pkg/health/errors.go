package health

import "errors"

var (
	// ErrCheckFailed marks a check that returned an error.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that ran past the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
