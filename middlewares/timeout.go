package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/ptcdevs/ghlogin/internal"
)

// DefaultTimeout is the request timeout used when a non-positive value is given.
const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context seen by the handler. The handler runs
// on the request goroutine and must honour c.Context(); outbound calls and
// store operations made with it fail once the deadline passes.
//
// When the deadline has passed and the handler has not written a response,
// its result is replaced with a *TimeoutError carrying the original error.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout, Err: err}
			}
			return err
		}
	}
}
