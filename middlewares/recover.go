package middlewares

import (
	"runtime"

	"github.com/ptcdevs/ghlogin/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize    int
	DisableStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum captured stack size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisableStack turns off stack capture.
func WithRecoverDisableStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisableStack = true
	}
}

// Recover converts a handler panic into a *PanicError for the app's error handler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = newPanicError(c, r, cfg)
				}
			}()
			return next(c)
		}
	}
}

func newPanicError(c internal.Context, r any, cfg *RecoverConfig) *PanicError {
	if cfg.DisableStack {
		c.LogError("panic recovered", "panic", r)
		return &PanicError{Value: r}
	}

	size := cfg.StackSize
	if size <= 0 {
		size = DefaultStackSize
	}
	stack := make([]byte, size)
	stack = stack[:runtime.Stack(stack, false)]

	c.LogError("panic recovered", "panic", r, "stack", string(stack))
	return &PanicError{Value: r, Stack: stack}
}
