package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/middlewares"
)

func callWithRecover(t *testing.T, h internal.HandlerFunc, opts ...middlewares.RecoverOption) error {
	t.Helper()
	c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	return middlewares.Recover(opts...)(h)(c)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()
		err := callWithRecover(t, func(internal.Context) error { panic("boom") })

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.Contains(t, string(pe.Stack), "middlewares_test")
	})

	t.Run("handler error passes through", func(t *testing.T) {
		t.Parallel()
		want := errors.New("plain")
		err := callWithRecover(t, func(internal.Context) error { return want })
		require.Equal(t, want, err)
		require.False(t, middlewares.IsPanicError(err))
	})

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, callWithRecover(t, func(internal.Context) error { return nil }))
	})

	t.Run("non-string panic values", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{42, errors.New("e"), struct{ N int }{1}} {
			err := callWithRecover(t, func(internal.Context) error { panic(v) })
			pe, ok := middlewares.AsPanicError(err)
			require.True(t, ok)
			require.Equal(t, v, pe.Value)
		}
	})

	t.Run("panic nil", func(t *testing.T) {
		t.Parallel()
		err := callWithRecover(t, func(internal.Context) error {
			panic(nil) //nolint:govet // exercising panic(nil)
		})
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.IsType(t, (*runtime.PanicNilError)(nil), pe.Value)
	})

	t.Run("deferred panic", func(t *testing.T) {
		t.Parallel()
		err := callWithRecover(t, func(internal.Context) error {
			defer func() { panic("late") }()
			return nil
		})
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "late", pe.Value)
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()
		err := callWithRecover(t, func(internal.Context) error { panic("x") }, middlewares.WithRecoverDisableStack())
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack size bound", func(t *testing.T) {
		t.Parallel()
		err := callWithRecover(t, func(internal.Context) error { panic("x") }, middlewares.WithRecoverStackSize(100))
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.NotEmpty(t, pe.Stack)
		require.LessOrEqual(t, len(pe.Stack), 100)
	})
}
