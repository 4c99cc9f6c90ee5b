package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ptcdevs/ghlogin/pkg/session"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s := session.New(time.Hour)
	require.NotEmpty(t, s.ID)
	require.True(t, s.IsNew())
	require.NotNil(t, s.Values)
	require.False(t, s.IsExpired())
	require.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Second)

	other := session.New(time.Hour)
	require.NotEqual(t, s.ID, other.ID)
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	s := session.New(time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Minute)
	require.True(t, s.IsExpired())
	require.Zero(t, s.TTL())
}

func TestSession_Values(t *testing.T) {
	t.Parallel()

	s := session.New(time.Hour)
	s.SetValue("state", "xyz")

	v, ok := s.GetValue("state")
	require.True(t, ok)
	require.Equal(t, "xyz", v)

	s.DeleteValue("state")
	_, ok = s.GetValue("state")
	require.False(t, ok)
}

func TestSession_Clone(t *testing.T) {
	t.Parallel()

	s := session.New(time.Hour)
	s.SetValue("a", "1")

	c := s.Clone()
	c.SetValue("a", "2")
	c.ClearNew()

	require.Equal(t, "1", session.ValueOr(s, "a", ""))
	require.True(t, s.IsNew())
	require.False(t, c.IsNew())
}

func TestValue(t *testing.T) {
	t.Parallel()

	s := session.New(time.Hour)
	s.SetValue("exists", "value")

	v, err := session.Value(s, "exists")
	require.NoError(t, err)
	require.Equal(t, "value", v)

	_, err = session.Value(s, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)

	_, err = session.Value(nil, "exists")
	require.ErrorIs(t, err, session.ErrNotFound)

	require.Equal(t, "value", session.ValueOr(s, "exists", "default"))
	require.Equal(t, "default", session.ValueOr(s, "missing", "default"))
	require.Equal(t, "default", session.ValueOr(nil, "exists", "default"))
}
