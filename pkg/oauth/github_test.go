package oauth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/ptcdevs/ghlogin/pkg/oauth"
)

const (
	testClientID     = "test-id"
	testClientSecret = "test-secret-do-not-log"
	testRedirectURL  = "https://app.example.com/callback"
)

func newTestClient(t *testing.T, tokenURL string, opts ...oauth.Option) *oauth.GitHubClient {
	t.Helper()
	opts = append([]oauth.Option{oauth.WithEndpoint(oauth2.Endpoint{
		AuthURL:  "https://github.example.com/login/oauth/authorize",
		TokenURL: tokenURL,
	})}, opts...)
	c, err := oauth.NewGitHubClient(oauth.GitHubConfig{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURL:  testRedirectURL,
		Scopes:       []string{"repo", "user"},
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewGitHubClient(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGitHubClient(oauth.GitHubConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Equal(t, "github", c.Name())
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGitHubClient(oauth.GitHubConfig{ClientSecret: "test-secret"})
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, c)
	})

	t.Run("missing client secret", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGitHubClient(oauth.GitHubConfig{ClientID: "test-id"})
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
		require.Nil(t, c)
	})

	t.Run("default scopes applied", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGitHubClient(oauth.GitHubConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.Equal(t, oauth.GitHubDefaultScopes(), c.Scopes())
	})
}

func TestGitHubClient_BuildAuthorizationRequest(t *testing.T) {
	t.Parallel()

	t.Run("url carries client, redirect, scopes and state", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, "http://unused", oauth.WithStateGenerator(func() string { return "xyz" }))

		req := c.BuildAuthorizationRequest()
		require.Equal(t, "xyz", req.State)

		u, err := url.Parse(req.URL)
		require.NoError(t, err)
		require.Equal(t, "github.example.com", u.Host)
		q := u.Query()
		require.Equal(t, testClientID, q.Get("client_id"))
		require.Equal(t, testRedirectURL, q.Get("redirect_uri"))
		require.Equal(t, "repo user", q.Get("scope"))
		require.Equal(t, "xyz", q.Get("state"))
		require.Equal(t, "false", q.Get("allow_signup"))
		require.Equal(t, "code", q.Get("response_type"))
	})

	t.Run("url never contains the client secret", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, "http://unused")
		req := c.BuildAuthorizationRequest()
		require.NotContains(t, req.URL, testClientSecret)
	})

	t.Run("default state is fresh and unpredictable", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, "http://unused")

		seen := make(map[string]struct{})
		for range 100 {
			state := c.BuildAuthorizationRequest().State
			require.GreaterOrEqual(t, len(state), 26)
			_, dup := seen[state]
			require.False(t, dup)
			seen[state] = struct{}{}
		}
	})
}

func TestGitHubClient_ExchangeCode(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Accept"))
			require.NoError(t, r.ParseForm())
			require.Equal(t, testClientID, r.PostForm.Get("client_id"))
			require.Equal(t, testClientSecret, r.PostForm.Get("client_secret"))
			require.Equal(t, "abc", r.PostForm.Get("code"))
			require.Equal(t, testRedirectURL, r.PostForm.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
			_, _ = io.WriteString(w, "access_token=T1&scope=repo%2Cuser&token_type=bearer")
		}))
		t.Cleanup(srv.Close)

		c := newTestClient(t, srv.URL)
		cred, err := c.ExchangeCode(context.Background(), "abc")
		require.NoError(t, err)
		require.Equal(t, "T1", cred.AccessToken)
		require.Equal(t, []string{"repo", "user"}, cred.Scopes)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("trailing newline is tolerated", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "access_token=T1&scope=repo&token_type=bearer\n")
		}))
		t.Cleanup(srv.Close)

		cred, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), "abc")
		require.NoError(t, err)
		require.Equal(t, "T1", cred.AccessToken)
	})

	t.Run("non-2xx status is a request error and is not retried", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		_, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrTokenRequest)
		require.Contains(t, err.Error(), "500")
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		tokenURL := srv.URL
		srv.Close()

		_, err := newTestClient(t, tokenURL).ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrTokenRequest)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-release:
			}
		}))
		t.Cleanup(func() {
			close(release)
			srv.Close()
		})

		c := newTestClient(t, srv.URL, oauth.WithTimeout(50*time.Millisecond))
		_, err := c.ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrTokenRequest)
	})

	t.Run("provider error body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "error=bad_verification_code&error_description=The+code+passed+is+incorrect&error_uri=https%3A%2F%2Fdocs")
		}))
		t.Cleanup(srv.Close)

		_, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrTokenResponseParse)
		require.ErrorIs(t, err, oauth.ErrMissingField)
	})

	t.Run("unexpected token type", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "access_token=T1&scope=repo&token_type=mac")
		}))
		t.Cleanup(srv.Close)

		_, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrTokenResponseParse)
		require.ErrorIs(t, err, oauth.ErrUnexpectedTokenType)
	})

	t.Run("scope not requested", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "access_token=T1&scope=admin%3Aorg&token_type=bearer")
		}))
		t.Cleanup(srv.Close)

		_, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, oauth.ErrScopeMismatch)
	})

	t.Run("errors never contain secrets", func(t *testing.T) {
		t.Parallel()
		const code = "code-value-secret"
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "access_token=gho_leak&scope=repo&token_type=mac")
		}))
		t.Cleanup(srv.Close)

		_, err := newTestClient(t, srv.URL).ExchangeCode(context.Background(), code)
		require.Error(t, err)
		msg := err.Error()
		require.False(t, strings.Contains(msg, testClientSecret))
		require.False(t, strings.Contains(msg, code))
		require.False(t, strings.Contains(msg, "gho_leak"))
	})

	t.Run("caller cancellation", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "access_token=T1&scope=repo&token_type=bearer")
		}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestClient(t, srv.URL).ExchangeCode(ctx, "abc")
		require.ErrorIs(t, err, oauth.ErrTokenRequest)
	})
}
