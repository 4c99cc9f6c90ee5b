package oauth_test

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptcdevs/ghlogin/pkg/oauth"
)

var requested = []string{"repo", "user"}

func TestParseTokenResponse(t *testing.T) {
	t.Parallel()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=T1&scope=repo%2Cuser&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, "T1", cred.AccessToken)
		require.Equal(t, "bearer", cred.TokenType)
		require.Equal(t, []string{"repo", "user"}, cred.Scopes)
	})

	t.Run("field order does not matter", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("token_type=bearer&scope=user&access_token=abc", requested)
		require.NoError(t, err)
		require.Equal(t, "abc", cred.AccessToken)
		require.Equal(t, []string{"user"}, cred.Scopes)
	})

	t.Run("subset of requested scopes", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=T&scope=repo&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, []string{"repo"}, cred.Scopes)
	})

	t.Run("lowercase separator", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=T&scope=repo%2cuser&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, []string{"repo", "user"}, cred.Scopes)
	})

	t.Run("token type is case-insensitive", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=T&scope=repo&token_type=Bearer", requested)
		require.NoError(t, err)
		require.Equal(t, "Bearer", cred.TokenType)
	})

	t.Run("empty elements are dropped", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=T&scope=repo%2C%2Cuser%2C&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, []string{"repo", "user"}, cred.Scopes)
	})

	t.Run("percent-encoded token", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=a%2Fb&scope=repo&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, "a/b", cred.AccessToken)
	})

	t.Run("token with padding", func(t *testing.T) {
		t.Parallel()
		cred, err := oauth.ParseTokenResponse("access_token=abc==&scope=repo&token_type=bearer", requested)
		require.NoError(t, err)
		require.Equal(t, "abc==", cred.AccessToken)
	})
}

func TestParseTokenResponse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"segment without separator", "access_token=T&scope&token_type=bearer", oauth.ErrMalformedPair},
		{"empty body", "", oauth.ErrMalformedPair},
		{"duplicate key", "access_token=T&access_token=U&scope=repo&token_type=bearer", oauth.ErrMalformedResponse},
		{"missing token type", "access_token=T&scope=repo", oauth.ErrMissingField},
		{"missing access token", "scope=repo&token_type=bearer", oauth.ErrMissingField},
		{"missing scope", "access_token=T&token_type=bearer", oauth.ErrMissingField},
		{"extra field", "access_token=T&scope=repo&token_type=bearer&expires_in=10", oauth.ErrMissingField},
		{"provider error", "error=bad_verification_code&error_description=expired&error_uri=x", oauth.ErrMissingField},
		{"empty access token", "access_token=&scope=repo&token_type=bearer", oauth.ErrMissingField},
		{"invalid escape in token", "access_token=%zz&scope=repo&token_type=bearer", oauth.ErrMalformedResponse},
		{"mac token type", "access_token=T&scope=repo&token_type=mac", oauth.ErrUnexpectedTokenType},
		{"empty token type", "access_token=T&scope=repo&token_type=", oauth.ErrUnexpectedTokenType},
		{"empty scope", "access_token=T&scope=&token_type=bearer", oauth.ErrEmptyScope},
		{"only separators", "access_token=T&scope=%2C%2C&token_type=bearer", oauth.ErrEmptyScope},
		{"unrequested scope", "access_token=T&scope=repo%2Cadmin&token_type=bearer", oauth.ErrScopeMismatch},
		{"scope with leading space", "access_token=T&scope=%20repo&token_type=bearer", oauth.ErrScopeMismatch},
		{"scope with plus-encoded space", "access_token=T&scope=repo+&token_type=bearer", oauth.ErrScopeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cred, err := oauth.ParseTokenResponse(tt.body, requested)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, cred)
		})
	}
}

func TestParseTokenResponse_ErrorsDoNotLeakToken(t *testing.T) {
	t.Parallel()

	const secret = "gho_supersecretvalue"
	bodies := []string{
		"access_token=" + secret + "&scope=repo&token_type=mac",
		"access_token=" + secret + "&scope=admin&token_type=bearer",
		"access_token=" + secret + "&scope=&token_type=bearer",
		"access_token=" + secret + "&scope=repo",
		"access_token=" + secret + "&scope=repo&token_type=bearer&extra=1",
	}

	for _, body := range bodies {
		_, err := oauth.ParseTokenResponse(body, requested)
		require.Error(t, err)
		require.NotContains(t, err.Error(), secret)
	}
}

func TestParseTokenResponse_ProviderErrorCode(t *testing.T) {
	t.Parallel()

	_, err := oauth.ParseTokenResponse("error=bad_verification_code&error_description=The+code+is+wrong", requested)
	require.ErrorIs(t, err, oauth.ErrMissingField)
	require.Contains(t, err.Error(), "bad_verification_code")
}

func TestCredential_Redaction(t *testing.T) {
	t.Parallel()

	cred := oauth.Credential{AccessToken: "gho_secret", TokenType: "bearer", Scopes: []string{"repo"}}

	require.NotContains(t, cred.String(), "gho_secret")
	require.NotContains(t, fmt.Sprintf("%v", cred), "gho_secret")
	require.NotContains(t, fmt.Sprintf("%+v", &cred), "gho_secret")

	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("granted", "credential", cred)
	require.NotContains(t, buf.String(), "gho_secret")
	require.Contains(t, buf.String(), "repo")
}

func TestCredential_Token(t *testing.T) {
	t.Parallel()

	cred := oauth.Credential{AccessToken: "T", TokenType: "bearer"}
	tok := cred.Token()
	require.Equal(t, "T", tok.AccessToken)
	require.True(t, tok.Valid())
}
