package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/pkg/oauth"
)

// storedCredential is the session encoding of oauth.Credential.
type storedCredential struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Scopes      []string `json:"scopes"`
}

func encodeCredential(cred *oauth.Credential) (string, error) {
	b, err := json.Marshal(storedCredential{
		AccessToken: cred.AccessToken,
		TokenType:   cred.TokenType,
		Scopes:      cred.Scopes,
	})
	if err != nil {
		return "", fmt.Errorf("encode credential: %w", err)
	}
	return string(b), nil
}

// decodeCredential rejects values without a token; error text never includes the value.
func decodeCredential(v string) (*oauth.Credential, error) {
	var sc storedCredential
	if err := json.Unmarshal([]byte(v), &sc); err != nil {
		return nil, errors.New("decode credential: invalid JSON")
	}
	if sc.AccessToken == "" {
		return nil, errors.New("decode credential: empty access token")
	}
	return &oauth.Credential{
		AccessToken: sc.AccessToken,
		TokenType:   sc.TokenType,
		Scopes:      sc.Scopes,
	}, nil
}

// CredentialFromContext returns the credential of the logged-in session.
// It returns session.ErrNotFound when nobody is logged in.
func CredentialFromContext(c internal.Context) (*oauth.Credential, error) {
	v, err := c.SessionValue(KeyCredential)
	if err != nil {
		return nil, err
	}
	return decodeCredential(v)
}
