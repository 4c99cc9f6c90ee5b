// Package oauth implements the client side of the GitHub OAuth2 authorization
// code flow.
//
// The package covers the two halves a web application needs: building the
// authorization URL together with a fresh anti-forgery state token, and
// exchanging the authorization code returned on the callback for an access
// credential. The token endpoint answers with a query-encoded body which
// ParseTokenResponse validates strictly: exactly access_token, scope and
// token_type must be present, token_type must be "bearer" and every granted
// scope must have been requested.
//
// # Usage
//
//	client, err := oauth.NewGitHubClient(oauth.GitHubConfig{
//		ClientID:     os.Getenv("GITHUB_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("GITHUB_OAUTH_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/callback",
//		Scopes:       []string{"repo", "user"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Login: persist req.State in the session, redirect to req.URL.
//	req := client.BuildAuthorizationRequest()
//
//	// Callback: after the state has been verified.
//	cred, err := client.ExchangeCode(ctx, code)
//	if err != nil {
//		// errors.Is(err, oauth.ErrTokenRequest), oauth.ErrTokenResponseParse, ...
//	}
//
// # Secrets
//
// The client secret is sent only in the token request body. Credential
// redacts the access token from String and LogValue, and no error produced by
// this package contains the secret, the code or the access token.
//
// # Testing
//
// Use WithEndpoint to point the client at an httptest server, and
// WithStateGenerator to make the state deterministic.
package oauth
