package oauth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	githubOAuth "golang.org/x/oauth2/github"
)

const (
	// GitHubProviderName is the identifier for GitHub OAuth provider.
	GitHubProviderName = "github"

	// maxTokenResponseSize caps how much of a token response is read.
	maxTokenResponseSize = 64 << 10
)

// GitHubDefaultScopes returns the default scopes for GitHub OAuth.
func GitHubDefaultScopes() []string {
	return []string{"repo", "user"}
}

// GitHubClient implements Client for GitHub OAuth apps.
type GitHubClient struct {
	config     *oauth2.Config
	httpClient *http.Client
	stateFunc  func() string
	timeout    time.Duration
}

// NewGitHubClient creates a new GitHub OAuth client.
// Returns an error if ClientID or ClientSecret is empty.
func NewGitHubClient(cfg GitHubConfig, opts ...Option) (*GitHubClient, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := options{
		stateFunc: rand.Text,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GitHubDefaultScopes()
	}

	endpoint := githubOAuth.Endpoint
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &GitHubClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		httpClient: httpClient,
		stateFunc:  o.stateFunc,
		timeout:    o.timeout,
	}, nil
}

// Name returns the provider identifier.
func (c *GitHubClient) Name() string {
	return GitHubProviderName
}

// Scopes returns the scopes requested during authorization.
func (c *GitHubClient) Scopes() []string {
	return c.config.Scopes
}

// BuildAuthorizationRequest generates a fresh state and the authorization URL.
// New accounts cannot be created through this flow (allow_signup=false).
func (c *GitHubClient) BuildAuthorizationRequest() AuthorizationRequest {
	state := c.stateFunc()
	return AuthorizationRequest{
		URL:   c.config.AuthCodeURL(state, oauth2.SetAuthURLParam("allow_signup", "false")),
		State: state,
	}
}

// ExchangeCode posts the authorization code to the token endpoint once and
// validates the response against the requested scopes.
func (c *GitHubClient) ExchangeCode(ctx context.Context, code string) (*Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{
		"client_id":     {c.config.ClientID},
		"client_secret": {c.config.ClientSecret},
		"code":          {code},
		"redirect_uri":  {c.config.RedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Join(ErrTokenRequest, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTokenRequest, fmt.Errorf("post token request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTokenResponseSize))
		return nil, errors.Join(ErrTokenRequest, fmt.Errorf("token request failed: status=%d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return nil, errors.Join(ErrTokenResponseBody, fmt.Errorf("read token response: %w", err))
	}

	cred, err := ParseTokenResponse(strings.TrimSpace(string(body)), c.config.Scopes)
	if err != nil {
		return nil, errors.Join(ErrTokenResponseParse, err)
	}
	return cred, nil
}

var _ Client = (*GitHubClient)(nil)
