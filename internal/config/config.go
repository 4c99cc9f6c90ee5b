package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ptcdevs/ghlogin/pkg/cookie"
	"github.com/ptcdevs/ghlogin/pkg/logger"
	"github.com/ptcdevs/ghlogin/pkg/oauth"
	"github.com/ptcdevs/ghlogin/pkg/redis"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the complete service configuration.
type Config struct {
	Server  Server              `yaml:"server"`
	GitHub  GitHub              `yaml:"github"`
	Session Session             `yaml:"session"`
	Redis   redis.Config        `yaml:"redis"`
	Sentry  logger.SentryConfig `yaml:"sentry"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `env:"HTTP_ADDR" yaml:"addr"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
}

// GitHub configures the OAuth app.
type GitHub struct {
	ClientID     string        `env:"GITHUB_OAUTH_CLIENT_ID" yaml:"client_id"`
	ClientSecret Secret        `env:"GITHUB_OAUTH_CLIENT_SECRET" yaml:"-"`
	RedirectURL  string        `env:"GITHUB_OAUTH_REDIRECT_URL" yaml:"redirect_url"`
	Scopes       []string      `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," yaml:"scopes"`
	Timeout      time.Duration `env:"GITHUB_OAUTH_TIMEOUT" yaml:"timeout"`
}

// OAuth converts the section into the client configuration.
func (g GitHub) OAuth() oauth.GitHubConfig {
	return oauth.GitHubConfig{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret.Reveal(),
		RedirectURL:  g.RedirectURL,
		Scopes:       g.Scopes,
	}
}

// Session configures the session cookie and store.
type Session struct {
	Secret       Secret        `env:"SESSION_SECRET" yaml:"-"`
	Store        string        `env:"SESSION_STORE" yaml:"store"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" yaml:"cookie_name"`
	TTL          time.Duration `env:"SESSION_TTL" yaml:"ttl"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE" yaml:"secure_cookie"`
}

// Default returns the configuration used before the file and environment are applied.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		GitHub: GitHub{
			Scopes:  oauth.GitHubDefaultScopes(),
			Timeout: oauth.DefaultTimeout,
		},
		Session: Session{
			Store:        StoreMemory,
			CookieName:   "__sid",
			TTL:          2 * time.Hour,
			SecureCookie: true,
		},
		Sentry: logger.SentryConfig{
			Environment: "production",
			MinLevel:    slog.LevelWarn,
		},
	}
}

// Load applies the YAML file at path (skipped when path is empty) over the
// defaults, then overlays environment variables, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrLoad, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Join(ErrLoad, fmt.Errorf("decode %s: %w", path, err))
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrLoad, fmt.Errorf("parse env: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found, joined into one error.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Server.Addr == "" {
		add("server.addr is required")
	}
	if c.Server.RequestTimeout <= 0 {
		add("server.request_timeout must be positive")
	}

	if c.GitHub.ClientID == "" {
		add("github.client_id is required (GITHUB_OAUTH_CLIENT_ID)")
	}
	if c.GitHub.ClientSecret.IsZero() {
		add("GITHUB_OAUTH_CLIENT_SECRET is required")
	}
	if u, err := url.Parse(c.GitHub.RedirectURL); err != nil || !u.IsAbs() || (u.Scheme != "https" && u.Scheme != "http") {
		add("github.redirect_url must be an absolute http(s) URL")
	}
	if len(c.GitHub.Scopes) == 0 {
		add("github.scopes must not be empty")
	}
	switch {
	case c.GitHub.Timeout <= 0:
		add("github.timeout must be positive")
	case c.Server.RequestTimeout > 0 && c.GitHub.Timeout >= c.Server.RequestTimeout:
		// The callback needs time left after the exchange to store the credential.
		add("github.timeout (%s) must be shorter than server.request_timeout (%s)", c.GitHub.Timeout, c.Server.RequestTimeout)
	}

	if err := cookie.ValidateSecret(c.Session.Secret.Reveal()); err != nil {
		add("SESSION_SECRET must be at least %d bytes", cookie.MinSecretLength)
	}
	if c.Session.TTL <= 0 {
		add("session.ttl must be positive")
	}
	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			add("redis.url is required when session.store is %q", StoreRedis)
		}
	default:
		add("session.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.Session.Store)
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalid}, errs...)...)
}
