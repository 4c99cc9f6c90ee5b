package oauth

// GitHubConfig holds GitHub OAuth configuration.
type GitHubConfig struct {
	ClientID     string   `yaml:"client_id" env:"GITHUB_OAUTH_CLIENT_ID"`
	ClientSecret string   `yaml:"-" env:"GITHUB_OAUTH_CLIENT_SECRET"`
	RedirectURL  string   `yaml:"redirect_url" env:"GITHUB_OAUTH_REDIRECT_URL"`
	Scopes       []string `yaml:"scopes" env:"GITHUB_OAUTH_SCOPES" envSeparator:","`
}
