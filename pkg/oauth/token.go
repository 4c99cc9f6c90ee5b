package oauth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/oauth2"
)

// BearerTokenType is the only token type accepted from the provider.
const BearerTokenType = "bearer"

// Token response field names.
const (
	fieldAccessToken = "access_token"
	fieldScope       = "scope"
	fieldTokenType   = "token_type"
	fieldError       = "error"
)

// scopeSeparator joins multiple scopes in the still-encoded scope value.
const scopeSeparator = "%2C"

var requiredFields = []string{fieldAccessToken, fieldScope, fieldTokenType}

// Credential is a validated access grant returned by the provider.
// AccessToken is secret: String and LogValue redact it.
type Credential struct {
	AccessToken string
	TokenType   string
	Scopes      []string
}

// String implements fmt.Stringer without exposing the access token.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{TokenType: %s, Scopes: %v}", c.TokenType, c.Scopes)
}

// LogValue implements slog.LogValuer without exposing the access token.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("token_type", c.TokenType),
		slog.Any("scopes", c.Scopes),
	)
}

// Token converts the credential for use with oauth2-aware HTTP clients.
func (c Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: c.AccessToken,
		TokenType:   c.TokenType,
	}
}

// ParseTokenResponse converts a query-encoded token response body, such as
// "access_token=X&scope=repo%2Cuser&token_type=bearer", into a Credential.
//
// The body must contain exactly access_token, scope and token_type, each once.
// Every granted scope must be present in requested. Returned errors never
// contain the access token.
func ParseTokenResponse(body string, requested []string) (*Credential, error) {
	fields := make(map[string]string, len(requiredFields))
	for i, segment := range strings.Split(body, "&") {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, errors.Join(ErrMalformedPair, fmt.Errorf("segment %d has no '='", i))
		}
		if _, dup := fields[key]; dup {
			return nil, errors.Join(ErrMalformedResponse, fmt.Errorf("duplicate field %q", key))
		}
		fields[key] = value
	}

	if err := checkFieldSet(fields); err != nil {
		return nil, err
	}

	token, err := url.QueryUnescape(fields[fieldAccessToken])
	if err != nil {
		return nil, errors.Join(ErrMalformedResponse, errors.New("access_token is not valid percent-encoding"))
	}
	if token == "" {
		return nil, errors.Join(ErrMissingField, errors.New("access_token is empty"))
	}

	tokenType, err := url.QueryUnescape(fields[fieldTokenType])
	if err != nil {
		return nil, errors.Join(ErrMalformedResponse, fmt.Errorf("decode token_type: %w", err))
	}
	if !strings.EqualFold(tokenType, BearerTokenType) {
		return nil, errors.Join(ErrUnexpectedTokenType, fmt.Errorf("token_type=%q", tokenType))
	}

	scopes, err := decodeScopes(fields[fieldScope])
	if err != nil {
		return nil, err
	}
	for _, s := range scopes {
		if !slices.Contains(requested, s) {
			return nil, errors.Join(ErrScopeMismatch, fmt.Errorf("scope %q not in %v", s, requested))
		}
	}

	return &Credential{
		AccessToken: token,
		TokenType:   tokenType,
		Scopes:      scopes,
	}, nil
}

// checkFieldSet requires the key set to equal requiredFields exactly.
func checkFieldSet(fields map[string]string) error {
	var missing, unexpected []string
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	for k := range fields {
		if !slices.Contains(requiredFields, k) {
			unexpected = append(unexpected, k)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}

	slices.Sort(unexpected)
	detail := fmt.Sprintf("missing=%v unexpected=%v", missing, unexpected)
	// Error responses carry a short machine-readable code; it holds no secrets.
	if code, ok := fields[fieldError]; ok {
		if decoded, err := url.QueryUnescape(code); err == nil {
			detail += fmt.Sprintf(" provider_error=%q", decoded)
		}
	}
	return errors.Join(ErrMissingField, errors.New(detail))
}

// decodeScopes splits the raw scope value on the provider separator and
// percent-decodes each element, dropping empty ones.
func decodeScopes(raw string) ([]string, error) {
	raw = strings.ReplaceAll(raw, strings.ToLower(scopeSeparator), scopeSeparator)

	var scopes []string
	for _, part := range strings.Split(raw, scopeSeparator) {
		s, err := url.QueryUnescape(part)
		if err != nil {
			return nil, errors.Join(ErrMalformedResponse, fmt.Errorf("decode scope: %w", err))
		}
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	if len(scopes) == 0 {
		return nil, ErrEmptyScope
	}
	return scopes, nil
}
