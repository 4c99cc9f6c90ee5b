package config

import "log/slog"

// Secret is a string that never prints its value. It is filled from
// environment variables only; yaml and JSON output show a placeholder.
type Secret string

const redacted = "[REDACTED]"

// Reveal returns the raw value. Call it only where the secret is consumed.
func (s Secret) Reveal() string { return string(s) }

// IsZero reports whether the secret is unset.
func (s Secret) IsZero() bool { return s == "" }

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s Secret) GoString() string { return s.String() }

func (s Secret) LogValue() slog.Value { return slog.StringValue(s.String()) }

func (s Secret) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Secret) UnmarshalText(b []byte) error {
	*s = Secret(b)
	return nil
}
