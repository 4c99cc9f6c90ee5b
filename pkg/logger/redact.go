package logger

import (
	"log/slog"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"access_token":  {},
	"client_secret": {},
	"code":          {},
	"password":      {},
	"secret":        {},
	"token":         {},
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

// IsSensitiveKey reports whether values logged under key are replaced with Redacted.
// Matching is case-insensitive.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// redactAttr is a slog.HandlerOptions.ReplaceAttr hook. Groups are visited
// attribute by attribute, so nested keys are covered too.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindGroup && IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}
