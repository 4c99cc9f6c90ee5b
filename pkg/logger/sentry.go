package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"-"`
	Environment string `env:"SENTRY_ENVIRONMENT" yaml:"environment"`
	Release     string `env:"SENTRY_RELEASE" yaml:"release"`
	// MinLevel is the lowest level forwarded to Sentry as a log entry.
	// Errors always become Sentry events.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" yaml:"min_level"`
}

// Enabled reports whether a DSN is configured.
func (c SentryConfig) Enabled() bool {
	return c.DSN != ""
}

// NewWithSentry creates a logger that writes JSON to stdout and forwards
// records at or above cfg.MinLevel to Sentry. Without a DSN, or when Sentry
// fails to initialize, it logs to stdout only.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := newJSONHandler(os.Stdout, slog.LevelInfo)

	if !cfg.Enabled() {
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed, logging to stdout only", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	logLevels := []slog.Level{slog.LevelError}
	for _, l := range []slog.Level{slog.LevelInfo, slog.LevelWarn} {
		if l >= cfg.MinLevel {
			logLevels = append(logLevels, l)
		}
	}

	toSentry := sentryslog.Option{
		EventLevel:  []slog.Level{slog.LevelError},
		LogLevel:    logLevels,
		ReplaceAttr: redactAttr,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(newMultiHandler(stdout, toSentry), extractors...))
}

// FlushSentry returns a shutdown hook that waits up to timeout for buffered
// Sentry events to be delivered. It is a no-op when Sentry is not initialized.
func FlushSentry(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		wait := timeout
		if d, ok := ctx.Deadline(); ok {
			wait = min(wait, time.Until(d))
		}
		sentry.Flush(wait)
		return nil
	}
}
