// Package logger builds the service's structured slog loggers.
//
// Every logger writes JSON and passes attributes through a redaction hook:
// values logged under credential-like keys (access_token, client_secret,
// code, cookie and similar) are replaced with Redacted before they reach any
// sink. ContextExtractor functions add request-scoped attributes such as
// request_id on every call:
//
//	log := logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "login started")
//
// NewWithSentry additionally forwards records to Sentry when a DSN is set;
// errors become Sentry events and lower levels down to SentryConfig.MinLevel
// are stored as logs. Register FlushSentry as a shutdown hook so buffered
// events are delivered before the process exits. NewNope discards everything
// and is the default for components constructed without a logger.
package logger
