// Package middlewares provides the request middleware and error rendering
// used by the login service.
//
// # Request ID
//
// RequestID assigns every request an ID, reusing a well-formed upstream
// X-Request-ID or X-Correlation-ID header and generating a ULID otherwise.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	app := internal.New(
//	    internal.WithLogger("ghlogin", middlewares.RequestIDExtractor()),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithErrorHandler(middlewares.ErrorHandler()),
//	)
//
// # Recover and Timeout
//
// Recover turns a panic into a *PanicError. Timeout puts a deadline on
// c.Context() and returns a *TimeoutError when the handler ran past it
// without writing a response.
//
// # Errors
//
// ErrorHandler writes every handler error as a JSON ErrorResponse. Messages
// of *internal.HTTPError are shown verbatim; all other errors are reduced to
// a generic 500 or 504 so internal details stay in the logs.
package middlewares
