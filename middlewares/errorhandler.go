package middlewares

import (
	"net/http"

	"github.com/ptcdevs/ghlogin/internal"
)

// Error codes written for failures that are not *internal.HTTPError.
const (
	ErrorCodeInternal = "internal_error"
	ErrorCodeTimeout  = "timeout"
)

// ErrorResponse is the JSON body written by ErrorHandler.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler renders handler errors as JSON.
//
// A *TimeoutError becomes 504, even when it wraps an *internal.HTTPError.
// An *internal.HTTPError keeps its status, message and code. Anything else, panics included, becomes a generic 500 so
// internal details never reach the client. Server errors are logged at error
// level, client errors at warn.
func ErrorHandler() internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		status, body := errorResponse(err)
		if body.RequestID == "" {
			body.RequestID = GetRequestID(c)
		}

		if status >= http.StatusInternalServerError {
			c.LogError("request failed", "status", status, "error_code", body.Code, "error", err)
		} else {
			c.LogWarn("request rejected", "status", status, "error_code", body.Code, "error", err)
		}

		return c.JSON(status, body)
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	// A timeout wins over whatever the handler returned when it gave up.
	if _, ok := AsTimeoutError(err); ok {
		return http.StatusGatewayTimeout, ErrorResponse{
			Error: "request timed out",
			Code:  ErrorCodeTimeout,
		}
	}

	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		code := httpErr.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(code)
		}
		return code, ErrorResponse{Error: msg, Code: httpErr.ErrorCode, RequestID: httpErr.RequestID}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: http.StatusText(http.StatusInternalServerError),
		Code:  ErrorCodeInternal,
	}
}
