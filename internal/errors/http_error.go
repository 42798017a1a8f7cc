package errors

import "net/http"

// Kind classifies an HTTPError so callers can tell a retryable conflict from
// a rejection that will not succeed this month.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindConflict      Kind = "conflict"
	KindUnauthorized  Kind = "unauthorized"
	KindRateLimited   Kind = "rate_limited"
	KindInternal      Kind = "internal"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Kind    Kind
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
	}
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindInternal
	}
}

// Helpers for common errors
var (
	ErrUnauthorized  = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrValidation    = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrConflict      = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrQuotaExceeded = func(msg string) *HTTPError { return quotaExceeded(msg) }
	ErrRateLimited   = func(msg string) *HTTPError { return NewHTTPError(http.StatusTooManyRequests, msg) }
	ErrInternal      = func(err error) *HTTPError { return internal(err) }
)

func quotaExceeded(msg string) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Kind: KindQuotaExceeded, Message: msg}
}

func internal(err error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "internal error", Err: err}
}
