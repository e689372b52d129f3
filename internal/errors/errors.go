package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no valid session is present.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrForbidden is returned when the caller's role is not allowed.
	ErrForbidden = errors.New("Forbidden")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrSchedulingConflict is returned when an appointment overlaps an existing one.
	ErrSchedulingConflict = errors.New("employee already has an appointment in this time range")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUpstream is returned when the content backend fails after retries.
	ErrUpstream = errors.New("content backend unavailable")
	// ErrDemoDisabled is returned when demo mode is turned off by configuration.
	ErrDemoDisabled = errors.New("demo mode is disabled")
)

// ErrorResponse is the stable error body shape for every failed request.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// HTTPError pairs an error message with a status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, details ...string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// ToErrorResponse converts an HTTPError to the wire shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internals never leak to clients.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error())
	case errors.Is(err, ErrSchedulingConflict):
		return NewHTTPError(http.StatusConflict, ErrSchedulingConflict.Error())
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrDemoDisabled):
		return NewHTTPError(http.StatusNotFound, ErrDemoDisabled.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
