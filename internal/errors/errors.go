package errors

import (
	"errors"
	"fmt"
	"net/http"

	"portfolio/internal/validation"
)

var (
	// ErrUnauthenticated is returned when a request carries no usable token.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrInvalidCredentials is returned for a failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller may not touch the record.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlugExists is returned when another record already uses the slug.
	ErrSlugExists = errors.New("slug already exists")
	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = errors.New("invalid request body")
)

// NotFoundError names the resource that could not be found.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		httpErr  *HTTPError
		invalid  *validation.Invalid
		notFound *NotFoundError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &invalid):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Invalid input", Details: invalid.Fields}
	case errors.Is(err, ErrInvalidBody):
		return NewHTTPError(http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Forbidden")
	case errors.As(err, &notFound):
		return NewHTTPError(http.StatusNotFound, capitalize(notFound.Resource)+" not found")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, ErrSlugExists):
		return NewHTTPError(http.StatusBadRequest, "Slug already exists")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
