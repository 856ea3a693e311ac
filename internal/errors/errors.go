package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when signing up with an email that already has an account.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrUsernameTaken is returned when signing up with a username that is already in use.
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrEmailNotVerified is returned when credentials are valid but the email is unverified.
	ErrEmailNotVerified = errors.New("Please verify your email before logging in")
	// ErrInvalidOrExpiredToken is returned for unknown, wrong, or expired one-time tokens.
	// Not-found and expired are intentionally indistinguishable to the caller.
	ErrInvalidOrExpiredToken = errors.New("Invalid or expired token")
	// ErrUserNotFound is returned when resending verification to a nonexistent account.
	ErrUserNotFound = errors.New("No account found with this email")
	// ErrAlreadyVerified is returned when resending verification to a verified account.
	ErrAlreadyVerified = errors.New("Email is already verified")
	// ErrWeakPassword is returned when a new password fails the minimum policy.
	ErrWeakPassword = errors.New("Password must be at least 6 characters")
	// ErrNotAuthorized is returned for missing, malformed, or invalid session tokens.
	ErrNotAuthorized = errors.New("Not authorized to access this route")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("Not authorized to perform this action")
	// ErrVideoNotFound is returned when a video does not exist.
	ErrVideoNotFound = errors.New("Video not found")
	// ErrCommentNotFound is returned when a comment does not exist on the video.
	ErrCommentNotFound = errors.New("Comment not found")
	// ErrEmailSendFailed is returned when a mail delivery that must succeed fails.
	ErrEmailSendFailed = errors.New("Failed to send verification email")
)

// ErrorResponse is the JSON envelope every failed request is rendered as.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
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

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy is reported as a generic 500 so internals never leak to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrEmailTaken, ErrUsernameTaken, ErrInvalidOrExpiredToken,
		ErrAlreadyVerified, ErrWeakPassword:
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case ErrInvalidCredentials, ErrNotAuthorized:
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case ErrEmailNotVerified, ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error())
	case ErrUserNotFound, ErrVideoNotFound, ErrCommentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error())
	case ErrEmailSendFailed:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
