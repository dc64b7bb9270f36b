package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/services/auth"
	"github.com/hyunw/bboard/internal/services/board"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUsernameTaken         = "USERNAME_TAKEN"
	CodeIPLimitReached        = "IP_LIMIT_REACHED"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeTokenMissing          = "TOKEN_MISSING"
	CodeTokenMalformed        = "TOKEN_MALFORMED"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenInvalidSignature = "TOKEN_INVALID_SIGNATURE"
	CodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	CodePostNotFound          = "POST_NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError.
// Unrecognized errors map to a generic 500 so storage detail never reaches
// the caller.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Model errors
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username already exists"}}
	case errors.Is(err, model.ErrIPLimitReached):
		return &httpError{http.StatusTooManyRequests, APIError{CodeIPLimitReached, "Only one account may be registered per address"}}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Account not found"}}
	case errors.Is(err, model.ErrPostNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePostNotFound, "Post not found"}}

	// Auth errors
	case errors.Is(err, auth.ErrMissingFields):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "All fields are required"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrTokenMissing):
		return &httpError{http.StatusUnauthorized, APIError{CodeTokenMissing, "Authentication required"}}
	case errors.Is(err, auth.ErrTokenMalformed):
		return &httpError{http.StatusUnauthorized, APIError{CodeTokenMalformed, "Malformed token"}}
	case errors.Is(err, auth.ErrTokenExpired):
		return &httpError{http.StatusUnauthorized, APIError{CodeTokenExpired, "Token has expired"}}
	case errors.Is(err, auth.ErrTokenInvalidSignature):
		return &httpError{http.StatusForbidden, APIError{CodeTokenInvalidSignature, "Invalid token"}}

	// Board errors
	case errors.Is(err, board.ErrMissingFields):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Required fields are empty"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
