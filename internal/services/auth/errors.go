package auth

import "errors"

// Errors
var (
	// ErrMissingFields is returned when a registration is missing a
	// required field.
	ErrMissingFields = errors.New("username, password and display name are required")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so a login failure never reveals whether the account
	// exists.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token verification failures
	ErrTokenMissing          = errors.New("authentication token missing")
	ErrTokenMalformed        = errors.New("malformed authentication token")
	ErrTokenExpired          = errors.New("authentication token expired")
	ErrTokenInvalidSignature = errors.New("authentication token signature mismatch")
)
