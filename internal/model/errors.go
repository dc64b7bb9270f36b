package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Uniqueness conflicts, reported by the storage layer's conditional
	// insert. The conflict outcome of the insert is the single source of
	// truth for duplicate registrations; application-level pre-checks are
	// an early exit only.
	ErrUsernameTaken  = errors.New("username already taken")
	ErrIPLimitReached = errors.New("an account already exists for this address")

	// Post errors
	ErrPostNotFound = errors.New("post not found")
)
