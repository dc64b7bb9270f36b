package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID string

// Account represents a registered user.
// Accounts are created once at registration and never updated or deleted;
// login and token verification only read them.
type Account struct {
	ID           AccountID
	Username     string // login username (immutable, case-sensitive)
	PasswordHash string // bcrypt hash; never the plaintext
	DisplayName  string // shown publicly as post/comment author
	// RegistrationIP is the client address observed at signup.
	// Populated only when one-account-per-IP limiting is enabled;
	// it is an advisory admission control, not an identity guarantee.
	RegistrationIP string
	CreatedAt      time.Time
}
